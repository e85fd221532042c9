package domain

import (
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Post is a ledger-resident content record. ContentHash is the storage filename,
// not a digest of the content.
type Post struct {
	ID          uint64
	Author      common.Address
	ContentHash string
	Timestamp   time.Time
}

// Key is the string form of the ledger id used to address comments.
func (p Post) Key() string {
	return strconv.FormatUint(p.ID, 10)
}

type FeedMode string

const (
	FeedFollowing FeedMode = "following"
	FeedGlobal    FeedMode = "global"
)

type MediaFilter string

const (
	FilterAll    MediaFilter = "all"
	FilterImages MediaFilter = "images"
	FilterVideos MediaFilter = "videos"
)

// Accepts reports whether a post's contentHash passes the filter.
func (f MediaFilter) Accepts(contentHash string) bool {
	switch f {
	case FilterImages:
		return MediaTypeOf(contentHash) == MediaImage
	case FilterVideos:
		return MediaTypeOf(contentHash) == MediaVideo
	}
	return true
}

type FeedRequest struct {
	Viewer common.Address
	Mode   FeedMode
	Media  MediaFilter
}

type FeedItem struct {
	ID            uint64    `json:"id"`
	Author        string    `json:"author"`
	Username      string    `json:"username,omitempty"`
	ContentHash   string    `json:"contentHash"`
	Timestamp     time.Time `json:"timestamp"`
	MediaURL      string    `json:"mediaUrl"`
	MediaType     MediaType `json:"mediaType"`
	LikeCount     int       `json:"likeCount"`
	LikedByViewer bool      `json:"likedByViewer"`
	CommentCount  int       `json:"commentCount"`
}

// LikeState is the read view of a like set.
type LikeState struct {
	Count       int  `json:"count"`
	LikedByUser bool `json:"likedByUser"`
}
