// Package api exposes the stores, the feed and the indexer over JSON HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/orgball2608/ledgergram/internal/domain"
	"github.com/orgball2608/ledgergram/internal/ratelimit"
	"github.com/orgball2608/ledgergram/internal/storage/blob"
	"github.com/orgball2608/ledgergram/internal/storage/comments"
	"github.com/orgball2608/ledgergram/internal/storage/likes"
	"github.com/orgball2608/ledgergram/internal/storage/profile"
	"github.com/orgball2608/ledgergram/internal/storage/stories"
	"github.com/orgball2608/ledgergram/internal/storage/views"
	"github.com/orgball2608/ledgergram/pkg/logger"
)

const (
	maxUploadBytes = 100 << 20
	maxJSONBytes   = 1 << 20
)

type Feed interface {
	Build(ctx context.Context, req domain.FeedRequest) ([]domain.FeedItem, error)
	UserPosts(ctx context.Context, viewer, author common.Address) ([]domain.FeedItem, error)
	Stories(ctx context.Context, viewer common.Address, since int64) ([]domain.StoryGroup, error)
	Resurface(ctx context.Context, viewer common.Address, previous []string) ([]string, error)
	FindPost(ctx context.Context, author common.Address, contentHash, postID string) (domain.Post, bool, error)
	PostByID(ctx context.Context, postID string) (domain.Post, error)
}

type Directory interface {
	Directory(ctx context.Context) ([]domain.DirectoryEntry, error)
	TipSummary(ctx context.Context, address string) (domain.TipSummary, error)
}

type Deps struct {
	Blobs     *blob.Store
	Likes     *likes.Store
	Comments  *comments.Store
	Profiles  *profile.Store
	Stories   *stories.Index
	Views     *views.Tracker
	Feed      Feed
	Directory Directory
	Limiter   ratelimit.Limiter
	Logger    logger.Logger
}

// Server routes the JSON API.
type Server struct {
	Deps
	mux *http.ServeMux
}

func New(deps Deps) *Server {
	deps.Logger = deps.Logger.WithComponent("API")
	s := &Server{
		Deps: deps,
		mux:  http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	// Media
	s.mux.HandleFunc("POST /api/upload", s.handleUpload)
	s.mux.HandleFunc("GET /api/media/{wallet}/{category}/{filename}", s.handleMedia)
	s.mux.HandleFunc("POST /api/deletePost", s.handleDeletePost)
	s.mux.HandleFunc("DELETE /api/deleteStory", s.handleDeleteStory)

	// Social
	s.mux.HandleFunc("GET /api/comments", s.handleListComments)
	s.mux.HandleFunc("POST /api/comments", s.handleAddComment)
	s.mux.HandleFunc("GET /api/likes", s.handleReadLikes)
	s.mux.HandleFunc("POST /api/likes", s.handleToggleLike)

	// Stories
	s.mux.HandleFunc("GET /api/stories", s.handleStories)
	s.mux.HandleFunc("POST /api/stories/resurface", s.handleResurface)
	s.mux.HandleFunc("GET /api/storyViews", s.handleListViews)
	s.mux.HandleFunc("POST /api/storyViews", s.handleMarkViewed)
	s.mux.HandleFunc("DELETE /api/storyViews", s.handleUnmarkViewed)

	// Profile
	s.mux.HandleFunc("GET /api/setPassword", s.handleHasPassword)
	s.mux.HandleFunc("POST /api/setPassword", s.handleSetPassword)
	s.mux.HandleFunc("POST /api/verifyPassword", s.handleVerifyPassword)
	s.mux.HandleFunc("POST /api/setUsername", s.handleSetUsername)

	// Directory and feeds
	s.mux.HandleFunc("GET /api/users", s.handleUsers)
	s.mux.HandleFunc("GET /api/users/{address}/posts", s.handleUserPosts)
	s.mux.HandleFunc("GET /api/feed", s.handleFeed)
	s.mux.HandleFunc("GET /api/tips", s.handleTips)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		s.Logger.Error("Failed to write response", "error", err)
	}
}
