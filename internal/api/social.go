package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/orgball2608/ledgergram/internal/crypto"
	"github.com/orgball2608/ledgergram/internal/domain"
	apperrors "github.com/orgball2608/ledgergram/pkg/errors"
)

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if err := required("address", q.Get("address"), "postId", q.Get("postId")); err != nil {
		s.fail(w, r, err)
		return
	}

	var personalKey []byte
	if raw := q.Get("personalKey"); raw != "" {
		key, err := crypto.ParsePersonalKey(raw)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		personalKey = key
	}

	list, err := s.Comments.List(r.Context(), q.Get("address"), q.Get("postId"), personalKey)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if q.Get("order") != "oldest" {
		domain.SortCommentsNewestFirst(list)
	}
	writeJSON(w, http.StatusOK, list)
}

type addCommentRequest struct {
	Address     string `json:"address"`
	PostID      string `json:"postId"`
	Author      string `json:"author"`
	Text        string `json:"text"`
	Timestamp   int64  `json:"timestamp"`
	PersonalKey string `json:"personalKey"`
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	var req addCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := required("address", req.Address, "postId", req.PostID, "author", req.Author); err != nil {
		s.fail(w, r, err)
		return
	}

	mode := crypto.ServerKeyMode()
	if req.PersonalKey != "" {
		key, err := crypto.ParsePersonalKey(req.PersonalKey)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		mode = crypto.PersonalKeyMode(key)
	}
	if !s.allow(w, req.Author) {
		return
	}

	id, err := s.Comments.Append(r.Context(), req.Address, req.PostID, domain.Comment{
		Author:    req.Author,
		Text:      req.Text,
		Timestamp: req.Timestamp,
	}, mode)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": id})
}

// likeKey returns the like-set key. A bare postId is resolved to its contentHash through
// the ledger and must belong to address.
func (s *Server) likeKey(ctx context.Context, address, contentHash, postID string) (string, error) {
	if contentHash != "" {
		return contentHash, nil
	}
	if postID == "" {
		return "", apperrors.Invalid("contentHash is required")
	}
	author, err := domain.ParseAddress(address)
	if err != nil {
		return "", err
	}
	p, err := s.Feed.PostByID(ctx, postID)
	if err != nil {
		return "", err
	}
	if p.Author != author {
		return "", apperrors.Invalid("postId %s does not belong to %s", postID, address)
	}
	return p.ContentHash, nil
}

func (s *Server) handleReadLikes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if err := required("address", q.Get("address")); err != nil {
		s.fail(w, r, err)
		return
	}
	key, err := s.likeKey(r.Context(), q.Get("address"), q.Get("contentHash"), q.Get("postId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	state, err := s.Likes.Read(r.Context(), q.Get("address"), key, q.Get("user"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

type toggleLikeRequest struct {
	Address     string `json:"address"`
	ContentHash string `json:"contentHash"`
	PostID      string `json:"postId"`
	User        string `json:"user"`
	Action      string `json:"action"`
}

type likeResponse struct {
	Success bool `json:"success"`
	domain.LikeState
}

func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	var req toggleLikeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := required("address", req.Address, "user", req.User); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Action != "like" && req.Action != "unlike" {
		writeError(w, http.StatusBadRequest, "action must be like or unlike")
		return
	}
	if !s.allow(w, req.User) {
		return
	}
	key, err := s.likeKey(r.Context(), req.Address, req.ContentHash, req.PostID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	state, err := s.Likes.Toggle(r.Context(), req.Address, key, req.User, req.Action == "like")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, likeResponse{Success: true, LikeState: state})
}

func (s *Server) handleStories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var since int64
	if raw := q.Get("since"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "since must be a unix millisecond timestamp")
			return
		}
		since = v
	}

	// Without a viewer the flat list is returned, newest first.
	if q.Get("viewer") == "" {
		list, err := s.Stories.ScanSince(r.Context(), since)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
		return
	}

	viewer, err := domain.ParseAddress(q.Get("viewer"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	groups, err := s.Feed.Stories(r.Context(), viewer, since)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

type resurfaceRequest struct {
	Viewer   string   `json:"viewer"`
	Previous []string `json:"previous"`
}

func (s *Server) handleResurface(w http.ResponseWriter, r *http.Request) {
	var req resurfaceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	viewer, err := domain.ParseAddress(req.Viewer)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	ids, err := s.Feed.Resurface(r.Context(), viewer, req.Previous)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "resurfaced": ids})
}

func (s *Server) handleListViews(w http.ResponseWriter, r *http.Request) {
	account := r.URL.Query().Get("account")
	if err := required("account", account); err != nil {
		s.fail(w, r, err)
		return
	}

	ids, err := s.Views.ListViewed(r.Context(), account)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

type viewRequest struct {
	Account string `json:"account"`
	StoryID string `json:"storyId"`
}

type viewResponse struct {
	Success       bool     `json:"success"`
	ViewedStories []string `json:"viewedStories"`
}

func (s *Server) handleMarkViewed(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := required("account", req.Account, "storyId", req.StoryID); err != nil {
		s.fail(w, r, err)
		return
	}

	ids, err := s.Views.MarkViewed(r.Context(), req.Account, req.StoryID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewResponse{Success: true, ViewedStories: ids})
}

func (s *Server) handleUnmarkViewed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if err := required("account", q.Get("account"), "storyId", q.Get("storyId")); err != nil {
		s.fail(w, r, err)
		return
	}

	ids, err := s.Views.Unmark(r.Context(), q.Get("account"), q.Get("storyId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewResponse{Success: true, ViewedStories: ids})
}
