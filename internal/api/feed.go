package api

import (
	"net/http"

	"github.com/orgball2608/ledgergram/internal/domain"
)

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	viewer, err := optionalAddress(q.Get("viewer"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	req := domain.FeedRequest{
		Viewer: viewer,
		Mode:   domain.FeedMode(q.Get("mode")),
		Media:  domain.MediaFilter(q.Get("media")),
	}
	switch req.Mode {
	case "", domain.FeedGlobal, domain.FeedFollowing:
	default:
		writeError(w, http.StatusBadRequest, "mode must be following or global")
		return
	}
	switch req.Media {
	case "", domain.FilterAll, domain.FilterImages, domain.FilterVideos:
	default:
		writeError(w, http.StatusBadRequest, "media must be all, images or videos")
		return
	}

	items, err := s.Feed.Build(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleUserPosts(w http.ResponseWriter, r *http.Request) {
	author, err := domain.ParseAddress(r.PathValue("address"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	viewer, err := optionalAddress(r.URL.Query().Get("viewer"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	items, err := s.Feed.UserPosts(r.Context(), viewer, author)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	entries, err := s.Directory.Directory(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleTips(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if err := required("address", address); err != nil {
		s.fail(w, r, err)
		return
	}

	summary, err := s.Directory.TipSummary(r.Context(), address)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
