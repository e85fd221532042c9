package api

import (
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/orgball2608/ledgergram/internal/domain"
	apperrors "github.com/orgball2608/ledgergram/pkg/errors"
)

type uploadResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	Wallet   string `json:"wallet"`
	Path     string `json:"path"`
}

// handleUpload accepts either a raw body (original name in X-Original-Name)
// or a multipart form with a "file" part.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	wallet, err := domain.NormalizeWallet(q.Get("wallet"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	category := domain.Category(q.Get("type"))
	if !category.Valid() {
		writeError(w, http.StatusBadRequest, "type must be one of posts, stories, profile")
		return
	}
	if !s.allow(w, wallet) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	data, originalName, err := readUpload(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	name, err := s.Blobs.Put(r.Context(), wallet, category, q.Get("filename"), originalName, data)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Success:  true,
		Filename: name,
		Wallet:   wallet,
		Path:     wallet + "/" + string(category) + "/" + name,
	})
}

func readUpload(r *http.Request) ([]byte, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, "", apperrors.Invalid("failed to read upload: %v", err)
		}
		if len(data) == 0 {
			return nil, "", apperrors.Invalid("no file received")
		}
		return data, r.Header.Get("X-Original-Name"), nil
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", apperrors.Invalid("no file received")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", apperrors.Invalid("failed to read upload: %v", err)
	}
	return data, header.Filename, nil
}

// handleMedia decrypts and serves a blob. HEAD only probes existence. Reserved profile
// artifacts are answered as missing by the blob store.
func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
	wallet := r.PathValue("wallet")
	category := domain.Category(r.PathValue("category"))
	filename := r.PathValue("filename")

	if r.Method == http.MethodHead {
		ok, err := s.Blobs.Exists(r.Context(), wallet, category, filename)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", domain.ContentType(filename))
		w.WriteHeader(http.StatusOK)
		return
	}

	media, err := s.Blobs.Get(r.Context(), wallet, category, filename)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", media.ContentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if _, err := w.Write(media.Data); err != nil {
		s.Logger.Warn("Failed to write media", "wallet", wallet, "filename", filename, "error", err)
	}
}

type deletePostRequest struct {
	Address     string `json:"address"`
	ContentHash string `json:"contentHash"`
	PostID      string `json:"postId"`
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	var req deletePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := required("address", req.Address, "contentHash", req.ContentHash); err != nil {
		s.fail(w, r, err)
		return
	}
	author, err := domain.ParseAddress(req.Address)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !s.allow(w, req.Address) {
		return
	}

	ok, err := s.Blobs.Exists(r.Context(), req.Address, domain.CategoryPosts, req.ContentHash)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}

	// Comments are keyed by ledger id, so the id is taken from the ledger, never from the client.
	post, found, err := s.Feed.FindPost(r.Context(), author, req.ContentHash, req.PostID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	postID := ""
	if found {
		postID = post.Key()
	}

	if err := s.Blobs.DeletePost(r.Context(), req.Address, req.ContentHash, postID); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "postId": postID})
}

type deleteStoryRequest struct {
	Address  string `json:"address"`
	Filename string `json:"filename"`
}

func (s *Server) handleDeleteStory(w http.ResponseWriter, r *http.Request) {
	var req deleteStoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := required("address", req.Address, "filename", req.Filename); err != nil {
		s.fail(w, r, err)
		return
	}
	if !s.allow(w, req.Address) {
		return
	}

	if err := s.Blobs.Delete(r.Context(), req.Address, domain.CategoryStories, req.Filename); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"deletedFile": req.Filename,
		"address":     strings.ToLower(req.Address),
	})
}
