package api

import (
	"net/http"
)

type credentialsRequest struct {
	Address  string `json:"address"`
	Password string `json:"password"`
}

func (s *Server) handleHasPassword(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if err := required("address", address); err != nil {
		s.fail(w, r, err)
		return
	}

	ok, err := s.Profiles.HasPassword(r.Context(), address)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "no password set for this address")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"hasPassword": true})
}

func (s *Server) handleSetPassword(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := required("address", req.Address, "password", req.Password); err != nil {
		s.fail(w, r, err)
		return
	}
	if !s.allow(w, req.Address) {
		return
	}

	if err := s.Profiles.SetPassword(r.Context(), req.Address, req.Password); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Password set successfully"})
}

func (s *Server) handleVerifyPassword(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := required("address", req.Address, "password", req.Password); err != nil {
		s.fail(w, r, err)
		return
	}
	if !s.allow(w, req.Address) {
		return
	}

	key, err := s.Profiles.VerifyPassword(r.Context(), req.Address, req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "personalKey": key})
}

type setUsernameRequest struct {
	Address  string `json:"address"`
	Username string `json:"username"`
}

func (s *Server) handleSetUsername(w http.ResponseWriter, r *http.Request) {
	var req setUsernameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := required("address", req.Address, "username", req.Username); err != nil {
		s.fail(w, r, err)
		return
	}
	if !s.allow(w, req.Address) {
		return
	}

	name, err := s.Profiles.SetUsername(r.Context(), req.Address, req.Username)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "username": name})
}
