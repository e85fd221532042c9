package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/orgball2608/ledgergram/internal/domain"
	apperrors "github.com/orgball2608/ledgergram/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// fail maps a store, ledger or validation error to its HTTP status.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case apperrors.GetCode(err) == apperrors.CodeUsernameTaken:
		writeError(w, http.StatusConflict, apperrors.GetMessage(err))
	case apperrors.IsValidation(err):
		writeError(w, http.StatusBadRequest, apperrors.GetMessage(err))
	case apperrors.IsUnauthorized(err):
		writeError(w, http.StatusUnauthorized, "invalid password")
	case apperrors.IsNotFound(err):
		writeError(w, http.StatusNotFound, "not found")
	case apperrors.IsDecryption(err):
		s.Logger.Error("Decryption failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to decrypt content")
	case apperrors.IsLedger(err):
		s.Logger.Error("Ledger call failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadGateway, "ledger unavailable")
	default:
		s.Logger.Error("Request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if err == io.EOF {
			return apperrors.Invalid("request body is empty")
		}
		return apperrors.Invalid("malformed JSON body: %v", err)
	}
	return nil
}

// required takes name, value pairs and rejects the first empty value.
func required(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return apperrors.Invalid("%s is required", pairs[i])
		}
	}
	return nil
}

// optionalAddress parses addr when present; the zero address means anonymous.
func optionalAddress(addr string) (common.Address, error) {
	if addr == "" {
		return common.Address{}, nil
	}
	return domain.ParseAddress(addr)
}

// allow applies the per-wallet write limit and answers 429 when it is spent.
func (s *Server) allow(w http.ResponseWriter, key string) bool {
	if s.Limiter == nil || s.Limiter.Allow(key) {
		return true
	}
	writeError(w, http.StatusTooManyRequests, "too many requests, slow down")
	return false
}
