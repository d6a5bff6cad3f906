// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/maturski-kviz/backend/internal/domain/questionbank"
	"github.com/maturski-kviz/backend/internal/domain/quizsession"
	"github.com/maturski-kviz/backend/internal/service"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	bank     *questionbank.Bank
	quiz     *quizsession.Controller
	progress *service.ProgressService
	logger   *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(bank *questionbank.Bank, quiz *quizsession.Controller, progress *service.ProgressService, logger *slog.Logger) *Handler {
	return &Handler{
		bank:     bank,
		quiz:     quiz,
		progress: progress,
		logger:   logger,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes a JSON error body with the given status code.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// Validator is implemented by request types that carry their own
// validation rules.
type Validator interface {
	Validate() error
}

// decodeJSON decodes the request body into v. On failure it writes a
// 400 and returns false (caller should return).
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// decodeAndValidate decodes the request body and runs its Validate method.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v Validator) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if err := v.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleSessionError maps the session state machine's sentinel errors to
// HTTP responses. Returns true if an error was handled (caller should
// return).
func (h *Handler) handleSessionError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, quizsession.ErrNoActiveSession):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, quizsession.ErrNotCompleted),
		errors.Is(err, quizsession.ErrNotAwaitingAnswer):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, quizsession.ErrEmptyPool),
		errors.Is(err, quizsession.ErrInvalidCount),
		errors.Is(err, quizsession.ErrEmptySelection),
		errors.Is(err, quizsession.ErrUnknownOption):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error("session error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
	return true
}
