// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/peak/internal/adapters/repository"
	"github.com/okian/peak/internal/domain/types"
)

// EntriesDependencies defines the interface for entry detail operations.
type EntriesDependencies interface {
	Detail(ctx context.Context, id string) (types.EntryDetail, error)
	UpdateEntryContent(ctx context.Context, id string, message string, mediaURL string) error
}

// EntriesHandler handles entry detail and content updates.
type EntriesHandler struct {
	deps EntriesDependencies
}

// NewEntriesHandler creates a new entries handler.
func NewEntriesHandler(deps EntriesDependencies) *EntriesHandler {
	return &EntriesHandler{deps: deps}
}

// contentRequest mirrors the PATCH /entries/{id} body.
type contentRequest struct {
	Message  string `json:"message"`
	MediaURL string `json:"mediaUrl"`
}

// HandleEntry handles GET and PATCH /entries/{id} requests.
func (h *EntriesHandler) HandleEntry(w http.ResponseWriter, r *http.Request) {
	const op = "api.entry"

	id := strings.TrimPrefix(r.URL.Path, "/entries/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	switch r.Method {
	case http.MethodGet:
		detail, err := h.deps.Detail(r.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				writeError(w, http.StatusNotFound, "not_found", err)
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, detail)

	case http.MethodPatch:
		var req contentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := h.deps.UpdateEntryContent(r.Context(), id, req.Message, req.MediaURL); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				writeError(w, http.StatusNotFound, "not_found", err)
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		detail, err := h.deps.Detail(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, detail)

	default:
		http.NotFound(w, r)
	}
}
