// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/peak/internal/domain/types"
)

// PyramidDependencies defines the interface for pyramid reads.
type PyramidDependencies interface {
	Pyramid(ctx context.Context) types.Pyramid
}

// PyramidHandler handles pyramid requests.
type PyramidHandler struct {
	deps PyramidDependencies
}

// NewPyramidHandler creates a new pyramid handler.
func NewPyramidHandler(deps PyramidDependencies) *PyramidHandler {
	return &PyramidHandler{deps: deps}
}

// HandleGetPyramid handles GET /pyramid requests.
func (h *PyramidHandler) HandleGetPyramid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Pyramid(r.Context()))
}
