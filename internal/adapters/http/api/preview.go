// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/okian/peak/internal/domain/types"
)

// PreviewDependencies defines the interface for projected-rank previews.
type PreviewDependencies interface {
	Preview(ctx context.Context, amount decimal.Decimal) types.Projection
}

// PreviewHandler handles projected-rank preview requests.
type PreviewHandler struct {
	deps PreviewDependencies
}

// NewPreviewHandler creates a new preview handler.
func NewPreviewHandler(deps PreviewDependencies) *PreviewHandler {
	return &PreviewHandler{deps: deps}
}

// HandleGetPreview handles GET /rank/preview?amount=X requests.
// An absent or unparseable amount is a 400; there is no stale fallback.
func (h *PreviewHandler) HandleGetPreview(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_preview"

	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	raw := r.URL.Query().Get("amount")
	amount, err := decimal.NewFromString(raw)
	if err != nil || !amount.IsPositive() {
		writeError(w, http.StatusBadRequest, "no_preview", NewKind(op, ErrNoPreview))
		return
	}

	writeJSON(w, http.StatusOK, h.deps.Preview(r.Context(), amount))
}
