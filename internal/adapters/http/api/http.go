// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/okian/peak/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Read operations expose the leaderboard views.
	Pyramid(ctx context.Context) types.Pyramid
	Detail(ctx context.Context, id string) (types.EntryDetail, error)
	Preview(ctx context.Context, amount decimal.Decimal) types.Projection

	// Write operations drive the payment flow and entry content.
	SubmitPayment(ctx context.Context, name string, amount string) (types.PaymentView, error)
	ApprovePayment(ctx context.Context) (types.PaymentView, error)
	AbortPayment(ctx context.Context) (types.PaymentView, error)
	RetryPayment(ctx context.Context) (types.PaymentView, error)
	ClosePayment(ctx context.Context) types.PaymentView
	PaymentView(ctx context.Context) types.PaymentView
	UpdateEntryContent(ctx context.Context, id string, message string, mediaURL string) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	pyramidHandler *PyramidHandler
	entriesHandler *EntriesHandler
	previewHandler *PreviewHandler
	paymentHandler *PaymentHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		pyramidHandler: NewPyramidHandler(deps),
		entriesHandler: NewEntriesHandler(deps),
		previewHandler: NewPreviewHandler(deps),
		paymentHandler: NewPaymentHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/pyramid", MetricsMiddleware(s.pyramidHandler.HandleGetPyramid, "pyramid"))
	mux.HandleFunc("/entries/", MetricsMiddleware(s.entriesHandler.HandleEntry, "entries"))
	mux.HandleFunc("/rank/preview", MetricsMiddleware(s.previewHandler.HandleGetPreview, "preview"))
	mux.HandleFunc("/payment", MetricsMiddleware(s.paymentHandler.HandlePayment, "payment"))
	mux.HandleFunc("/payment/", MetricsMiddleware(s.paymentHandler.HandlePaymentAction, "payment_action"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
