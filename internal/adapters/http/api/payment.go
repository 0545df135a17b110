// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/peak/internal/domain/payment"
	"github.com/okian/peak/internal/domain/types"
)

// PaymentDependencies defines the interface for driving the payment flow.
type PaymentDependencies interface {
	SubmitPayment(ctx context.Context, name string, amount string) (types.PaymentView, error)
	ApprovePayment(ctx context.Context) (types.PaymentView, error)
	AbortPayment(ctx context.Context) (types.PaymentView, error)
	RetryPayment(ctx context.Context) (types.PaymentView, error)
	ClosePayment(ctx context.Context) types.PaymentView
	PaymentView(ctx context.Context) types.PaymentView
}

// PaymentHandler handles payment flow requests.
type PaymentHandler struct {
	deps PaymentDependencies
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(deps PaymentDependencies) *PaymentHandler {
	return &PaymentHandler{deps: deps}
}

// submitRequest mirrors the POST /payment body.
type submitRequest struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// HandlePayment handles GET /payment (flow snapshot) and POST /payment
// (form submission).
func (h *PaymentHandler) HandlePayment(w http.ResponseWriter, r *http.Request) {
	const op = "api.payment"

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.PaymentView(r.Context()))

	case http.MethodPost:
		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		view, err := h.deps.SubmitPayment(r.Context(), req.Name, req.Amount)
		if err != nil {
			writePaymentError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, view)

	default:
		http.NotFound(w, r)
	}
}

// HandlePaymentAction handles POST /payment/{approve|abort|retry|close}.
func (h *PaymentHandler) HandlePaymentAction(w http.ResponseWriter, r *http.Request) {
	const op = "api.payment_action"

	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	action := strings.TrimPrefix(r.URL.Path, "/payment/")

	var (
		view types.PaymentView
		err  error
	)
	switch action {
	case "approve":
		view, err = h.deps.ApprovePayment(r.Context())
	case "abort":
		view, err = h.deps.AbortPayment(r.Context())
	case "retry":
		view, err = h.deps.RetryPayment(r.Context())
	case "close":
		view = h.deps.ClosePayment(r.Context())
	default:
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	if err != nil {
		writePaymentError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// writePaymentError maps payment sentinels to status codes: validation is
// a 400, a busy flow is a 409, an illegal transition is a 409.
func writePaymentError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, payment.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation", err)
	case errors.Is(err, payment.ErrBusy):
		writeError(w, http.StatusConflict, "busy", err)
	case errors.Is(err, payment.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid_transition", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
