// Package gateway defines the payment gateway contract and its PayPal client.
package gateway

import (
	"context"

	"github.com/shopspring/decimal"
)

// Order is a gateway order awaiting buyer approval.
type Order struct {
	ID     string
	Status string
}

// Capture is the result of capturing an approved order.
type Capture struct {
	// TransactionID is the gateway's capture id. May be empty when the
	// gateway response omits it; callers must generate a local fallback.
	TransactionID string
	Status        string
}

// Gateway is the external payment processor the payment flow depends on.
// Every operation can fail; transport failures surface as ErrUnavailable
// and business rejections as ErrRejected.
type Gateway interface {
	// CreateOrder registers a capture-intent order for the given amount.
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency string, description string) (Order, error)

	// CaptureOrder captures an order the buyer has approved.
	CaptureOrder(ctx context.Context, orderID string) (Capture, error)
}
