// Package payment implements the payment flow state machine.
package payment

// State is the closed set of payment flow states. The zero value is
// StateForm, the resting state.
type State int

const (
	// StateForm collects name and amount.
	StateForm State = iota
	// StateGatewayHandoff waits for buyer approval at the gateway.
	StateGatewayHandoff
	// StateProcessing captures the approved order.
	StateProcessing
	// StateConfirmed shows the committed entry.
	StateConfirmed
	// StateError shows a diagnostic with a retry path.
	StateError
)

// String returns the state name for logs and API views.
func (s State) String() string {
	switch s {
	case StateForm:
		return "form"
	case StateGatewayHandoff:
		return "gateway_handoff"
	case StateProcessing:
		return "processing"
	case StateConfirmed:
		return "confirmed"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
