package payment

import "errors"

// Sentinel kinds for payment flow errors.
var (
	// ErrValidation marks rejected form input. The flow stays in Form.
	ErrValidation = errors.New("invalid payment input")
	// ErrBusy marks a submit attempted while another flow is in flight.
	ErrBusy = errors.New("payment flow already in progress")
	// ErrInvalidTransition marks an operation not legal in the current state.
	ErrInvalidTransition = errors.New("invalid payment state transition")
)

// Diagnostics shown to the participant. The capture message is fixed copy;
// the connection message names the restricted-environment case.
const (
	msgCaptureFailed = "Capture failed. Please try again."
	msgHostRefused   = "The payment host refused the connection. This usually happens in restricted sandbox environments. Try again from an unrestricted network."
	msgOrderFailed   = "Could not create the payment order. Please try again."
)
