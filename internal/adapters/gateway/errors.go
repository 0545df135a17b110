package gateway

import "errors"

// Sentinel kinds for gateway failures.
var (
	// ErrUnavailable marks transport-level failures: the host could not be
	// reached or returned a server error.
	ErrUnavailable = errors.New("gateway unavailable")
	// ErrRejected marks business-level refusals: the gateway processed the
	// request and declined it.
	ErrRejected = errors.New("gateway rejected request")
)
