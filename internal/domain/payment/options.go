package payment

import (
	"time"

	"github.com/okian/peak/internal/adapters/gateway"
	"github.com/okian/peak/internal/domain/dedupe"
)

// MachineOption applies a configuration option to the Machine.
type MachineOption func(*Machine)

// WithProjector sets the projected-rank source.
func WithProjector(p Projector) MachineOption {
	return func(m *Machine) {
		m.projector = p
	}
}

// WithGateway sets the payment gateway.
func WithGateway(gw gateway.Gateway) MachineOption {
	return func(m *Machine) {
		m.gw = gw
	}
}

// WithCommitter sets the entry sink for captured payments.
func WithCommitter(c Committer) MachineOption {
	return func(m *Machine) {
		m.committer = c
	}
}

// WithDeduper sets the capture-callback idempotency tracker.
func WithDeduper(d dedupe.Deduper) MachineOption {
	return func(m *Machine) {
		if d != nil {
			m.deduper = d
		}
	}
}

// WithCurrency sets the order currency code.
func WithCurrency(code string) MachineOption {
	return func(m *Machine) {
		if code != "" {
			m.currency = code
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) MachineOption {
	return func(m *Machine) {
		if now != nil {
			m.now = now
		}
	}
}

// WithIDGenerator overrides the fallback transaction-id generator, used
// when the gateway response carries no capture id.
func WithIDGenerator(gen func() string) MachineOption {
	return func(m *Machine) {
		if gen != nil {
			m.newID = gen
		}
	}
}
