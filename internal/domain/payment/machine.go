package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/okian/peak/internal/adapters/gateway"
	"github.com/okian/peak/internal/domain/dedupe"
	"github.com/okian/peak/internal/domain/model"
	"github.com/okian/peak/pkg/logger"
	"github.com/okian/peak/pkg/metrics"
)

// Projector computes the rank an amount would claim right now.
type Projector interface {
	ProjectedRank(ctx context.Context, amount decimal.Decimal) int
}

// Committer appends a confirmed entry to the collection. Returns false
// without error when the id was already committed.
type Committer interface {
	Commit(ctx context.Context, entry model.Entry) (bool, error)
}

// View is a snapshot of the flow for the presentation boundary.
type View struct {
	State         State
	Name          string
	Amount        decimal.Decimal
	ProjectedRank int
	OrderID       string
	ErrorMessage  string
	ConfirmedID   string
}

// Machine drives one payment flow at a time:
//
//	Form -> GatewayHandoff -> Processing -> Confirmed
//
// with Error reachable from the two gateway-facing states, Abort backing
// out of the handoff, Retry leaving Error, and Close resetting from
// anywhere. The gateway calls run outside the lock so Close stays
// responsive while the gateway is slow; the commit after a successful
// capture happens regardless of whether the flow was dismissed mid-capture.
type Machine struct {
	mu     sync.Mutex
	state  State
	busy   bool
	gen    uint64 // bumped on dismissal so in-flight continuations back off
	name   string
	amount decimal.Decimal

	projected   int
	orderID     string
	errMsg      string
	confirmedID string

	projector Projector
	gw        gateway.Gateway
	committer Committer
	deduper   dedupe.Deduper
	currency  string
	now       func() time.Time
	newID     func() string
}

// NewMachine creates a payment machine with configuration options.
// Projector, gateway and committer are required for a functional flow.
func NewMachine(opts ...MachineOption) *Machine {
	m := &Machine{
		currency: "GBP",
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		deduper:  dedupe.NewInMemoryDeduper(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Submit validates the form and hands the flow to the gateway.
// Legal only in Form; invalid input returns ErrValidation and leaves the
// flow in Form with no side effects.
func (m *Machine) Submit(ctx context.Context, name string, rawAmount string) (View, error) {
	m.mu.Lock()
	if m.busy || m.state == StateGatewayHandoff || m.state == StateProcessing {
		m.mu.Unlock()
		return View{}, ErrBusy
	}
	if m.state != StateForm {
		m.mu.Unlock()
		return View{}, fmt.Errorf("%w: submit from %s", ErrInvalidTransition, m.state)
	}

	name = strings.TrimSpace(name)
	amount, err := parseAmount(rawAmount)
	if err != nil || name == "" {
		m.mu.Unlock()
		if name == "" {
			return View{}, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		return View{}, err
	}

	projected := m.projector.ProjectedRank(ctx, amount)
	description := fmt.Sprintf("Ascension to Peak Rank #%d", projected+1)

	m.name = name
	m.amount = amount
	m.projected = projected
	m.busy = true
	gen := m.gen
	m.mu.Unlock()

	order, gwErr := m.gw.CreateOrder(ctx, amount, m.currency, description)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.busy = false

	if m.state != StateForm || m.gen != gen {
		// Dismissed while the order was being created. Close lands back in
		// Form, so the state alone cannot tell; the generation bump can.
		// Nothing committed yet, so the dismissal simply wins.
		return m.viewLocked(), nil
	}

	if gwErr != nil {
		m.failLocked(ctx, orderFailureMessage(gwErr), gwErr)
		return m.viewLocked(), nil
	}

	m.orderID = order.ID
	m.state = StateGatewayHandoff
	metrics.RecordPaymentStarted()

	return m.viewLocked(), nil
}

// Approve captures the approved order and commits the entry.
// Legal only in GatewayHandoff.
func (m *Machine) Approve(ctx context.Context) (View, error) {
	m.mu.Lock()
	if m.state != StateGatewayHandoff || m.busy {
		state := m.state
		m.mu.Unlock()
		return View{}, fmt.Errorf("%w: approve from %s", ErrInvalidTransition, state)
	}

	m.state = StateProcessing
	m.busy = true
	orderID := m.orderID
	name := m.name
	amount := m.amount
	m.mu.Unlock()

	start := m.now()
	captured, capErr := m.gw.CaptureOrder(ctx, orderID)
	metrics.RecordCaptureLatency(float64(m.now().Sub(start).Milliseconds()))

	if capErr != nil {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.busy = false
		if m.state == StateProcessing {
			m.failLocked(ctx, msgCaptureFailed, capErr)
		}
		return m.viewLocked(), nil
	}

	// Commit is decoupled from the UI: once capture succeeded the entry is
	// recorded even if the flow was dismissed mid-capture.
	txnID := captured.TransactionID
	if txnID == "" {
		txnID = m.newID()
	}
	m.commit(ctx, txnID, name, amount)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.busy = false
	if m.state == StateProcessing {
		m.state = StateConfirmed
		m.confirmedID = txnID
		metrics.RecordPaymentConfirmed()
	}
	return m.viewLocked(), nil
}

// commit records the captured payment exactly once. Duplicate capture
// callbacks hit either the dedupe tracker or the store's by-id no-op.
func (m *Machine) commit(ctx context.Context, txnID string, name string, amount decimal.Decimal) {
	log := logger.Get()

	if m.deduper.SeenAndRecord(ctx, txnID) {
		metrics.RecordCaptureDuplicate()
		return
	}

	entry := model.Entry{
		ID:        txnID,
		Name:      name,
		Amount:    amount,
		Timestamp: m.now(),
	}

	added, err := m.committer.Commit(ctx, entry)
	if err != nil {
		// Let a later delivery of the same capture try again.
		m.deduper.Unrecord(ctx, txnID)
		log.Error(ctx, "failed to commit captured payment",
			logger.String("transaction_id", txnID),
			logger.Error(err))
		return
	}
	if !added {
		metrics.RecordCaptureDuplicate()
	}
}

// Abort backs out of the gateway handoff with no side effects.
func (m *Machine) Abort(ctx context.Context) (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateGatewayHandoff {
		return View{}, fmt.Errorf("%w: abort from %s", ErrInvalidTransition, m.state)
	}

	m.state = StateForm
	m.gen++
	m.orderID = ""
	metrics.RecordPaymentAborted()
	return m.viewLocked(), nil
}

// Retry leaves Error back to Form, keeping the entered name and amount.
func (m *Machine) Retry(ctx context.Context) (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateError {
		return View{}, fmt.Errorf("%w: retry from %s", ErrInvalidTransition, m.state)
	}

	m.state = StateForm
	m.errMsg = ""
	m.orderID = ""
	return m.viewLocked(), nil
}

// Close resets the flow to Form from any state and clears all inputs.
// A capture already in flight still commits; it just won't confirm.
func (m *Machine) Close(ctx context.Context) View {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = StateForm
	m.gen++
	m.name = ""
	m.amount = decimal.Zero
	m.projected = 0
	m.orderID = ""
	m.errMsg = ""
	m.confirmedID = ""
	return m.viewLocked()
}

// View returns a snapshot of the flow.
func (m *Machine) View(ctx context.Context) View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewLocked()
}

func (m *Machine) viewLocked() View {
	return View{
		State:         m.state,
		Name:          m.name,
		Amount:        m.amount,
		ProjectedRank: m.projected,
		OrderID:       m.orderID,
		ErrorMessage:  m.errMsg,
		ConfirmedID:   m.confirmedID,
	}
}

// failLocked moves the flow to Error with a participant-facing message.
// Caller must hold the lock.
func (m *Machine) failLocked(ctx context.Context, msg string, cause error) {
	log := logger.Get()

	m.state = StateError
	m.errMsg = msg
	m.orderID = ""
	metrics.RecordPaymentFailed()
	log.Warn(ctx, "payment flow failed",
		logger.String("message", msg),
		logger.Error(cause))
}

// orderFailureMessage picks the participant-facing copy for a failed
// order creation. Unreachable hosts get the restricted-environment hint.
func orderFailureMessage(err error) string {
	if errors.Is(err, gateway.ErrUnavailable) {
		return msgHostRefused
	}
	return msgOrderFailed
}

// parseAmount validates the raw form amount: it must parse as a decimal
// and be strictly positive.
func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q is not a number", ErrValidation, raw)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	return amount, nil
}
