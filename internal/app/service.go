// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okian/peak/internal/adapters/gateway"
	"github.com/okian/peak/internal/adapters/repository"
	"github.com/okian/peak/internal/domain/dedupe"
	"github.com/okian/peak/internal/domain/payment"
	"github.com/okian/peak/internal/domain/ranking"
	"github.com/okian/peak/internal/domain/types"
	"github.com/okian/peak/pkg/logger"
	"github.com/okian/peak/pkg/metrics"
)

// Service implements the API dependencies for the pay-to-rank leaderboard.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	classifier ranking.Classifier
	gw         gateway.Gateway
	deduper    dedupe.Deduper
	machine    *payment.Machine

	// Configuration
	storeDir   string
	storeKey   string
	seedSize   int
	dedupeSize int
	threshold  int
	currency   string

	gatewayBaseURL string
	gatewayID      string
	gatewaySecret  string
	gatewayTimeout time.Duration

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		storeDir:       "data",
		storeKey:       "peak_entries",
		seedSize:       repository.DefaultSeedSize,
		dedupeSize:     10_000,
		threshold:      ranking.DefaultAnonymizationThreshold,
		currency:       "GBP",
		gatewayBaseURL: gateway.SandboxBaseURL,
		gatewayTimeout: 30 * time.Second,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting peak service...")

	s.classifier = ranking.NewClassifier(s.threshold)

	if s.store == nil {
		kv, err := repository.NewFileKV(s.storeDir)
		if err != nil {
			return err
		}
		store, err := repository.NewMemStore(ctx,
			repository.WithKV(kv),
			repository.WithKey(s.storeKey),
			repository.WithSeed(repository.Seed(s.seedSize)),
		)
		if err != nil {
			return err
		}
		s.store = store
	}

	if s.gw == nil {
		s.gw = gateway.NewPayPalClient(s.gatewayID, s.gatewaySecret,
			gateway.WithBaseURL(s.gatewayBaseURL),
			gateway.WithHTTPClient(&http.Client{Timeout: s.gatewayTimeout}),
		)
	}

	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)

	s.machine = payment.NewMachine(
		payment.WithProjector(s),
		payment.WithGateway(s.gw),
		payment.WithCommitter(s.store),
		payment.WithDeduper(s.deduper),
		payment.WithCurrency(s.currency),
	)

	s.started = true
	s.logger.Info(ctx, "peak service started",
		logger.Int("entries", s.store.Count(ctx)),
		logger.Int("anonymizationThreshold", s.threshold),
		logger.String("currency", s.currency),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping peak service...")

	if closer, ok := s.store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "peak service stopped")
}

// Pyramid returns the tiered, display-classified leaderboard view.
func (s *Service) Pyramid(ctx context.Context) types.Pyramid {
	start := time.Now()
	entries := s.store.Snapshot(ctx)
	tiers := ranking.Tier(entries)
	metrics.RecordRankingComputeLatency(float64(time.Since(start).Milliseconds()))

	rows := make([][]types.PyramidEntry, len(tiers))
	for i, tier := range tiers {
		row := make([]types.PyramidEntry, len(tier))
		for j, r := range tier {
			row[j] = s.present(r)
		}
		rows[i] = row
	}

	return types.Pyramid{Rows: rows, Total: len(entries)}
}

// present maps a ranked entry to its pyramid box.
func (s *Service) present(r ranking.Ranked) types.PyramidEntry {
	e := types.PyramidEntry{
		ID:          r.Entry.ID,
		Rank:        r.Rank,
		Position:    s.classifier.Label(r.Rank),
		DisplayName: s.classifier.DisplayName(r.Rank, r.Entry.Name),
		Anonymized:  !s.classifier.Visible(r.Rank),
	}
	if !e.Anonymized {
		e.Amount = r.Entry.Amount.StringFixed(2)
		e.HasMessage = r.Entry.Message != ""
		e.HasMedia = r.Entry.MediaURL != ""
	}
	return e
}

// Detail returns the full view of one entry with its derived rank.
func (s *Service) Detail(ctx context.Context, id string) (types.EntryDetail, error) {
	entry, err := s.store.Get(ctx, id)
	if err != nil {
		return types.EntryDetail{}, err
	}

	rank := s.rankOf(ctx, id)

	return types.EntryDetail{
		ID:            entry.ID,
		Rank:          rank,
		Position:      s.classifier.Label(rank),
		DisplayName:   s.classifier.DisplayName(rank, entry.Name),
		Amount:        entry.Amount.StringFixed(2),
		Message:       entry.Message,
		MediaURL:      entry.MediaURL,
		EstablishedAt: entry.Timestamp,
		Anonymized:    !s.classifier.Visible(rank),
	}, nil
}

// rankOf derives the current rank of an entry id, -1 if absent.
func (s *Service) rankOf(ctx context.Context, id string) int {
	for _, r := range ranking.Rank(s.store.Snapshot(ctx)) {
		if r.Entry.ID == id {
			return r.Rank
		}
	}
	return -1
}

// ProjectedRank computes the rank the amount would claim right now.
func (s *Service) ProjectedRank(ctx context.Context, amount decimal.Decimal) int {
	metrics.RecordProjectionRequest()
	return ranking.ProjectedRank(s.store.Snapshot(ctx), amount)
}

// Preview returns the projection view for a candidate amount.
func (s *Service) Preview(ctx context.Context, amount decimal.Decimal) types.Projection {
	rank := s.ProjectedRank(ctx, amount)
	return types.Projection{
		ProjectedRank: rank,
		Position:      s.classifier.Label(rank),
	}
}

// SubmitPayment validates the form and hands off to the gateway.
func (s *Service) SubmitPayment(ctx context.Context, name string, amount string) (types.PaymentView, error) {
	view, err := s.machine.Submit(ctx, name, amount)
	if err != nil {
		return types.PaymentView{}, err
	}
	return s.paymentView(ctx, view), nil
}

// ApprovePayment captures the approved order and commits the entry.
func (s *Service) ApprovePayment(ctx context.Context) (types.PaymentView, error) {
	view, err := s.machine.Approve(ctx)
	if err != nil {
		return types.PaymentView{}, err
	}
	return s.paymentView(ctx, view), nil
}

// AbortPayment backs out of the gateway handoff.
func (s *Service) AbortPayment(ctx context.Context) (types.PaymentView, error) {
	view, err := s.machine.Abort(ctx)
	if err != nil {
		return types.PaymentView{}, err
	}
	return s.paymentView(ctx, view), nil
}

// RetryPayment leaves the error state back to the form.
func (s *Service) RetryPayment(ctx context.Context) (types.PaymentView, error) {
	view, err := s.machine.Retry(ctx)
	if err != nil {
		return types.PaymentView{}, err
	}
	return s.paymentView(ctx, view), nil
}

// ClosePayment dismisses the flow from any state.
func (s *Service) ClosePayment(ctx context.Context) types.PaymentView {
	return s.paymentView(ctx, s.machine.Close(ctx))
}

// PaymentView returns the current payment flow snapshot.
func (s *Service) PaymentView(ctx context.Context) types.PaymentView {
	return s.paymentView(ctx, s.machine.View(ctx))
}

func (s *Service) paymentView(ctx context.Context, v payment.View) types.PaymentView {
	out := types.PaymentView{
		State:         v.State.String(),
		Name:          v.Name,
		ProjectedRank: v.ProjectedRank,
		OrderID:       v.OrderID,
		ErrorMessage:  v.ErrorMessage,
		ConfirmedID:   v.ConfirmedID,
	}
	if !v.Amount.IsZero() {
		out.Amount = v.Amount.StringFixed(2)
	}
	if v.State == payment.StateConfirmed && v.ConfirmedID != "" {
		if rank := s.rankOf(ctx, v.ConfirmedID); rank >= 0 {
			out.ConfirmedRank = &rank
		}
	}
	return out
}

// UpdateEntryContent replaces the message and media URL of an entry.
func (s *Service) UpdateEntryContent(ctx context.Context, id string, message string, mediaURL string) error {
	return s.store.UpdateContent(ctx, id, message, mediaURL)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":                s.started,
		"anonymizationThreshold": s.threshold,
		"currency":               s.currency,
	}

	if s.started {
		total := s.store.Count(ctx)
		stats["totalEntries"] = total
		stats["paymentState"] = s.machine.View(ctx).State.String()
		stats["dedupeSize"] = s.deduper.Size()

		metrics.UpdateEntriesTotal(total)
	}

	return stats
}
