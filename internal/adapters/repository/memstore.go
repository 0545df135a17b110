package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/okian/peak/internal/domain/model"
	"github.com/okian/peak/pkg/logger"
	"github.com/okian/peak/pkg/metrics"
)

// In-memory Store implementation backed by a single-key KV.
//
// The collection lives in memory in insertion order; every mutation
// serializes the whole collection and replaces the persisted value
// (replace-on-write). Ranks are never stored, they are derived on read.

// MemStore holds the entry collection and persists it through a KV.
type MemStore struct {
	mu      sync.RWMutex
	entries []model.Entry
	byID    map[string]int // id -> index into entries

	kv   KV
	key  string
	seed []model.Entry
}

// NewMemStore creates a store and loads the collection from the KV.
// Missing or unreadable persisted bytes fall back to the seed dataset;
// the fallback is logged but never surfaced to the caller.
func NewMemStore(ctx context.Context, opts ...Option) (*MemStore, error) {
	s := &MemStore{
		key:  defaultKey,
		seed: Seed(DefaultSeedSize),
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	s.load(ctx)
	metrics.UpdateEntriesTotal(len(s.entries))

	return s, nil
}

func (s *MemStore) load(ctx context.Context) {
	log := logger.Get()

	if s.kv == nil {
		s.reset(s.seed)
		return
	}

	raw, ok, err := s.kv.Load(ctx, s.key)
	if err != nil || !ok {
		if err != nil {
			log.Warn(ctx, "failed to load persisted entries, seeding",
				logger.String("key", s.key),
				logger.Error(err))
			metrics.RecordSeedFallback()
		}
		s.reset(s.seed)
		return
	}

	var entries []model.Entry
	if err := json.Unmarshal(raw, &entries); err != nil || len(entries) == 0 {
		log.Warn(ctx, "persisted entries unreadable, seeding",
			logger.String("key", s.key),
			logger.Error(err))
		metrics.RecordSeedFallback()
		s.reset(s.seed)
		return
	}

	s.reset(entries)
}

// reset replaces the in-memory collection. Caller must not hold the lock.
func (s *MemStore) reset(entries []model.Entry) {
	s.entries = make([]model.Entry, len(entries))
	copy(s.entries, entries)
	s.byID = make(map[string]int, len(entries))
	for i, e := range s.entries {
		s.byID[e.ID] = i
	}
}

// Commit appends a confirmed entry and persists the collection.
func (s *MemStore) Commit(ctx context.Context, entry model.Entry) (bool, error) {
	if err := entry.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[entry.ID]; exists {
		metrics.RecordCommitDuplicate()
		return false, nil
	}

	s.entries = append(s.entries, entry)
	s.byID[entry.ID] = len(s.entries) - 1

	if err := s.persist(ctx); err != nil {
		return true, err
	}

	metrics.RecordEntryCommitted()
	metrics.UpdateEntriesTotal(len(s.entries))
	return true, nil
}

// UpdateContent replaces the message and media URL of an existing entry.
func (s *MemStore) UpdateContent(ctx context.Context, id string, message string, mediaURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, exists := s.byID[id]
	if !exists {
		return ErrNotFound
	}

	s.entries[i].Message = message
	s.entries[i].MediaURL = mediaURL

	if err := s.persist(ctx); err != nil {
		return err
	}

	metrics.RecordContentUpdate()
	return nil
}

// Get returns the entry with the given id.
func (s *MemStore) Get(ctx context.Context, id string) (model.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, exists := s.byID[id]
	if !exists {
		return model.Entry{}, ErrNotFound
	}
	return s.entries[i], nil
}

// Snapshot returns a copy of the collection in insertion order.
func (s *MemStore) Snapshot(ctx context.Context) []model.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Count returns the number of entries in the collection.
func (s *MemStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// persist writes the whole collection under the single key.
// Caller must hold the write lock.
func (s *MemStore) persist(ctx context.Context) error {
	if s.kv == nil {
		return nil
	}

	raw, err := json.Marshal(s.entries)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := s.kv.Save(ctx, s.key, raw); err != nil {
		metrics.RecordStoreSaveError()
		return err
	}
	metrics.RecordStoreSaveLatency(float64(time.Since(start).Milliseconds()))
	return nil
}
