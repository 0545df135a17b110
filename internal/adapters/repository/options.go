package repository

import "github.com/okian/peak/internal/domain/model"

// defaultKey matches the key the original deployment persisted under.
const defaultKey = "peak_entries"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithKV sets the byte store the collection is persisted to.
// Without a KV the store is memory-only (useful in tests).
func WithKV(kv KV) Option {
	return func(s *MemStore) {
		s.kv = kv
	}
}

// WithKey sets the persistence key.
func WithKey(key string) Option {
	return func(s *MemStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithSeed sets the dataset used when nothing usable is persisted.
func WithSeed(seed []model.Entry) Option {
	return func(s *MemStore) {
		s.seed = seed
	}
}
