// Package repository defines the entry store interface and errors.
package repository

import (
	"context"

	"github.com/okian/peak/internal/domain/model"
)

// KV is the byte store the collection is persisted to. One key, one value:
// the whole collection serialized as JSON. Load reports ok=false when the
// key has never been written.
type KV interface {
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)
	Save(ctx context.Context, key string, value []byte) error
}

// Store provides read/write access to the entry collection.
type Store interface {
	// Commit appends a confirmed entry and persists the collection.
	// Returns false without error if an entry with the same ID already
	// exists (idempotent re-delivery of a capture callback).
	Commit(ctx context.Context, entry model.Entry) (bool, error)

	// UpdateContent replaces the message and media URL of an existing entry
	// and persists the collection. Returns ErrNotFound for unknown ids.
	UpdateContent(ctx context.Context, id string, message string, mediaURL string) error

	// Get returns the entry with the given id.
	// Returns ErrNotFound if the id is unknown.
	Get(ctx context.Context, id string) (model.Entry, error)

	// Snapshot returns a copy of the collection in insertion order.
	Snapshot(ctx context.Context) []model.Entry

	// Count returns the number of entries in the collection.
	Count(ctx context.Context) int
}
