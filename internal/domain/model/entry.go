// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validation errors for entries.
var (
	ErrEmptyID       = errors.New("entry id must not be empty")
	ErrEmptyName     = errors.New("entry name must not be empty")
	ErrInvalidAmount = errors.New("entry amount must be positive")
	ErrZeroTimestamp = errors.New("entry timestamp must be set")
)

// Entry represents a participant's claim on the leaderboard.
// ID, Name, Amount and Timestamp are immutable once committed;
// Message and MediaURL may be edited from the detail view.
type Entry struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
	Message   string          `json:"message,omitempty"`
	MediaURL  string          `json:"mediaUrl,omitempty"`
}

// Validate reports whether the entry satisfies the commit invariants.
func (e Entry) Validate() error {
	switch {
	case strings.TrimSpace(e.ID) == "":
		return ErrEmptyID
	case strings.TrimSpace(e.Name) == "":
		return ErrEmptyName
	case !e.Amount.IsPositive():
		return ErrInvalidAmount
	case e.Timestamp.IsZero():
		return ErrZeroTimestamp
	}
	return nil
}
