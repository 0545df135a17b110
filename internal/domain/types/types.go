// Package types contains common types used across the application
package types

import "time"

// PyramidEntry is one box in the pyramid. Anonymized entries carry only
// the positional label; visible ones also carry name and amount.
type PyramidEntry struct {
	ID          string `json:"id"`
	Rank        int    `json:"rank"`
	Position    string `json:"position"`
	DisplayName string `json:"displayName"`
	Amount      string `json:"amount,omitempty"`
	HasMessage  bool   `json:"hasMessage,omitempty"`
	HasMedia    bool   `json:"hasMedia,omitempty"`
	Anonymized  bool   `json:"anonymized"`
}

// Pyramid is the tiered leaderboard view: row k holds k+1 entries,
// the last row may be short.
type Pyramid struct {
	Rows  [][]PyramidEntry `json:"rows"`
	Total int              `json:"total"`
}

// EntryDetail is the full view of a single entry. The name is
// label-substituted below the anonymization cutoff; amount, message and
// media are always shown.
type EntryDetail struct {
	ID            string    `json:"id"`
	Rank          int       `json:"rank"`
	Position      string    `json:"position"`
	DisplayName   string    `json:"displayName"`
	Amount        string    `json:"amount"`
	Message       string    `json:"message,omitempty"`
	MediaURL      string    `json:"mediaUrl,omitempty"`
	EstablishedAt time.Time `json:"establishedAt"`
	Anonymized    bool      `json:"anonymized"`
}

// Projection is the live projected-rank preview for a candidate amount.
type Projection struct {
	ProjectedRank int    `json:"projectedRank"`
	Position      string `json:"position"`
}

// PaymentView is the payment flow snapshot for the presentation boundary.
type PaymentView struct {
	State         string `json:"state"`
	Name          string `json:"name,omitempty"`
	Amount        string `json:"amount,omitempty"`
	ProjectedRank int    `json:"projectedRank"`
	OrderID       string `json:"orderId,omitempty"`
	ErrorMessage  string `json:"errorMessage,omitempty"`
	ConfirmedID   string `json:"confirmedId,omitempty"`
	ConfirmedRank *int   `json:"confirmedRank,omitempty"`
}
