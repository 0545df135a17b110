package testpayments

import "time"

// Config holds configuration for the payment flow test
type Config struct {
	BaseURL     string        // Base URL of the service
	NumPayments int           // Number of payment flows to drive
	AbortEvery  int           // Abort every Nth flow instead of approving
	Timeout     time.Duration // HTTP request timeout
	LogFile     string        // Log file for test output
	Verbose     bool          // Enable verbose logging
}

// Payment represents one generated payment flow
type Payment struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// PaymentView mirrors the flow snapshot returned by the service
type PaymentView struct {
	State         string `json:"state"`
	Name          string `json:"name"`
	Amount        string `json:"amount"`
	ProjectedRank int    `json:"projectedRank"`
	OrderID       string `json:"orderId"`
	ErrorMessage  string `json:"errorMessage"`
	ConfirmedID   string `json:"confirmedId"`
	ConfirmedRank *int   `json:"confirmedRank"`
}

// PyramidEntry mirrors one box of the pyramid view
type PyramidEntry struct {
	ID          string `json:"id"`
	Rank        int    `json:"rank"`
	Position    string `json:"position"`
	DisplayName string `json:"displayName"`
	Amount      string `json:"amount"`
	Anonymized  bool   `json:"anonymized"`
}

// Pyramid mirrors the tiered leaderboard view
type Pyramid struct {
	Rows  [][]PyramidEntry `json:"rows"`
	Total int              `json:"total"`
}

// Projection mirrors the projected-rank preview
type Projection struct {
	ProjectedRank int    `json:"projectedRank"`
	Position      string `json:"position"`
}

// ErrorBody mirrors the API error envelope
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Stats holds test statistics
type Stats struct {
	PaymentsGenerated int
	PaymentsConfirmed int
	PaymentsAborted   int
	PaymentsFailed    int
	ProjectionMatches int
	ProjectionMisses  int
	PyramidEntries    int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
