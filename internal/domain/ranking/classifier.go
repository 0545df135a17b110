package ranking

import "fmt"

// DefaultAnonymizationThreshold is the rank cutoff used when none is configured.
const DefaultAnonymizationThreshold = 28

// Classifier decides how an entry at a given rank is displayed. Entries at or
// beyond the threshold are shown only as a positional label; their real name
// stays in the data model untouched.
type Classifier struct {
	threshold int
}

// NewClassifier creates a classifier with the given rank cutoff.
// Non-positive thresholds fall back to the default.
func NewClassifier(threshold int) Classifier {
	if threshold <= 0 {
		threshold = DefaultAnonymizationThreshold
	}
	return Classifier{threshold: threshold}
}

// Threshold returns the configured rank cutoff.
func (c Classifier) Threshold() int {
	return c.threshold
}

// Visible reports whether the identity at the given 0-based rank is shown.
func (c Classifier) Visible(rank int) bool {
	return rank < c.threshold
}

// Label returns the positional label for a rank, e.g. "P001" for rank 0.
func (c Classifier) Label(rank int) string {
	return fmt.Sprintf("P%03d", rank+1)
}

// DisplayName returns the name to show for an entry at the given rank:
// the real name when visible, the positional label otherwise.
func (c Classifier) DisplayName(rank int, name string) string {
	if c.Visible(rank) {
		return name
	}
	return c.Label(rank)
}
