package repository

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okian/peak/internal/domain/model"
)

// DefaultSeedSize is the total size of the default seed dataset.
const DefaultSeedSize = 200

// seedNamed is the fixed top of the seed dataset: named entries from 5.00
// down to 0.01. The first two carry message/media content so the detail
// view has something to show out of the box.
var seedNamed = []struct {
	name     string
	amount   string
	message  string
	mediaURL string
}{
	{"James Anderson", "5.00", "View from the top is quiet.", "https://images.unsplash.com/photo-1519750157634-b6d493a0f77c?w=800&auto=format&fit=crop&q=60"},
	{"Sarah Miller", "4.85", "Hard work pays off.", ""},
	{"Robert Taylor", "4.50", "", ""},
	{"Emma Wilson", "4.25", "", ""},
	{"Michael Brown", "4.10", "", ""},
	{"Olivia Davies", "3.90", "", ""},
	{"William Evans", "3.75", "", ""},
	{"Sophia Thomas", "3.50", "", ""},
	{"David Roberts", "3.25", "", ""},
	{"Isabella Johnson", "3.00", "", ""},
	{"Richard Walker", "2.75", "", ""},
	{"Mia White", "2.50", "", ""},
	{"Joseph Thompson", "2.25", "", ""},
	{"Charlotte Harris", "2.00", "", ""},
	{"Thomas Martin", "1.75", "", ""},
	{"Amelia King", "1.50", "", ""},
	{"Charles Lee", "1.25", "", ""},
	{"Emily Scott", "1.00", "", ""},
	{"Christopher Green", "0.85", "", ""},
	{"Jessica Baker", "0.75", "", ""},
	{"Daniel Adams", "0.50", "", ""},
	{"Lily Campbell", "0.40", "", ""},
	{"Matthew Nelson", "0.30", "", ""},
	{"Grace Carter", "0.20", "", ""},
	{"Anthony Mitchell", "0.15", "", ""},
	{"Chloe Perez", "0.10", "", ""},
	{"Mark Roberts", "0.05", "", ""},
	{"Lucy Gray", "0.01", "", ""},
}

// Seed builds the default dataset: the named top followed by generated
// filler entries scaling from 0.01 down to a 0.005 floor, total entries.
// A non-positive total yields just the named top.
func Seed(total int) []model.Entry {
	now := time.Now()
	out := make([]model.Entry, 0, max(total, len(seedNamed)))

	for i, n := range seedNamed {
		e := model.Entry{
			ID:        fmt.Sprintf("%d", i+1),
			Name:      n.name,
			Amount:    decimal.RequireFromString(n.amount),
			Timestamp: now.Add(-time.Duration(100-i) * time.Second),
			Message:   n.message,
			MediaURL:  n.mediaURL,
		}
		out = append(out, e)
	}

	floor := decimal.RequireFromString("0.005")
	step := decimal.RequireFromString("0.00002")
	base := decimal.RequireFromString("0.01")

	for i := len(seedNamed) + 1; i <= total; i++ {
		amount := base.Sub(step.Mul(decimal.NewFromInt(int64(i))))
		if amount.LessThan(floor) {
			amount = floor
		}
		out = append(out, model.Entry{
			ID:        fmt.Sprintf("%d", i),
			Name:      fmt.Sprintf("User %d", i),
			Amount:    amount,
			Timestamp: now.Add(-time.Duration(i) * time.Second),
		})
	}

	return out
}
