package testpayments

import (
	"context"
	"fmt"
	"strconv"

	"github.com/okian/peak/pkg/logger"
)

// verifyPyramid checks the observable leaderboard invariants: amounts
// never increase down the pyramid, rows grow triangularly, ranks are a
// gapless sequence, and a fresh preview agrees with the standings.
func verifyPyramid(ctx context.Context, client *HTTPClient, config *Config, pyramid *Pyramid, stats *Stats) error {
	log := logger.Get()
	log.Info(ctx, "verifying pyramid invariants", logger.Int("entries", pyramid.Total))

	if pyramid.Total == 0 {
		return fmt.Errorf("empty pyramid")
	}

	if err := verifyShape(pyramid); err != nil {
		return err
	}
	if err := verifyOrdering(pyramid); err != nil {
		return err
	}
	if err := verifyPreviewConsistency(ctx, client, config, pyramid); err != nil {
		return err
	}

	log.Info(ctx, "pyramid invariants verified")
	return nil
}

// verifyShape checks the triangular partition: row k holds k+1 entries,
// only the last row may be short.
func verifyShape(pyramid *Pyramid) error {
	seen := 0
	for i, row := range pyramid.Rows {
		expected := i + 1
		if len(row) != expected && i != len(pyramid.Rows)-1 {
			return fmt.Errorf("row %d holds %d entries, expected %d", i, len(row), expected)
		}
		if len(row) > expected {
			return fmt.Errorf("last row %d overfull: %d entries", i, len(row))
		}
		for j, e := range row {
			if e.Rank != seen {
				return fmt.Errorf("row %d box %d has rank %d, expected %d", i, j, e.Rank, seen)
			}
			seen++
		}
	}
	if seen != pyramid.Total {
		return fmt.Errorf("pyramid total %d does not match %d placed entries", pyramid.Total, seen)
	}
	return nil
}

// verifyOrdering checks amounts never increase with rank. Anonymized
// entries carry no amount, so only the visible prefix is comparable.
func verifyOrdering(pyramid *Pyramid) error {
	prev := -1.0
	for _, row := range pyramid.Rows {
		for _, e := range row {
			if e.Anonymized {
				return nil // visible prefix ends here
			}
			amount, err := strconv.ParseFloat(e.Amount, 64)
			if err != nil {
				return fmt.Errorf("entry %s has unparseable amount %q", e.ID, e.Amount)
			}
			if prev >= 0 && amount > prev {
				return fmt.Errorf("entry %s (%.2f) outranks a smaller amount (%.2f)", e.ID, amount, prev)
			}
			prev = amount
		}
	}
	return nil
}

// verifyPreviewConsistency asks the service for a projection above the
// current summit and at the floor, and checks both ends.
func verifyPreviewConsistency(ctx context.Context, client *HTTPClient, config *Config, pyramid *Pyramid) error {
	summit := pyramid.Rows[0][0]
	if summit.Anonymized {
		return nil
	}

	amount, err := strconv.ParseFloat(summit.Amount, 64)
	if err != nil {
		return fmt.Errorf("summit amount unparseable: %q", summit.Amount)
	}

	// An amount above everything must project to the summit.
	var top Projection
	url := fmt.Sprintf("%s/rank/preview?amount=%.2f", config.BaseURL, amount+1)
	if err := client.getJSON(ctx, url, &top); err != nil {
		return err
	}
	if top.ProjectedRank != 0 {
		return fmt.Errorf("amount above the summit projects to rank %d, expected 0", top.ProjectedRank)
	}

	// A tiny amount must project to the bottom: everything ranks above it.
	var bottom Projection
	url = fmt.Sprintf("%s/rank/preview?amount=%s", config.BaseURL, "0.001")
	if err := client.getJSON(ctx, url, &bottom); err != nil {
		return err
	}
	if bottom.ProjectedRank > pyramid.Total {
		return fmt.Errorf("floor amount projects to rank %d beyond %d entries", bottom.ProjectedRank, pyramid.Total)
	}

	return nil
}
