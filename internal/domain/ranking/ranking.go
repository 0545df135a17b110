// Package ranking derives ordered and tiered views from the entry collection.
//
// Every function here is pure: the same input collection (in the same order)
// always yields the same output, and entries are never mutated. Rank is a
// derived value, recomputed on demand rather than stored.
package ranking

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/okian/peak/internal/domain/model"
)

// Ranked pairs an entry with its derived 0-based rank.
type Ranked struct {
	Entry model.Entry
	Rank  int
}

// Rank stable-sorts entries by amount descending and assigns 0-based ranks.
// Ties keep the relative order of the input collection (insertion order is
// the tie-break, not timestamp).
func Rank(entries []model.Entry) []Ranked {
	ranked := make([]Ranked, len(entries))
	for i, e := range entries {
		ranked[i] = Ranked{Entry: e}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Entry.Amount.GreaterThan(ranked[j].Entry.Amount)
	})
	for i := range ranked {
		ranked[i].Rank = i
	}
	return ranked
}

// Tier partitions the ranked sequence into triangular rows: row k holds k+1
// entries. Row boundaries are positional, independent of amount gaps, and the
// final row may be short. The concatenation of all rows equals Rank's output.
func Tier(entries []model.Entry) [][]Ranked {
	ranked := Rank(entries)
	rows := make([][]Ranked, 0)
	for start, size := 0, 1; start < len(ranked); start, size = start+size, size+1 {
		end := start + size
		if end > len(ranked) {
			end = len(ranked)
		}
		rows = append(rows, ranked[start:end])
	}
	return rows
}

// ProjectedRank returns the 0-based rank a hypothetical new entry of the
// given amount would occupy: the count of existing entries with a strictly
// greater amount. New entries land after incumbents of equal amount.
func ProjectedRank(entries []model.Entry, amount decimal.Decimal) int {
	n := 0
	for _, e := range entries {
		if e.Amount.GreaterThan(amount) {
			n++
		}
	}
	return n
}
