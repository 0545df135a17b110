package ranking_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/peak/internal/domain/model"
	"github.com/okian/peak/internal/domain/ranking"
)

func entry(id, name, amount string) model.Entry {
	return model.Entry{
		ID:        id,
		Name:      name,
		Amount:    decimal.RequireFromString(amount),
		Timestamp: time.Now(),
	}
}

func TestRank(t *testing.T) {
	Convey("Given a collection of entries", t, func() {
		entries := []model.Entry{
			entry("a", "Alice", "1.00"),
			entry("b", "Bob", "5.00"),
			entry("c", "Carol", "3.00"),
		}

		Convey("When ranking them", func() {
			ranked := ranking.Rank(entries)

			Convey("Then the output is a permutation of the input", func() {
				So(len(ranked), ShouldEqual, len(entries))
				seen := map[string]bool{}
				for _, r := range ranked {
					seen[r.Entry.ID] = true
				}
				So(len(seen), ShouldEqual, len(entries))
			})

			Convey("And amounts are non-increasing with rank", func() {
				for i := 1; i < len(ranked); i++ {
					So(ranked[i-1].Entry.Amount.GreaterThanOrEqual(ranked[i].Entry.Amount), ShouldBeTrue)
				}
			})

			Convey("And ranks are the 0-based positions", func() {
				So(ranked[0].Entry.ID, ShouldEqual, "b")
				So(ranked[0].Rank, ShouldEqual, 0)
				So(ranked[1].Entry.ID, ShouldEqual, "c")
				So(ranked[1].Rank, ShouldEqual, 1)
				So(ranked[2].Entry.ID, ShouldEqual, "a")
				So(ranked[2].Rank, ShouldEqual, 2)
			})

			Convey("And the input collection is not reordered", func() {
				So(entries[0].ID, ShouldEqual, "a")
				So(entries[1].ID, ShouldEqual, "b")
				So(entries[2].ID, ShouldEqual, "c")
			})
		})

		Convey("When two entries tie on amount", func() {
			tied := []model.Entry{
				entry("first", "First", "2.00"),
				entry("x", "X", "9.00"),
				entry("second", "Second", "2.00"),
			}
			ranked := ranking.Rank(tied)

			Convey("Then insertion order breaks the tie", func() {
				So(ranked[1].Entry.ID, ShouldEqual, "first")
				So(ranked[2].Entry.ID, ShouldEqual, "second")
			})
		})

		Convey("When ranking an empty collection", func() {
			ranked := ranking.Rank(nil)

			Convey("Then the result is empty", func() {
				So(len(ranked), ShouldEqual, 0)
			})
		})

		Convey("When ranking the same collection twice", func() {
			first := ranking.Rank(entries)
			second := ranking.Rank(entries)

			Convey("Then the outputs are identical", func() {
				for i := range first {
					So(first[i].Entry.ID, ShouldEqual, second[i].Entry.ID)
					So(first[i].Rank, ShouldEqual, second[i].Rank)
				}
			})
		})
	})
}

func TestTier(t *testing.T) {
	Convey("Given collections of various sizes", t, func() {
		build := func(n int) []model.Entry {
			entries := make([]model.Entry, n)
			for i := 0; i < n; i++ {
				entries[i] = entry(fmt.Sprintf("id-%d", i), fmt.Sprintf("Name %d", i), fmt.Sprintf("%d.00", n-i))
			}
			return entries
		}

		Convey("When tiering a perfect triangular count (10 = 1+2+3+4)", func() {
			rows := ranking.Tier(build(10))

			Convey("Then row sizes grow by one", func() {
				So(len(rows), ShouldEqual, 4)
				for k, row := range rows {
					So(len(row), ShouldEqual, k+1)
				}
			})
		})

		Convey("When tiering a non-triangular count (8)", func() {
			rows := ranking.Tier(build(8))

			Convey("Then the final row is short", func() {
				So(len(rows), ShouldEqual, 4)
				So(len(rows[0]), ShouldEqual, 1)
				So(len(rows[1]), ShouldEqual, 2)
				So(len(rows[2]), ShouldEqual, 3)
				So(len(rows[3]), ShouldEqual, 2)
			})
		})

		Convey("When concatenating all rows", func() {
			entries := build(8)
			rows := ranking.Tier(entries)
			ranked := ranking.Rank(entries)

			var flat []ranking.Ranked
			for _, row := range rows {
				flat = append(flat, row...)
			}

			Convey("Then the result equals the ranked sequence exactly", func() {
				So(len(flat), ShouldEqual, len(ranked))
				for i := range flat {
					So(flat[i].Entry.ID, ShouldEqual, ranked[i].Entry.ID)
					So(flat[i].Rank, ShouldEqual, ranked[i].Rank)
				}
			})
		})

		Convey("When tiering an empty collection", func() {
			rows := ranking.Tier(nil)

			Convey("Then there are no rows", func() {
				So(len(rows), ShouldEqual, 0)
			})
		})
	})
}

func TestProjectedRank(t *testing.T) {
	Convey("Given a collection with known amounts", t, func() {
		entries := []model.Entry{
			entry("a", "Alice", "5.00"),
			entry("b", "Bob", "3.00"),
			entry("c", "Carol", "1.00"),
		}

		Convey("When projecting an amount above every entry", func() {
			So(ranking.ProjectedRank(entries, decimal.RequireFromString("6.00")), ShouldEqual, 0)
		})

		Convey("When projecting an amount below every entry", func() {
			So(ranking.ProjectedRank(entries, decimal.RequireFromString("0.50")), ShouldEqual, 3)
		})

		Convey("When projecting an amount in the middle", func() {
			So(ranking.ProjectedRank(entries, decimal.RequireFromString("2.00")), ShouldEqual, 2)
		})

		Convey("When projecting an amount equal to an incumbent", func() {
			// Ties go to the incumbent: the candidate lands after it.
			So(ranking.ProjectedRank(entries, decimal.RequireFromString("3.00")), ShouldEqual, 1)
		})

		Convey("When projecting over an empty collection", func() {
			So(ranking.ProjectedRank(nil, decimal.RequireFromString("1.00")), ShouldEqual, 0)
		})

		Convey("When the projection matches a real insertion", func() {
			candidate := decimal.RequireFromString("3.00")
			projected := ranking.ProjectedRank(entries, candidate)

			inserted := append(append([]model.Entry{}, entries...), entry("new", "New", "3.00"))
			ranked := ranking.Rank(inserted)

			Convey("Then the committed entry lands at the projected rank", func() {
				So(ranked[projected+1].Entry.ID, ShouldEqual, "new")
				// projected counts strictly-greater amounts; the equal-amount
				// incumbent precedes the newcomer, hence rank projected+1 here
				// and exactly projected when no incumbent ties.
				above := decimal.RequireFromString("9.99")
				p := ranking.ProjectedRank(entries, above)
				withTop := append(append([]model.Entry{}, entries...), entry("top", "Top", "9.99"))
				So(ranking.Rank(withTop)[p].Entry.ID, ShouldEqual, "top")
			})
		})
	})
}

func TestClassifier(t *testing.T) {
	Convey("Given a classifier with the default threshold", t, func() {
		c := ranking.NewClassifier(0)

		Convey("Then the threshold falls back to the default", func() {
			So(c.Threshold(), ShouldEqual, ranking.DefaultAnonymizationThreshold)
		})

		Convey("And rank 27 shows identity while rank 28 does not", func() {
			So(c.Visible(27), ShouldBeTrue)
			So(c.Visible(28), ShouldBeFalse)
		})
	})

	Convey("Given a classifier with threshold 28", t, func() {
		c := ranking.NewClassifier(28)

		Convey("When displaying an entry at rank 27", func() {
			So(c.DisplayName(27, "Lucy Gray"), ShouldEqual, "Lucy Gray")
		})

		Convey("When displaying an entry at rank 28", func() {
			So(c.DisplayName(28, "Hidden Name"), ShouldEqual, "P029")
		})

		Convey("When formatting positional labels", func() {
			So(c.Label(0), ShouldEqual, "P001")
			So(c.Label(99), ShouldEqual, "P100")
			So(c.Label(999), ShouldEqual, "P1000")
		})
	})
}
