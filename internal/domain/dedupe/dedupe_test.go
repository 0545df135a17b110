package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	dedupe "github.com/okian/peak/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new InMemoryDeduper", t, func() {
		Convey("When creating a deduper with default options", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("Then it should start empty", func() {
				So(d, ShouldNotBeNil)
				So(d.Size(), ShouldEqual, 0)
			})
		})

		Convey("When recording transaction ids", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("And the id is new", func() {
				seen := d.SeenAndRecord(context.Background(), "txn-1")

				Convey("Then it should return false and record the id", func() {
					So(seen, ShouldBeFalse)
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And the id was already seen", func() {
				d.SeenAndRecord(context.Background(), "txn-1")
				seen := d.SeenAndRecord(context.Background(), "txn-1")

				Convey("Then it should report a duplicate without growing", func() {
					So(seen, ShouldBeTrue)
					So(d.Size(), ShouldEqual, 1)
				})
			})
		})

		Convey("When unrecording a transaction id", func() {
			d := dedupe.NewInMemoryDeduper()
			d.SeenAndRecord(context.Background(), "txn-1")
			d.Unrecord(context.Background(), "txn-1")

			Convey("Then the id can be recorded again", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(context.Background(), "txn-1"), ShouldBeFalse)
			})

			Convey("And unrecording an unknown id is a no-op", func() {
				d.Unrecord(context.Background(), "txn-unknown")
				So(d.Size(), ShouldEqual, 0)
			})
		})

		Convey("When the bounded cache fills up", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
			for i := 0; i < 3; i++ {
				d.SeenAndRecord(context.Background(), fmt.Sprintf("txn-%d", i))
			}

			Convey("Then recording one more evicts the oldest", func() {
				So(d.SeenAndRecord(context.Background(), "txn-3"), ShouldBeFalse)
				So(d.Size(), ShouldEqual, 3)
				// txn-0 was evicted and no longer counts as seen.
				So(d.SeenAndRecord(context.Background(), "txn-0"), ShouldBeFalse)
			})
		})

		Convey("When recording concurrently", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
			var wg sync.WaitGroup
			duplicates := make([]bool, 100)

			for i := 0; i < 100; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					duplicates[i] = d.SeenAndRecord(context.Background(), "txn-shared")
				}(i)
			}
			wg.Wait()

			Convey("Then exactly one caller records it first", func() {
				firsts := 0
				for _, dup := range duplicates {
					if !dup {
						firsts++
					}
				}
				So(firsts, ShouldEqual, 1)
				So(d.Size(), ShouldEqual, 1)
			})
		})
	})
}
