package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/peak/internal/adapters/repository"
	"github.com/okian/peak/internal/domain/model"
	"github.com/okian/peak/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func entry(id, name, amount string) model.Entry {
	return model.Entry{
		ID:        id,
		Name:      name,
		Amount:    decimal.RequireFromString(amount),
		Timestamp: time.Now(),
	}
}

func TestMemStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given a memory-only store with a small seed", t, func() {
		seed := []model.Entry{
			entry("1", "Alice", "3.00"),
			entry("2", "Bob", "2.00"),
		}
		s, err := repository.NewMemStore(ctx, repository.WithSeed(seed))
		So(err, ShouldBeNil)
		So(s.Count(ctx), ShouldEqual, 2)

		Convey("When committing a new entry", func() {
			added, err := s.Commit(ctx, entry("3", "Carol", "4.00"))

			Convey("Then it is appended in insertion order", func() {
				So(err, ShouldBeNil)
				So(added, ShouldBeTrue)
				snap := s.Snapshot(ctx)
				So(len(snap), ShouldEqual, 3)
				So(snap[2].Name, ShouldEqual, "Carol")
			})
		})

		Convey("When committing the same id twice", func() {
			added, err := s.Commit(ctx, entry("3", "Carol", "4.00"))
			So(err, ShouldBeNil)
			So(added, ShouldBeTrue)

			again, err := s.Commit(ctx, entry("3", "Carol", "4.00"))

			Convey("Then the second commit is a no-op", func() {
				So(err, ShouldBeNil)
				So(again, ShouldBeFalse)
				So(s.Count(ctx), ShouldEqual, 3)
			})
		})

		Convey("When committing an invalid entry", func() {
			_, err := s.Commit(ctx, entry("4", "", "1.00"))

			Convey("Then validation fails and nothing is stored", func() {
				So(err, ShouldNotBeNil)
				So(s.Count(ctx), ShouldEqual, 2)
			})
		})

		Convey("When updating content of an existing entry", func() {
			err := s.UpdateContent(ctx, "1", "hello", "https://example.com/pic.jpg")
			So(err, ShouldBeNil)

			got, err := s.Get(ctx, "1")

			Convey("Then only message and media change", func() {
				So(err, ShouldBeNil)
				So(got.Message, ShouldEqual, "hello")
				So(got.MediaURL, ShouldEqual, "https://example.com/pic.jpg")
				So(got.Name, ShouldEqual, "Alice")
				So(got.Amount.String(), ShouldEqual, "3")
			})
		})

		Convey("When reading an unknown id", func() {
			_, err := s.Get(ctx, "nope")
			So(err, ShouldEqual, repository.ErrNotFound)

			Convey("And updating an unknown id", func() {
				So(s.UpdateContent(ctx, "nope", "m", ""), ShouldEqual, repository.ErrNotFound)
			})
		})

		Convey("When taking a snapshot", func() {
			snap := s.Snapshot(ctx)
			snap[0].Name = "mutated"

			Convey("Then the store is unaffected", func() {
				got, err := s.Get(ctx, "1")
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "Alice")
			})
		})
	})
}

func TestMemStorePersistence(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store backed by a file KV", t, func() {
		dir := t.TempDir()
		kv, err := repository.NewFileKV(dir)
		So(err, ShouldBeNil)

		seed := []model.Entry{entry("1", "Alice", "3.00")}
		s, err := repository.NewMemStore(ctx,
			repository.WithKV(kv),
			repository.WithKey("peak_entries"),
			repository.WithSeed(seed))
		So(err, ShouldBeNil)

		Convey("When committing, the collection is persisted", func() {
			_, err := s.Commit(ctx, entry("2", "Bob", "2.00"))
			So(err, ShouldBeNil)

			Convey("Then a fresh store loads the persisted collection", func() {
				reloaded, err := repository.NewMemStore(ctx,
					repository.WithKV(kv),
					repository.WithKey("peak_entries"),
					repository.WithSeed(nil))
				So(err, ShouldBeNil)
				So(reloaded.Count(ctx), ShouldEqual, 2)
				got, err := reloaded.Get(ctx, "2")
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "Bob")
				So(got.Amount.Equal(decimal.RequireFromString("2.00")), ShouldBeTrue)
			})
		})

		Convey("When the persisted bytes are corrupt", func() {
			path := filepath.Join(dir, "peak_entries.json")
			So(os.WriteFile(path, []byte("{not json"), 0o644), ShouldBeNil)

			reloaded, err := repository.NewMemStore(ctx,
				repository.WithKV(kv),
				repository.WithKey("peak_entries"),
				repository.WithSeed(seed))

			Convey("Then the store silently falls back to the seed", func() {
				So(err, ShouldBeNil)
				So(reloaded.Count(ctx), ShouldEqual, 1)
				got, err := reloaded.Get(ctx, "1")
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "Alice")
			})
		})

		Convey("When nothing was ever persisted", func() {
			fresh, err := repository.NewMemStore(ctx,
				repository.WithKV(kv),
				repository.WithKey("other_key"),
				repository.WithSeed(seed))

			Convey("Then the seed is used", func() {
				So(err, ShouldBeNil)
				So(fresh.Count(ctx), ShouldEqual, 1)
			})
		})
	})
}

func TestFileKV(t *testing.T) {
	ctx := context.Background()

	Convey("Given a file KV", t, func() {
		kv, err := repository.NewFileKV(t.TempDir())
		So(err, ShouldBeNil)

		Convey("When loading a missing key", func() {
			_, ok, err := kv.Load(ctx, "missing")
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("When saving and loading", func() {
			So(kv.Save(ctx, "k", []byte(`[1,2,3]`)), ShouldBeNil)
			raw, ok, err := kv.Load(ctx, "k")
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(string(raw), ShouldEqual, `[1,2,3]`)

			Convey("And saving again replaces the value", func() {
				So(kv.Save(ctx, "k", []byte(`[]`)), ShouldBeNil)
				raw, _, _ := kv.Load(ctx, "k")
				So(string(raw), ShouldEqual, `[]`)
			})
		})

		Convey("When created with an empty directory", func() {
			_, err := repository.NewFileKV("")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSeed(t *testing.T) {
	Convey("Given the default seed dataset", t, func() {
		seed := repository.Seed(repository.DefaultSeedSize)

		Convey("Then it has the expected shape", func() {
			So(len(seed), ShouldEqual, 200)
			So(seed[0].Name, ShouldEqual, "James Anderson")
			So(seed[0].Amount.String(), ShouldEqual, "5")
			So(seed[27].Amount.String(), ShouldEqual, "0.01")
			So(seed[28].Name, ShouldEqual, "User 29")
		})

		Convey("Then amounts never fall below the floor", func() {
			floor := decimal.RequireFromString("0.005")
			for _, e := range seed {
				So(e.Amount.GreaterThanOrEqual(floor), ShouldBeTrue)
				So(e.Validate(), ShouldBeNil)
			}
		})

		Convey("Then ids are unique", func() {
			ids := make(map[string]struct{}, len(seed))
			for _, e := range seed {
				_, dup := ids[e.ID]
				So(dup, ShouldBeFalse)
				ids[e.ID] = struct{}{}
			}
			So(len(ids), ShouldEqual, len(seed))
		})

		Convey("Then a small total yields just the named top", func() {
			So(len(repository.Seed(0)), ShouldEqual, 28)
			So(len(repository.Seed(30)), ShouldEqual, 30)
		})
	})
}
