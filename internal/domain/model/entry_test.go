package model_test

import (
	"testing"
	"time"

	"github.com/okian/peak/internal/domain/model"
	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEntry_Validate(t *testing.T) {
	Convey("Given a well-formed entry", t, func() {
		entry := model.Entry{
			ID:        "txn-1",
			Name:      "Ada Lovelace",
			Amount:    decimal.RequireFromString("12.50"),
			Timestamp: time.Now(),
		}

		Convey("Then it should validate", func() {
			So(entry.Validate(), ShouldBeNil)
		})

		Convey("When the id is blank", func() {
			entry.ID = "  "
			So(entry.Validate(), ShouldEqual, model.ErrEmptyID)
		})

		Convey("When the name is blank", func() {
			entry.Name = ""
			So(entry.Validate(), ShouldEqual, model.ErrEmptyName)
		})

		Convey("When the amount is zero", func() {
			entry.Amount = decimal.Zero
			So(entry.Validate(), ShouldEqual, model.ErrInvalidAmount)
		})

		Convey("When the amount is negative", func() {
			entry.Amount = decimal.RequireFromString("-0.01")
			So(entry.Validate(), ShouldEqual, model.ErrInvalidAmount)
		})

		Convey("When the timestamp is unset", func() {
			entry.Timestamp = time.Time{}
			So(entry.Validate(), ShouldEqual, model.ErrZeroTimestamp)
		})
	})
}
