package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/peak/internal/adapters/gateway"
	"github.com/okian/peak/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// fakePayPal serves the token, create-order and capture endpoints.
type fakePayPal struct {
	mux          *http.ServeMux
	orders       int
	captures     int
	captureID    string
	failCapture  bool
	rejectOrders bool
}

func newFakePayPal() *fakePayPal {
	f := &fakePayPal{mux: http.NewServeMux(), captureID: "TXN-123"}

	f.mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		if _, _, ok := r.BasicAuth(); !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "fake-token",
			"expires_in":   3600,
		})
	})

	f.mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		if f.rejectOrders {
			w.WriteHeader(http.StatusUnprocessableEntity)
			fmt.Fprint(w, `{"name":"UNPROCESSABLE_ENTITY"}`)
			return
		}
		f.orders++
		json.NewEncoder(w).Encode(map[string]any{
			"id":     fmt.Sprintf("ORDER-%d", f.orders),
			"status": "CREATED",
		})
	})

	f.mux.HandleFunc("/v2/checkout/orders/ORDER-1/capture", func(w http.ResponseWriter, r *http.Request) {
		if f.failCapture {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		f.captures++
		resp := map[string]any{
			"id":     "ORDER-1",
			"status": "COMPLETED",
		}
		if f.captureID != "" {
			resp["purchase_units"] = []map[string]any{{
				"payments": map[string]any{
					"captures": []map[string]any{{"id": f.captureID, "status": "COMPLETED"}},
				},
			}}
		}
		json.NewEncoder(w).Encode(resp)
	})

	return f
}

func TestPayPalClient(t *testing.T) {
	ctx := context.Background()

	Convey("Given a PayPal client against a fake gateway", t, func() {
		fake := newFakePayPal()
		srv := httptest.NewServer(fake.mux)
		defer srv.Close()

		client := gateway.NewPayPalClient("id", "secret", gateway.WithBaseURL(srv.URL))

		Convey("When creating an order", func() {
			order, err := client.CreateOrder(ctx, decimal.RequireFromString("1.50"), "GBP", "Ascension to Peak Rank #5")

			Convey("Then the order id and status come back", func() {
				So(err, ShouldBeNil)
				So(order.ID, ShouldEqual, "ORDER-1")
				So(order.Status, ShouldEqual, "CREATED")
			})

			Convey("And capturing it yields the transaction id", func() {
				So(err, ShouldBeNil)
				captured, err := client.CaptureOrder(ctx, order.ID)
				So(err, ShouldBeNil)
				So(captured.TransactionID, ShouldEqual, "TXN-123")
				So(captured.Status, ShouldEqual, "COMPLETED")
			})
		})

		Convey("When the capture response omits the capture id", func() {
			fake.captureID = ""
			order, err := client.CreateOrder(ctx, decimal.RequireFromString("1.00"), "GBP", "test")
			So(err, ShouldBeNil)

			captured, err := client.CaptureOrder(ctx, order.ID)

			Convey("Then the order id stands in", func() {
				So(err, ShouldBeNil)
				So(captured.TransactionID, ShouldEqual, "ORDER-1")
			})
		})

		Convey("When the gateway declines the order", func() {
			fake.rejectOrders = true
			_, err := client.CreateOrder(ctx, decimal.RequireFromString("1.00"), "GBP", "test")

			Convey("Then the error is a rejection, not unavailability", func() {
				So(errors.Is(err, gateway.ErrRejected), ShouldBeTrue)
				So(errors.Is(err, gateway.ErrUnavailable), ShouldBeFalse)
			})
		})

		Convey("When the gateway errors during capture", func() {
			order, err := client.CreateOrder(ctx, decimal.RequireFromString("1.00"), "GBP", "test")
			So(err, ShouldBeNil)
			fake.failCapture = true

			_, err = client.CaptureOrder(ctx, order.ID)

			Convey("Then the error is unavailability", func() {
				So(errors.Is(err, gateway.ErrUnavailable), ShouldBeTrue)
			})
		})

		Convey("When the host cannot be reached at all", func() {
			srv.Close()
			_, err := client.CreateOrder(ctx, decimal.RequireFromString("1.00"), "GBP", "test")

			Convey("Then the error is unavailability", func() {
				So(errors.Is(err, gateway.ErrUnavailable), ShouldBeTrue)
			})
		})

		Convey("When making several calls", func() {
			_, err := client.CreateOrder(ctx, decimal.RequireFromString("1.00"), "GBP", "a")
			So(err, ShouldBeNil)
			_, err = client.CreateOrder(ctx, decimal.RequireFromString("2.00"), "GBP", "b")
			So(err, ShouldBeNil)

			Convey("Then both orders reach the gateway", func() {
				So(fake.orders, ShouldEqual, 2)
			})
		})
	})
}
