package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okian/peak/pkg/metrics"
)

// SandboxBaseURL is the PayPal sandbox REST endpoint.
const SandboxBaseURL = "https://api-m.sandbox.paypal.com"

// PayPalClient talks to the PayPal Orders v2 REST API with a cached
// client-credentials token.
type PayPalClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// PayPalOption applies a configuration option to the PayPalClient.
type PayPalOption func(*PayPalClient)

// WithBaseURL overrides the API endpoint (sandbox vs live, tests).
func WithBaseURL(u string) PayPalOption {
	return func(c *PayPalClient) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) PayPalOption {
	return func(c *PayPalClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewPayPalClient creates a client for the Orders v2 API.
func NewPayPalClient(clientID, clientSecret string, opts ...PayPalOption) *PayPalClient {
	c := &PayPalClient{
		baseURL:      SandboxBaseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// token returns a valid bearer token, fetching a new one when the cached
// token is missing or about to expire.
func (c *PayPalClient) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Until(c.tokenExpiry) > time.Minute {
		return c.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", statusError("token", resp.StatusCode, body)
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("parse token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrRejected)
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return c.accessToken, nil
}

type orderRequest struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []purchaseUnit `json:"purchase_units"`
}

type purchaseUnit struct {
	Amount      amountValue `json:"amount"`
	Description string      `json:"description,omitempty"`
}

type amountValue struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type orderResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

// CreateOrder registers a capture-intent order for the given amount.
func (c *PayPalClient) CreateOrder(ctx context.Context, amount decimal.Decimal, currency string, description string) (Order, error) {
	start := time.Now()

	payload := orderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnit{{
			Amount: amountValue{
				CurrencyCode: currency,
				Value:        amount.StringFixed(2),
			},
			Description: description,
		}},
	}

	var out orderResponse
	if err := c.post(ctx, "/v2/checkout/orders", payload, &out); err != nil {
		metrics.RecordGatewayError("create_order", errorKind(err))
		return Order{}, err
	}
	if out.ID == "" {
		metrics.RecordGatewayError("create_order", "rejected")
		return Order{}, fmt.Errorf("%w: order response missing id", ErrRejected)
	}

	metrics.RecordGatewayOrderCreated()
	metrics.RecordGatewayLatency("create_order", float64(time.Since(start).Milliseconds()))
	return Order{ID: out.ID, Status: out.Status}, nil
}

// CaptureOrder captures an order the buyer has approved.
func (c *PayPalClient) CaptureOrder(ctx context.Context, orderID string) (Capture, error) {
	start := time.Now()

	var out orderResponse
	path := fmt.Sprintf("/v2/checkout/orders/%s/capture", orderID)
	if err := c.post(ctx, path, nil, &out); err != nil {
		metrics.RecordGatewayError("capture", errorKind(err))
		return Capture{}, err
	}

	captured := Capture{Status: out.Status}
	if len(out.PurchaseUnits) > 0 && len(out.PurchaseUnits[0].Payments.Captures) > 0 {
		captured.TransactionID = out.PurchaseUnits[0].Payments.Captures[0].ID
	}
	if captured.TransactionID == "" {
		captured.TransactionID = out.ID
	}
	if !strings.EqualFold(out.Status, "COMPLETED") {
		metrics.RecordGatewayError("capture", "rejected")
		return Capture{}, fmt.Errorf("%w: capture status %q", ErrRejected, out.Status)
	}

	metrics.RecordGatewayLatency("capture", float64(time.Since(start).Milliseconds()))
	return captured, nil
}

// post sends an authenticated JSON request and decodes the response into out.
func (c *PayPalClient) post(ctx context.Context, path string, payload any, out any) error {
	tok, err := c.token(ctx)
	if err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(path, resp.StatusCode, raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// statusError classifies a non-2xx response: 5xx is unavailability,
// everything else is a rejection.
func statusError(op string, status int, body []byte) error {
	kind := ErrRejected
	if status >= 500 {
		kind = ErrUnavailable
	}
	msg := string(body)
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return fmt.Errorf("%w: %s returned %d: %s", kind, op, status, msg)
}

func errorKind(err error) string {
	if errors.Is(err, ErrUnavailable) {
		return "unavailable"
	}
	return "rejected"
}
