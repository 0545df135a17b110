// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StoreDir is the directory holding the persisted entry collection.
	StoreDir string `koanf:"store_dir"`

	// StoreKey is the key the full entry collection is saved under.
	StoreKey string `koanf:"store_key"`

	// Currency is the ISO currency code sent to the payment gateway.
	Currency string `koanf:"currency"`

	// AnonymizationThreshold is the rank cutoff below which identity is hidden.
	AnonymizationThreshold int `koanf:"anonymization_threshold"`

	// SeedSize is the number of entries in the fallback seed dataset.
	SeedSize int `koanf:"seed_size"`

	// DedupeSize sets the size of the capture-callback dedupe cache.
	DedupeSize int `koanf:"dedupe_size"`

	// GatewayBaseURL points at the external payment gateway.
	GatewayBaseURL string `koanf:"gateway_base_url"`

	// GatewayClientID and GatewayClientSecret authenticate against the gateway.
	GatewayClientID     string `koanf:"gateway_client_id"`
	GatewayClientSecret string `koanf:"gateway_client_secret"`

	// GatewayTimeoutMS bounds each gateway round-trip.
	GatewayTimeoutMS int `koanf:"gateway_timeout_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	c := &Config{
		LogLevel:               "info",
		Addr:                   ":9080",
		StoreDir:               "data",
		StoreKey:               "peak_entries",
		Currency:               "GBP",
		AnonymizationThreshold: 28,
		SeedSize:               200,
		DedupeSize:             10_000,
		GatewayBaseURL:         "https://api-m.sandbox.paypal.com",
		GatewayClientID:        "",
		GatewayClientSecret:    "",
		GatewayTimeoutMS:       30_000,
	}
	return c
}
