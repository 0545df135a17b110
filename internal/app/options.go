package service

import (
	"time"

	"github.com/okian/peak/internal/adapters/gateway"
	"github.com/okian/peak/internal/adapters/repository"
	"github.com/okian/peak/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStoreDir sets the directory the entry collection persists under.
func WithStoreDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.storeDir = dir
		}
	}
}

// WithStoreKey sets the persistence key for the collection.
func WithStoreKey(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.storeKey = key
		}
	}
}

// WithSeedSize sets the size of the fallback seed dataset.
func WithSeedSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.seedSize = size
		}
	}
}

// WithDedupeSize sets the size of the capture deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithAnonymizationThreshold sets the rank below which entries show only
// their positional label.
func WithAnonymizationThreshold(threshold int) Option {
	return func(s *Service) {
		if threshold >= 0 {
			s.threshold = threshold
		}
	}
}

// WithCurrency sets the order currency code.
func WithCurrency(code string) Option {
	return func(s *Service) {
		if code != "" {
			s.currency = code
		}
	}
}

// WithGatewayCredentials sets the gateway API credentials.
func WithGatewayCredentials(clientID, clientSecret string) Option {
	return func(s *Service) {
		s.gatewayID = clientID
		s.gatewaySecret = clientSecret
	}
}

// WithGatewayBaseURL sets the gateway endpoint (sandbox vs live).
func WithGatewayBaseURL(u string) Option {
	return func(s *Service) {
		if u != "" {
			s.gatewayBaseURL = u
		}
	}
}

// WithGatewayTimeout sets the gateway HTTP timeout.
func WithGatewayTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.gatewayTimeout = d
		}
	}
}

// WithGateway injects a pre-built gateway, mainly for tests.
func WithGateway(gw gateway.Gateway) Option {
	return func(s *Service) {
		s.gw = gw
	}
}

// WithStore injects a pre-built entry store, mainly for tests.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
