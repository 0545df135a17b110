package testpayments

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/peak/pkg/logger"
)

// Run executes the complete payment flow test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting peak payment test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("payments", config.NumPayments),
		logger.Int("abortEvery", config.AbortEvery),
		logger.String("timeout", config.Timeout.String()),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	client := newHTTPClient(config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate payment flows
	payments := generatePayments(config.NumPayments)
	stats.PaymentsGenerated = len(payments)

	// Step 3: Drive the flows one at a time (the service runs one flow
	// at a time by design, so there is no point in concurrency here)
	if err := drivePayments(ctx, client, config, payments, stats); err != nil {
		return fmt.Errorf("payment driving failed: %w", err)
	}

	// Step 4: Fetch the resulting pyramid
	var pyramid Pyramid
	if err := client.getJSON(ctx, config.BaseURL+"/pyramid", &pyramid); err != nil {
		return fmt.Errorf("pyramid retrieval failed: %w", err)
	}
	stats.PyramidEntries = pyramid.Total

	// Step 5: Verify the pyramid invariants
	if err := verifyPyramid(ctx, client, config, &pyramid, stats); err != nil {
		return fmt.Errorf("pyramid verification failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// drivePayments runs each flow through submit and then approve or abort.
func drivePayments(ctx context.Context, client *HTTPClient, config *Config, payments []Payment, stats *Stats) error {
	log := logger.Get()

	for i, p := range payments {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled while driving payments: %w", ctx.Err())
		default:
		}

		// Record what the service projects before committing to it.
		var projection Projection
		previewURL := fmt.Sprintf("%s/rank/preview?amount=%s", config.BaseURL, p.Amount)
		if err := client.getJSON(ctx, previewURL, &projection); err != nil {
			stats.PaymentsFailed++
			log.Warn(ctx, "preview failed", logger.Int("flow", i), logger.Error(err))
			continue
		}

		var handoff PaymentView
		if err := client.postJSON(ctx, config.BaseURL+"/payment", p, &handoff); err != nil {
			stats.PaymentsFailed++
			log.Warn(ctx, "submit failed", logger.Int("flow", i), logger.Error(err))
			continue
		}

		if config.AbortEvery > 0 && (i+1)%config.AbortEvery == 0 {
			var aborted PaymentView
			if err := client.postJSON(ctx, config.BaseURL+"/payment/abort", nil, &aborted); err != nil {
				stats.PaymentsFailed++
				log.Warn(ctx, "abort failed", logger.Int("flow", i), logger.Error(err))
				continue
			}
			stats.PaymentsAborted++
			continue
		}

		var confirmed PaymentView
		if err := client.postJSON(ctx, config.BaseURL+"/payment/approve", nil, &confirmed); err != nil {
			stats.PaymentsFailed++
			log.Warn(ctx, "approve failed", logger.Int("flow", i), logger.Error(err))
			// Leave the flow in a clean state for the next round.
			_ = client.postJSON(ctx, config.BaseURL+"/payment/close", nil, nil)
			continue
		}

		if confirmed.State != "confirmed" {
			stats.PaymentsFailed++
			log.Warn(ctx, "flow did not confirm",
				logger.Int("flow", i),
				logger.String("state", confirmed.State),
				logger.String("error", confirmed.ErrorMessage))
			_ = client.postJSON(ctx, config.BaseURL+"/payment/close", nil, nil)
			continue
		}

		stats.PaymentsConfirmed++

		// The committed rank must match the pre-submit projection: nothing
		// else mutates the collection while this tool runs.
		if confirmed.ConfirmedRank != nil && *confirmed.ConfirmedRank == projection.ProjectedRank {
			stats.ProjectionMatches++
		} else {
			stats.ProjectionMisses++
			log.Warn(ctx, "confirmed rank diverged from projection",
				logger.Int("flow", i),
				logger.Int("projected", projection.ProjectedRank),
				logger.Any("confirmed", confirmed.ConfirmedRank))
		}

		if err := client.postJSON(ctx, config.BaseURL+"/payment/close", nil, nil); err != nil {
			return fmt.Errorf("failed to close flow %d: %w", i, err)
		}

		if config.Verbose {
			log.Info(ctx, "flow confirmed",
				logger.Int("flow", i),
				logger.String("name", p.Name),
				logger.String("amount", p.Amount),
				logger.Int("projected", projection.ProjectedRank))
		}
	}

	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, flowsPerSecond float64

	if stats.PaymentsGenerated > 0 {
		successRate = float64(stats.PaymentsConfirmed) / float64(stats.PaymentsGenerated) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		flowsPerSecond = float64(stats.PaymentsGenerated) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("paymentsGenerated", stats.PaymentsGenerated),
		logger.Int("paymentsConfirmed", stats.PaymentsConfirmed),
		logger.Int("paymentsAborted", stats.PaymentsAborted),
		logger.Int("paymentsFailed", stats.PaymentsFailed),
		logger.Int("projectionMatches", stats.ProjectionMatches),
		logger.Int("projectionMisses", stats.ProjectionMisses),
		logger.Int("pyramidEntries", stats.PyramidEntries),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("flowsPerSecond", flowsPerSecond))
}
