package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/peak/internal/testpayments"
)

// Default configuration constants.
const (
	defaultNumPayments = 25
	defaultAbortEvery  = 5
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numPayments = flag.Int("payments", defaultNumPayments, "Number of payment flows to drive")
		abortEvery  = flag.Int("abort-every", defaultAbortEvery, "Abort every Nth flow instead of approving (0 disables)")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile     = flag.String("log", "", "Log file for test output (default: test_log_TIMESTAMP.log)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		testpayments.ShowHelp()
		return
	}

	// Setup logging
	if err := testpayments.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	// Create test configuration
	config := &testpayments.Config{
		BaseURL:     *baseURL,
		NumPayments: *numPayments,
		AbortEvery:  *abortEvery,
		Timeout:     *timeout,
		LogFile:     *logFile,
		Verbose:     *verbose,
	}

	// Run the test
	if err := testpayments.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		return
	}
}
