package testpayments

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/okian/peak/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "test_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the payment test tool.
func ShowHelp() {
	os.Stdout.WriteString(`Peak Payment Test Tool
======================

Drives randomized payment flows against a running Peak service and
verifies the pyramid invariants afterwards.

Usage:
  go run cmd/test-payments/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -payments int
        Number of payment flows to drive (default 25)
  -abort-every int
        Abort every Nth flow instead of approving it (default 5, 0 disables)
  -timeout duration
        HTTP request timeout (default 30s)
  -log string
        Log file for test output (default: test_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Test with default settings
  go run cmd/test-payments/main.go

  # Drive more flows against another instance
  go run cmd/test-payments/main.go -payments 100 -url http://localhost:8080

  # Approve everything
  go run cmd/test-payments/main.go -abort-every 0 -verbose
`)
}
