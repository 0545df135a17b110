package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			metricPrefixOpt := WithMetricPrefix("test-prefix")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			refreshIntervalOpt := WithRefreshInterval(5 * time.Second)
			customLabelsOpt := WithCustomLabels(map[string]string{"env": "test"})

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(metricPrefixOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(refreshIntervalOpt, ShouldNotBeNil)
				So(customLabelsOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewMetricsManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewMetricsManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithMetricPrefix("test-prefix"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(10*time.Second),
				WithCustomLabels(map[string]string{"env": "test", "version": "1.0"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording payment metrics", func() {
			Convey("Then it should record payment lifecycle transitions", func() {
				So(func() {
					RecordPaymentStarted()
					RecordPaymentConfirmed()
					RecordPaymentFailed()
					RecordPaymentAborted()
				}, ShouldNotPanic)
			})

			Convey("And it should record capture metrics", func() {
				So(func() {
					RecordCaptureDuplicate()
					RecordCaptureLatency(12.5)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording gateway metrics", func() {
			So(func() {
				RecordGatewayOrderCreated()
				RecordGatewayError("create_order", "unavailable")
				RecordGatewayLatency("capture", 42.0)
			}, ShouldNotPanic)
		})

		Convey("When recording store metrics", func() {
			So(func() {
				UpdateEntriesTotal(200)
				RecordEntryCommitted()
				RecordCommitDuplicate()
				RecordContentUpdate()
				RecordStoreSaveLatency(3.2)
				RecordStoreSaveError()
				RecordSeedFallback()
			}, ShouldNotPanic)
		})

		Convey("When recording ranking metrics", func() {
			So(func() {
				RecordRankingComputeLatency(0.8)
				RecordProjectionRequest()
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("pyramid", "GET", "200")
				RecordHTTPRequestDuration("pyramid", "GET", "200", 1.5)
				RecordErrorByType("client_error", "medium")
				RecordErrorByEndpoint("payment", "POST", "client_error")
				RecordErrorLatency("http", "client_error", 2.0)
			}, ShouldNotPanic)
		})

		Convey("When recording system metrics", func() {
			So(func() {
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(10)
				RecordSystemGCPauseTime(0.5)
			}, ShouldNotPanic)
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When fetching the registry", func() {
			registry := GetRegistry()

			Convey("Then it should not be nil", func() {
				So(registry, ShouldNotBeNil)
			})
		})
	})
}
