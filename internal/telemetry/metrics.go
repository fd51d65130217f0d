// Package telemetry exposes ledger metrics to Prometheus.
package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// PrometheusCollector records transfer and HTTP metrics on a single registry.
type PrometheusCollector struct {
	TransfersTotal      *prometheus.CounterVec
	TransferDuration    prometheus.Histogram
	TransferAmount      *prometheus.HistogramVec
	LockWait            prometheus.Histogram
	NotificationsFailed prometheus.Counter
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewPrometheusCollector registers the ledger metrics on reg.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	factory := promauto.With(reg)

	return &PrometheusCollector{
		TransfersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transfers_total",
				Help: "Total number of transfer attempts",
			},
			[]string{"result"}, // success, insufficient_balance, account_not_found, ...
		),
		TransferDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_transfer_duration_seconds",
				Help:    "Time to process a transfer",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		TransferAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_transfer_amount",
				Help:    "Transfer amount distribution",
				Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000, 10000, 100000},
			},
			[]string{"result"},
		),
		LockWait: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_lock_wait_seconds",
				Help:    "Time spent waiting for both account locks",
				Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
			},
		),
		NotificationsFailed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "ledger_notifications_failed_total",
				Help: "Total number of transfer notifications that could not be sent",
			},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

func (c *PrometheusCollector) RecordTransfer(result string, amount decimal.Decimal, duration time.Duration) {
	c.TransfersTotal.WithLabelValues(result).Inc()
	c.TransferDuration.Observe(duration.Seconds())
	c.TransferAmount.WithLabelValues(result).Observe(amount.InexactFloat64())
}

func (c *PrometheusCollector) RecordLockWait(duration time.Duration) {
	c.LockWait.Observe(duration.Seconds())
}

func (c *PrometheusCollector) RecordNotificationFailure() {
	c.NotificationsFailed.Inc()
}

// RecordHTTPRequest records one served request. route is the matched route pattern,
// not the raw path, to keep label cardinality bounded.
func (c *PrometheusCollector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
