package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	Registry *prometheus.Registry

	// Transaction metrics
	TransactionsApplied  *prometheus.CounterVec
	TransactionsRejected *prometheus.CounterVec
	FormatErrors         prometheus.Counter
	ProcessDuration      prometheus.Histogram

	// Account metrics
	Accounts       prometheus.Gauge
	LockedAccounts prometheus.Gauge

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates all metrics and registers them on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,

		// Transaction metrics
		TransactionsApplied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_transactions_applied_total",
				Help: "Total number of transactions applied to the ledger",
			},
			[]string{"type"},
		),
		TransactionsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_transactions_rejected_total",
				Help: "Total number of transactions rejected by the ledger",
			},
			[]string{"type", "reason"},
		),
		FormatErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "payments_format_errors_total",
			Help: "Total number of malformed input records",
		}),
		ProcessDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "payments_process_duration_seconds",
			Help:    "Duration of a full processing run",
			Buckets: prometheus.DefBuckets,
		}),

		// Account metrics
		Accounts: factory.NewGauge(prometheus.GaugeOpts{
			Name: "payments_accounts",
			Help: "Number of accounts in the ledger",
		}),
		LockedAccounts: factory.NewGauge(prometheus.GaugeOpts{
			Name: "payments_accounts_locked",
			Help: "Number of locked accounts in the ledger",
		}),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payments_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
	}
}

// WriteToTextfile writes the current state of the registry in the text
// exposition format, suitable for the node_exporter textfile collector.
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
