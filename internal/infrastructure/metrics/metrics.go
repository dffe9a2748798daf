package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	EntriesApplied     prometheus.Counter
	EntriesRejected    *prometheus.CounterVec
	EntryApplyDuration prometheus.Histogram
	EntryAmount        prometheus.Histogram

	// Wallet metrics
	WalletsCreated prometheus.Counter
	WalletsDeleted prometheus.Counter

	// Database metrics
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		EntriesApplied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_entries_applied_total",
			Help: "Total number of ledger entries committed",
		}),
		EntriesRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_entries_rejected_total",
				Help: "Total number of rejected entries by reason",
			},
			[]string{"reason"},
		),
		EntryApplyDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gowallet_entry_apply_duration_seconds",
			Help:    "Duration of ledger apply operations",
			Buckets: prometheus.DefBuckets,
		}),
		EntryAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gowallet_entry_amount",
			Help:    "Absolute entry amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),

		WalletsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_wallets_created_total",
			Help: "Total number of wallets created",
		}),
		WalletsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_wallets_deleted_total",
			Help: "Total number of wallets deleted",
		}),

		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "gowallet_db_connections",
			Help: "Number of open database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_db_errors_total",
				Help: "Total database errors by operation",
			},
			[]string{"operation"},
		),
	}
}
