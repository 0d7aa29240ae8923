// Package metrics exposes prometheus observers for the serving path.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nodeapi7000",
		Subsystem: "ledger_repository",
		Name:      "queries_total",
		Help:      "Count of ledger store queries.",
	}, []string{"operation", "status"})

	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "nodeapi7000",
		Subsystem: "ledger_repository",
		Name:      "query_duration_seconds",
		Help:      "Duration of ledger store queries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
)

// Repository tracks metrics for ledger store operations.
type Repository struct{}

// NewRepository constructs a Repository observer.
func NewRepository() *Repository {
	return &Repository{}
}

// Observe records one query outcome and duration.
func (Repository) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	queriesTotal.WithLabelValues(operation, status).Inc()
	queryDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
