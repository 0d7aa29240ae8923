package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nodeapi7000",
		Subsystem: "dispatcher",
		Name:      "commands_total",
		Help:      "Count of dispatched client commands.",
	}, []string{"command", "status"})

	commandDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "nodeapi7000",
		Subsystem: "dispatcher",
		Name:      "command_duration_seconds",
		Help:      "Duration of command handling.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"command", "status"})
)

// Dispatcher tracks metrics for the command dispatch path.
type Dispatcher struct{}

// NewDispatcher constructs a Dispatcher observer.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Observe records one dispatched command outcome and duration.
func (Dispatcher) Observe(command string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	commandsTotal.WithLabelValues(command, status).Inc()
	commandDuration.WithLabelValues(command, status).Observe(time.Since(started).Seconds())
}
