// Package metrics defines all custom Prometheus metrics for the gateway. It
// is the single source of truth for metric names, labels, and help strings.
// promauto registers everything with the default registry at package init;
// the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gateway"

// AuthFailuresTotal counts rejected authentications by internal reason.
// The HTTP response stays uniform; the split exists only for observability.
// Label:
//   - reason: "missing_credential", "expired", or "invalid"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected request authentications, by reason.",
	},
	[]string{"reason"},
)

// CommandsProcessedTotal counts completion calls that returned a response.
var CommandsProcessedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commands_processed_total",
		Help:      "Total number of commands completed by the model.",
	},
)

// CommandErrorsTotal counts failed completion calls.
// Label:
//   - reason: "empty_command", "completion_failed"
var CommandErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "command_errors_total",
		Help:      "Total number of commands that failed.",
	},
	[]string{"reason"},
)

// CommandDuration measures the completion round-trip.
var CommandDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "command_duration_seconds",
		Help:      "Duration of model completion calls.",
		Buckets:   prometheus.DefBuckets,
	},
)

// HistoryQueueDepth tracks pending history writes per dispatcher worker.
// Label:
//   - worker_id: numeric worker index ("0", "1", ...)
var HistoryQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "history_queue_depth",
		Help:      "Current number of history records pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// HistoryWritesTotal counts persisted history records by outcome.
// Label:
//   - status: "ok" or "error"
var HistoryWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "history_writes_total",
		Help:      "Total number of history write attempts, by outcome.",
	},
	[]string{"status"},
)

// EmailsSentTotal counts outbound email deliveries by outcome.
// Label:
//   - status: "ok" or "error"
var EmailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of outbound email attempts, by outcome.",
	},
	[]string{"status"},
)
