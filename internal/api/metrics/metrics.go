// Package metrics defines all custom Prometheus metrics for the collab
// platform API. It is the single source of truth for metric names, labels,
// and help strings. promauto registers everything with the default registry
// at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "collab"

// ── Audit pipeline metrics ───────────────────────────────────────────────────

// AuditRecordsTotal counts durably written audit records, by action label.
var AuditRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_records_total",
		Help:      "Total number of audit records written, by action.",
	},
	[]string{"action"},
)

// AuditErrorsTotal counts audit pipeline failures.
// Label:
//   - stage: "log_write" or "fan_out"
var AuditErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_errors_total",
		Help:      "Total number of audit pipeline failures, by stage.",
	},
	[]string{"stage"},
)

// ── Notification fan-out metrics ─────────────────────────────────────────────

// NotificationsCreatedTotal counts notifications created by the fan-out,
// by originating action.
var NotificationsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_created_total",
		Help:      "Total number of notifications created by the audit fan-out.",
	},
	[]string{"action"},
)

// FanoutDedupTotal counts fan-out deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (delivered)
var FanoutDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fanout_dedup_total",
		Help:      "Total number of fan-out dedup checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Payout metrics ───────────────────────────────────────────────────────────

// PayoutQueueDepth tracks the number of payout tasks waiting per worker.
var PayoutQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "payout_queue_depth",
		Help:      "Current number of payout tasks pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// PayoutProcessingDuration measures end-to-end payout processing time.
// Label:
//   - result: "ok" or "error"
var PayoutProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "payout_processing_duration_seconds",
		Help:      "Duration of payout processing from dequeue to terminal status.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── File serving metrics ─────────────────────────────────────────────────────

// DeliverableDownloadsTotal counts deliverable file downloads.
// Label:
//   - result: "ok", "rejected" (unsafe path), or "missing"
var DeliverableDownloadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deliverable_downloads_total",
		Help:      "Total number of deliverable download requests, by result.",
	},
	[]string{"result"},
)
