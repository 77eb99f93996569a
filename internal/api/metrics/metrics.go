// Package metrics defines and registers all custom Prometheus metrics for
// the gestão contábil API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gestao"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "account_disabled", "unavailable"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenValidationsTotal counts token validations performed by the auth middleware.
// Label:
//   - result: "success", "missing", "malformed", "invalid_signature", "expired",
//     "account_disabled", "unavailable"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of token validations, by result.",
	},
	[]string{"result"},
)

// DocumentsUploadedTotal counts successfully stored documents.
// Label:
//   - category: document category ("fiscal", "contabil", ...)
var DocumentsUploadedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_uploaded_total",
		Help:      "Total number of documents uploaded, by category.",
	},
	[]string{"category"},
)

// NotificationsPublishedTotal counts notifications handed to the broker.
// Label:
//   - kind: "obligation_due", "obligation_overdue", "system"
var NotificationsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_published_total",
		Help:      "Total number of notifications published to the broker, by kind.",
	},
	[]string{"kind"},
)

// ObligationsOverdueGauge tracks the number of open obligations past their
// due date. Updated by the reminder sweep.
var ObligationsOverdueGauge = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "obligations_overdue",
		Help:      "Current number of open obligations past their due date.",
	},
)

// ReminderSweepDuration measures how long one reminder sweep takes.
var ReminderSweepDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "reminder_sweep_duration_seconds",
		Help:      "Duration of a full reminder sweep over due obligations.",
		Buckets:   prometheus.DefBuckets,
	},
)
