// Package metrics defines and registers all custom Prometheus metrics for the
// pattern tracker API. It is the single source of truth for metric names,
// labels, and help strings. Counters are incremented by the HTTP handlers on
// successful operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pattern_tracker"

// UsersRegisteredTotal counts account registrations.
// Label:
//   - role: the role assigned at registration ("admin" for the bootstrap user)
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of registered accounts, by assigned role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// OrdersCreatedTotal counts newly created orders.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created.",
	},
)

// OrdersDeletedTotal counts cascading order deletions.
var OrdersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_deleted_total",
		Help:      "Total number of orders deleted (including cascades).",
	},
)

// PatternsUploadedTotal counts pattern file uploads.
// Label:
//   - stage: "initial", "second", or "approved"
var PatternsUploadedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "patterns_uploaded_total",
		Help:      "Total number of pattern files uploaded, by stage.",
	},
	[]string{"stage"},
)

// ApprovalDecisionsTotal counts stage decisions.
// Labels:
//   - stage:  the decided stage
//   - status: "approved" or "rejected"
var ApprovalDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "approval_decisions_total",
		Help:      "Total number of approval decisions, by stage and outcome.",
	},
	[]string{"stage", "status"},
)

// ChatMessagesTotal counts chat messages sent.
// Label:
//   - has_image: "true" when an image was attached
var ChatMessagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_messages_total",
		Help:      "Total number of chat messages sent, by image attachment.",
	},
	[]string{"has_image"},
)
