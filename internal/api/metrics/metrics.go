// Package metrics defines and registers all custom Prometheus metrics for
// the opsdesk API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "opsdesk"

// ── Request metrics ───────────────────────────────────────────────────────────

// RequestsCreatedTotal counts created requests.
// Label:
//   - source: "operator" or "public-link"
var RequestsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_created_total",
		Help:      "Total number of requests created, by provenance.",
	},
	[]string{"source"},
)

// ── Public intake metrics ─────────────────────────────────────────────────────

// PublicSubmissionsTotal counts public intake attempts by outcome.
// Label:
//   - result: "created", "bad_pin", "not_found", "rate_limited"
var PublicSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "public_submissions_total",
		Help:      "Total number of public intake submissions, by outcome.",
	},
	[]string{"result"},
)

// ── Client metrics ────────────────────────────────────────────────────────────

// ClientsCreatedTotal counts newly created clients.
var ClientsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clients_created_total",
		Help:      "Total number of clients created.",
	},
)

// ── Report metrics ────────────────────────────────────────────────────────────

// ReportDuration measures how long a weekly report computation takes.
var ReportDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_duration_seconds",
		Help:      "Duration of weekly report computation, scan to result.",
		Buckets:   prometheus.DefBuckets,
	},
)
