// Package metrics defines and registers all custom Prometheus metrics for the
// storefront. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on import via
// promauto; HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CatalogFetchTotal counts remote catalog fetches.
// Labels:
//   - slice: "categories", "products" or "portfolio"
//   - result: "ok", "empty" or "error"
var CatalogFetchTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_fetch_total",
		Help:      "Total number of remote catalog fetches, by slice and result.",
	},
	[]string{"slice", "result"},
)

// FallbackServedTotal counts renders that substituted built-in content.
// Label:
//   - slice: "products" or "portfolio"
var FallbackServedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fallback_served_total",
		Help:      "Total number of renders that served built-in demo content.",
	},
	[]string{"slice"},
)

// StaleResponsesTotal counts fetch results dropped because the visitor had
// already entered another view.
var StaleResponsesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_responses_total",
		Help:      "Total number of fetch results discarded for a stale generation.",
	},
)

// FetchQueueDepth tracks requests waiting to be picked up by the dispatcher.
var FetchQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "fetch_queue_depth",
		Help:      "Current number of fetches waiting in the dispatcher queue.",
	},
)

// FetchInFlight tracks catalog fetches currently running.
var FetchInFlight = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "fetch_in_flight",
		Help:      "Current number of catalog fetches in flight.",
	},
)

// FetchDroppedTotal counts requests dropped because the queue was full.
// Label:
//   - slice: "categories", "products" or "portfolio"
var FetchDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_dropped_total",
		Help:      "Total number of fetches dropped on a full dispatcher queue.",
	},
	[]string{"slice"},
)

// RemoteRequestDuration measures calls to the remote catalog service.
// Label:
//   - endpoint: request path, e.g. "/products"
var RemoteRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "remote_request_duration_seconds",
		Help:      "Duration of requests to the remote catalog service.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginTotal counts sign-in attempts.
// Labels:
//   - method: "email", "password" or "signup"
//   - result: "ok" or "error"
var LoginTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_total",
		Help:      "Total number of sign-in attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// CheckoutTotal counts checkout attempts.
// Label:
//   - outcome: "placed", "login_required", "empty_cart", "in_progress" or "failed"
var CheckoutTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_total",
		Help:      "Total number of checkout attempts, by outcome.",
	},
	[]string{"outcome"},
)
