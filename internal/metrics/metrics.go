// Package metrics holds the Prometheus collectors for the service. All
// collectors register on the default registry and are served by the
// /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests counts month and search calls against recreation.gov,
	// partitioned by outcome (ok, error).
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campsight_upstream_requests_total",
		Help: "Upstream availability API requests by outcome.",
	}, []string{"outcome"})

	// UpstreamDuration observes the latency of upstream calls.
	UpstreamDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "campsight_upstream_request_duration_seconds",
		Help:    "Latency of upstream availability API requests.",
		Buckets: prometheus.DefBuckets,
	})

	// Checks counts availability checks served, one per requested campground.
	Checks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campsight_checks_total",
		Help: "Campground availability checks by result (ok, unknown_campground, fetch_error).",
	}, []string{"result"})
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"

	ResultOK                = "ok"
	ResultUnknownCampground = "unknown_campground"
	ResultFetchError        = "fetch_error"
)
