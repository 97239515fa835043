// Package metrics defines the Prometheus collectors for the loancalc
// server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Calculations counts calculation requests by kind and status.
	Calculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loancalc_calculations_total",
			Help: "Calculation requests served, by kind and status.",
		},
		[]string{"kind", "status"},
	)

	// CalculationDuration observes wall time per calculation kind.
	CalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loancalc_calculation_duration_seconds",
			Help:    "Time spent computing results, by kind.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	// CacheRequests counts response-cache lookups by result (hit/miss).
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loancalc_cache_requests_total",
			Help: "Response cache lookups, by result.",
		},
		[]string{"result"},
	)

	// RateLimited counts requests rejected by the rate limiter.
	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loancalc_rate_limited_total",
			Help: "Requests rejected by the rate limiter.",
		},
	)
)
