// Package metrics holds the Prometheus collectors for the planner.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SimulationsTotal counts engine runs by strategy and terminal outcome.
	SimulationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "debtplanner_simulations_total",
		Help: "Completed payoff simulations by strategy and outcome.",
	}, []string{"strategy", "outcome"})

	// SimulationDuration tracks how long a single engine run takes.
	SimulationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "debtplanner_simulation_duration_seconds",
		Help:    "Duration of a single payoff simulation.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "debtplanner_cache_hits_total",
		Help: "Simulation report cache hits.",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "debtplanner_cache_misses_total",
		Help: "Simulation report cache misses.",
	})

	// HTTPRequests counts API requests by method, route pattern and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "debtplanner_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "debtplanner_http_request_duration_seconds",
		Help:    "HTTP request duration by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)
