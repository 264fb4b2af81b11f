package ratelimit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// decisionsTotal counts checks by backend and outcome.
	// Labels: backend (redis, local), result (allowed, limited)
	decisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lifebook",
			Subsystem: "ratelimit",
			Name:      "decisions_total",
			Help:      "Total number of rate limit decisions",
		},
		[]string{"backend", "result"},
	)

	// fallbacksTotal counts Redis failures answered by the local store.
	fallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lifebook",
			Subsystem: "ratelimit",
			Name:      "redis_fallbacks_total",
			Help:      "Total number of checks served by the local limiter after a Redis error",
		},
	)

	sweepsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lifebook",
			Subsystem: "ratelimit",
			Name:      "local_sweeps_total",
			Help:      "Total number of expired-key sweeps of the local store",
		},
	)
)

func observe(backend string, d Decision) {
	result := "allowed"
	if !d.Allowed {
		result = "limited"
	}
	decisionsTotal.WithLabelValues(backend, result).Inc()
}
