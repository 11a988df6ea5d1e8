// Package observability defines the application's Prometheus metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guildbook_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// RenderDuration records markup render latency.
	RenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "guildbook_markup_render_duration_seconds",
		Help:    "Markup render latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// VoteToggles counts endorsement toggles by outcome.
	VoteToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guildbook_vote_toggles_total",
		Help: "Total number of endorsement toggles by outcome",
	}, []string{"outcome"})

	// CacheHits counts cache-aside hits and misses by key kind.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guildbook_cache_requests_total",
		Help: "Cache-aside lookups by key kind and result",
	}, []string{"kind", "result"})
)
