package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devhub_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devhub_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// GithubProxyRequests counts outbound GitHub repository lookups by outcome.
	GithubProxyRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devhub_github_proxy_requests_total",
		Help: "Total outbound GitHub repository lookups by outcome",
	}, []string{"outcome"})

	// CacheRequests counts cache lookups by key prefix and result.
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devhub_cache_requests_total",
		Help: "Total cache lookups by key prefix and result",
	}, []string{"prefix", "result"})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		ObserveQuery(operation, table, start)
	}
}
