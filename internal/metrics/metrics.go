package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for agora.
// A nil *MetricsRegistry is valid and records nothing.
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Business Metrics
	MembersRegisteredTotal prometheus.Counter
	LoginsTotal            *prometheus.CounterVec
	FollowRequestsTotal    *prometheus.CounterVec
	PostsCreatedTotal      prometheus.Counter

	reg prometheus.Registerer
}

// NewMetricsRegistry registers every metric on reg
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		reg: reg,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agora_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "agora_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "agora_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agora_cache_hits_total",
				Help: "Total cache hits by cache key prefix",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agora_cache_misses_total",
				Help: "Total cache misses by cache key prefix",
			},
			[]string{"cache_key_pattern"},
		),

		MembersRegisteredTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "agora_members_registered_total",
				Help: "Total members registered",
			},
		),
		LoginsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agora_logins_total",
				Help: "Login attempts by result",
			},
			[]string{"result"},
		),
		FollowRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agora_follow_requests_total",
				Help: "Follow requests by outcome",
			},
			[]string{"outcome"},
		),
		PostsCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "agora_posts_created_total",
				Help: "Total posts created",
			},
		),
	}
}

// RegisterDB exposes connection pool stats for the given handle
func (m *MetricsRegistry) RegisterDB(db *sql.DB, name string) error {
	if m == nil {
		return nil
	}
	return m.reg.Register(collectors.NewDBStatsCollector(db, name))
}

func (m *MetricsRegistry) MemberRegistered() {
	if m == nil {
		return
	}
	m.MembersRegisteredTotal.Inc()
}

func (m *MetricsRegistry) Login(success bool) {
	if m == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	m.LoginsTotal.WithLabelValues(result).Inc()
}

// FollowRequest counts a follow by outcome: requested, accepted, declined
func (m *MetricsRegistry) FollowRequest(outcome string) {
	if m == nil {
		return
	}
	m.FollowRequestsTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsRegistry) PostCreated() {
	if m == nil {
		return
	}
	m.PostsCreatedTotal.Inc()
}

func (m *MetricsRegistry) CacheHit(pattern string) {
	if m == nil {
		return
	}
	m.CacheHitsTotal.WithLabelValues(pattern).Inc()
}

func (m *MetricsRegistry) CacheMiss(pattern string) {
	if m == nil {
		return
	}
	m.CacheMissesTotal.WithLabelValues(pattern).Inc()
}
