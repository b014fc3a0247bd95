// Package metrics provides Prometheus metrics collection for postshop.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "postshop"

// Collector holds all Prometheus metrics.
// Helper methods are safe to call on a nil *Collector, so metrics can be
// switched off without guarding every call site.
type Collector struct {
	// Request metrics
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	// Action metrics
	ActionsTotal *prometheus.CounterVec

	// Page cache metrics
	CacheLookups       *prometheus.CounterVec
	CacheInvalidations *prometheus.CounterVec

	// Config metrics
	ConfigReloads      prometheus.Counter
	ConfigReloadErrors prometheus.Counter

	registry prometheus.Gatherer
}

// New creates a collector registered on a fresh registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	c := NewWithRegistry(reg)
	c.registry = reg
	return c
}

// NewWithRegistry creates a new metrics collector with a custom registry.
// Useful for testing to avoid global state.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	c := &Collector{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "route", "status"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "requests_in_flight",
				Help:      "Number of requests currently being processed",
			},
		),

		ActionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "actions_total",
				Help:      "Create/update/delete actions by entity and outcome",
			},
			[]string{"entity", "action", "outcome"},
		),

		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "page_cache_lookups_total",
				Help:      "Page cache lookups by result (hit, miss)",
			},
			[]string{"result"},
		),
		CacheInvalidations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "page_cache_invalidated_entries_total",
				Help:      "Page cache entries dropped by tag invalidation, by tag kind",
			},
			[]string{"tag"},
		),

		ConfigReloads: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "config_reloads_total",
				Help:      "Total number of successful config reloads",
			},
		),
		ConfigReloadErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "config_reload_errors_total",
				Help:      "Total number of config reload errors",
			},
		),
	}

	if g, ok := reg.(prometheus.Gatherer); ok {
		c.registry = g
	}
	return c
}

// Gatherer returns the registry the collector was registered on.
func (c *Collector) Gatherer() prometheus.Gatherer {
	if c == nil || c.registry == nil {
		return prometheus.DefaultGatherer
	}
	return c.registry
}

// Action records one create/update/delete outcome ("ok", "invalid", "not_found", "error").
func (c *Collector) Action(entity, action, outcome string) {
	if c == nil {
		return
	}
	c.ActionsTotal.WithLabelValues(entity, action, outcome).Inc()
}

// CacheLookup records a page cache hit or miss.
func (c *Collector) CacheLookup(hit bool) {
	if c == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	c.CacheLookups.WithLabelValues(result).Inc()
}

// CacheInvalidated records n entries dropped for tag.
func (c *Collector) CacheInvalidated(tag string, n int) {
	if c == nil || n == 0 {
		return
	}
	c.CacheInvalidations.WithLabelValues(TagKind(tag)).Add(float64(n))
}

// ConfigReloaded records a config reload attempt.
func (c *Collector) ConfigReloaded(err error) {
	if c == nil {
		return
	}
	if err != nil {
		c.ConfigReloadErrors.Inc()
		return
	}
	c.ConfigReloads.Inc()
}

// TagKind strips the item id from a cache tag to keep label cardinality
// bounded: "post:abc" -> "post", "posts" -> "posts".
func TagKind(tag string) string {
	if i := strings.IndexByte(tag, ':'); i >= 0 {
		return tag[:i]
	}
	return tag
}

// NormalizePath bounds label cardinality for requests that matched no route.
func NormalizePath(path string) string {
	if len(path) > 50 {
		return path[:50] + "..."
	}
	return path
}
