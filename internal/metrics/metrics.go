package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector handles metrics collection and reporting for the cost engine
// and its HTTP surface.
type Collector struct {
	registry *prometheus.Registry

	entityWrites      *prometheus.CounterVec
	recomputeDuration *prometheus.HistogramVec
	danglingRefs      *prometheus.CounterVec
	advisorRequests   *prometheus.CounterVec
	advisorDuration   prometheus.Histogram
}

// NewCollector creates a new metrics collector with its own registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	entityWrites := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entity_writes_total",
			Help: "Create/update/delete operations per entity",
		},
		[]string{"entity", "action"},
	)

	recomputeDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cost_recompute_duration_seconds",
			Help:    "Time spent recomputing derived cost fields",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"entity"},
	)

	danglingRefs := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dangling_references_total",
			Help: "Line items that resolved to no ingredient or recipe",
		},
		[]string{"entity"},
	)

	advisorRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_requests_total",
			Help: "AI price advisor calls by outcome",
		},
		[]string{"status"},
	)

	advisorDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "advisor_request_duration_seconds",
			Help:    "Latency of AI price advisor calls",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)

	for _, metric := range []prometheus.Collector{
		entityWrites, recomputeDuration, danglingRefs, advisorRequests, advisorDuration,
	} {
		registry.MustRegister(metric)
	}

	return &Collector{
		registry:          registry,
		entityWrites:      entityWrites,
		recomputeDuration: recomputeDuration,
		danglingRefs:      danglingRefs,
		advisorRequests:   advisorRequests,
		advisorDuration:   advisorDuration,
	}
}

// Registry exposes the underlying registry for the metrics HTTP handler.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordWrite counts a create/update/delete against an entity.
func (c *Collector) RecordWrite(entity, action string) {
	c.entityWrites.WithLabelValues(entity, action).Inc()
}

// RecordRecompute observes the duration of a derived-cost recomputation.
func (c *Collector) RecordRecompute(entity string, d time.Duration) {
	c.recomputeDuration.WithLabelValues(entity).Observe(d.Seconds())
}

// RecordDanglingReferences counts unresolved line-item references seen
// during aggregation.
func (c *Collector) RecordDanglingReferences(entity string, n int) {
	if n > 0 {
		c.danglingRefs.WithLabelValues(entity).Add(float64(n))
	}
}

// RecordAdvisorCall counts one advisor round trip and its latency.
func (c *Collector) RecordAdvisorCall(status string, d time.Duration) {
	c.advisorRequests.WithLabelValues(status).Inc()
	c.advisorDuration.Observe(d.Seconds())
}
