// Package metrics exposes Prometheus collectors for HTTP traffic and ledger activity.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ledger"

// Metrics owns a dedicated registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	instancesCreated  prometheus.Counter
	instancesSkipped  prometheus.Counter
	ensureConflicts   prometheus.Counter
	obligationChanges *prometheus.CounterVec
}

// New creates and registers every collector.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "How many HTTP requests processed, partitioned by status code, method and route.",
			},
			[]string{"code", "method", "route"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "The HTTP request latencies in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"code", "method", "route"},
		),
		instancesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fixed_instances_created_total",
			Help:      "Fixed instances materialized by ensure.",
		}),
		instancesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fixed_instances_skipped_total",
			Help:      "Templates skipped by ensure because the month already had an instance.",
		}),
		ensureConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fixed_instance_conflicts_total",
			Help:      "Instance inserts lost to a concurrent ensure and treated as success.",
		}),
		obligationChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fixed_instance_changes_total",
				Help:      "Pay, unpay and delete operations on fixed instances.",
			},
			[]string{"action"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestCount,
		m.requestDuration,
		m.instancesCreated,
		m.instancesSkipped,
		m.ensureConflicts,
		m.obligationChanges,
	)
	return m
}

// Registry returns the registry backing the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records the count and latency of each request. The route
// template is used as label to keep cardinality bounded.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.requestDuration.WithLabelValues(status, c.Request.Method, route).Observe(time.Since(start).Seconds())
		m.requestCount.WithLabelValues(status, c.Request.Method, route).Inc()
	}
}

// ObserveEnsure implements adapter.LedgerMetrics.
func (m *Metrics) ObserveEnsure(created, skipped, conflicts int) {
	m.instancesCreated.Add(float64(created))
	m.instancesSkipped.Add(float64(skipped))
	m.ensureConflicts.Add(float64(conflicts))
}

// ObserveObligationChange implements adapter.LedgerMetrics.
func (m *Metrics) ObserveObligationChange(action string) {
	m.obligationChanges.WithLabelValues(action).Inc()
}
