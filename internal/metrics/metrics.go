// Package metrics exposes Prometheus collectors for the API and the
// attendance engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gravadigital/community-api/internal/domain/attendance"
)

const namespace = "community"

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	toggles       *prometheus.CounterVec
	readsDegraded *prometheus.CounterVec
	birthdays     prometheus.Gauge
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

// New creates and registers all collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "attendance",
			Name:      "toggles_total",
			Help:      "RSVP toggles by store action and outcome.",
		}, []string{"action", "outcome"}),
		readsDegraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "attendance",
			Name:      "reads_degraded_total",
			Help:      "Attendance reads that failed and fell back to a default.",
		}, []string{"field"}),
		birthdays: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "birthday",
			Name:      "projected_profiles",
			Help:      "Profiles in the most recent birthday projection.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.toggles,
		m.readsDegraded,
		m.birthdays,
		m.requests,
		m.duration,
	)

	return m
}

// Registry returns the registry the collectors live in
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ReadDegraded implements attendance.Observer
func (m *Metrics) ReadDegraded(field string) {
	m.readsDegraded.WithLabelValues(field).Inc()
}

// ToggleSettled implements attendance.Observer
func (m *Metrics) ToggleSettled(action attendance.Action, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "rolled_back"
	}
	m.toggles.WithLabelValues(action.String(), outcome).Inc()
}

// ProjectionSize records how many profiles the last birthday projection held
func (m *Metrics) ProjectionSize(n int) {
	m.birthdays.Set(float64(n))
}

// Middleware records request counts and latency. Unmatched routes share one
// label so arbitrary paths cannot blow up cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
