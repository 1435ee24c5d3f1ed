// Package metrics holds the Prometheus collectors of one server instance.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PoolStats is the part of pgxpool.Stat exported as gauges.
type PoolStats interface {
	TotalConns() int32
	IdleConns() int32
	AcquiredConns() int32
}

// Metrics owns its registry so several instances can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	registrations *prometheus.CounterVec
	assignments   *prometheus.CounterVec
	submissions   *prometheus.CounterVec
	grades        prometheus.Histogram
	wsClients     prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Latency of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		registrations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "internhub_registrations_total",
				Help: "Registered users by role",
			},
			[]string{"role"},
		),
		assignments: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "internhub_assignments_total",
				Help: "Mentor and project assignments",
			},
			[]string{"kind"},
		),
		submissions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "internhub_submissions_total",
				Help: "Submissions by outcome",
			},
			[]string{"outcome"},
		),
		grades: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "internhub_grades",
				Help:    "Distribution of submission grades",
				Buckets: prometheus.LinearBuckets(0, 1, 11),
			},
		),
		wsClients: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "internhub_ws_clients",
				Help: "Connected dashboard websocket clients",
			},
		),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RegisterPool exports connection pool gauges read from stats on scrape.
func (m *Metrics) RegisterPool(stats func() PoolStats) {
	gauge := func(name, help string, read func(PoolStats) int32) prometheus.GaugeFunc {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: name, Help: help}, func() float64 {
			st := stats()
			if st == nil {
				return 0
			}
			return float64(read(st))
		})
	}
	m.registry.MustRegister(
		gauge("db_pool_total_conns", "Open connections in the pool", PoolStats.TotalConns),
		gauge("db_pool_idle_conns", "Idle connections in the pool", PoolStats.IdleConns),
		gauge("db_pool_acquired_conns", "Connections in use", PoolStats.AcquiredConns),
	)
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) UserRegistered(role string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(role).Inc()
}

func (m *Metrics) MentorAssigned() {
	if m == nil {
		return
	}
	m.assignments.WithLabelValues("mentor").Inc()
}

func (m *Metrics) ProjectAssigned() {
	if m == nil {
		return
	}
	m.assignments.WithLabelValues("project").Inc()
}

func (m *Metrics) Submitted(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Graded(grade int) {
	if m == nil {
		return
	}
	m.grades.Observe(float64(grade))
}

func (m *Metrics) ClientConnected() {
	if m == nil {
		return
	}
	m.wsClients.Inc()
}

func (m *Metrics) ClientDisconnected() {
	if m == nil {
		return
	}
	m.wsClients.Dec()
}
