// Package metrics exposes Prometheus instrumentation for the constellation.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcomes recorded by ObserveFetch.
const (
	FetchOK       = "ok"
	FetchError    = "error"
	FetchFallback = "fallback"
)

// Manager owns the collectors and the registry they live in.
type Manager struct {
	namespace    string
	subsystem    string
	frameBuckets []float64
	registry     *prometheus.Registry

	reconciles    prometheus.Counter
	starsAdded    prometheus.Counter
	starsRemoved  prometheus.Counter
	clampedValues prometheus.Counter
	stars         prometheus.Gauge
	connections   prometheus.Gauge
	inspects      *prometheus.CounterVec
	fetches       *prometheus.CounterVec
	fetchLatency  prometheus.Histogram
	frameDuration prometheus.Histogram
}

// NewManager builds a Manager on a private registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:    "constellation",
		subsystem:    "",
		frameBuckets: []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .0166, .025, .05},
		registry:     prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.init()
	return m
}

func (m *Manager) init() {
	opts := func(name, help string) prometheus.Opts {
		return prometheus.Opts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help}
	}
	m.reconciles = prometheus.NewCounter(prometheus.CounterOpts(opts("reconciles_total", "Progress mappings applied to the field.")))
	m.starsAdded = prometheus.NewCounter(prometheus.CounterOpts(opts("stars_added_total", "Stars created by reconcile.")))
	m.starsRemoved = prometheus.NewCounter(prometheus.CounterOpts(opts("stars_removed_total", "Stars removed by reconcile.")))
	m.clampedValues = prometheus.NewCounter(prometheus.CounterOpts(opts("clamped_progress_total", "Progress values outside [0,100] that were clamped.")))
	m.stars = prometheus.NewGauge(prometheus.GaugeOpts(opts("stars", "Stars currently in the field.")))
	m.connections = prometheus.NewGauge(prometheus.GaugeOpts(opts("connections", "Connections drawn in the last frame.")))
	m.inspects = prometheus.NewCounterVec(prometheus.CounterOpts(opts("inspects_total", "Stars opened in the inspector.")), []string{"skill"})
	m.fetches = prometheus.NewCounterVec(prometheus.CounterOpts(opts("progress_fetches_total", "Progress fetch attempts by outcome.")), []string{"outcome"})
	m.fetchLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "progress_fetch_seconds", Help: "Latency of progress API calls.",
		Buckets: prometheus.DefBuckets,
	})
	m.frameDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "frame_update_seconds", Help: "Time spent in one field update.",
		Buckets: m.frameBuckets,
	})
	m.registry.MustRegister(
		m.reconciles, m.starsAdded, m.starsRemoved, m.clampedValues,
		m.stars, m.connections, m.inspects, m.fetches, m.fetchLatency, m.frameDuration,
	)
}

// Registry returns the registry holding every collector.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveReconcile records one applied mapping.
func (m *Manager) ObserveReconcile(added, removed, clamped, total int) {
	if m == nil {
		return
	}
	m.reconciles.Inc()
	m.starsAdded.Add(float64(added))
	m.starsRemoved.Add(float64(removed))
	m.clampedValues.Add(float64(clamped))
	m.stars.Set(float64(total))
}

// ObserveInspect records a click on a star.
func (m *Manager) ObserveInspect(skill string) {
	if m == nil {
		return
	}
	m.inspects.WithLabelValues(skill).Inc()
}

// ObserveFetch records a progress API call.
func (m *Manager) ObserveFetch(outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(outcome).Inc()
	if outcome != FetchFallback {
		m.fetchLatency.Observe(took.Seconds())
	}
}

// ObserveFrame records one update's duration and the link count drawn.
func (m *Manager) ObserveFrame(took time.Duration, connections int) {
	if m == nil {
		return
	}
	m.frameDuration.Observe(took.Seconds())
	m.connections.Set(float64(connections))
}
