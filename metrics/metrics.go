package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors exported on /metrics. A nil *Metrics is valid
// and records nothing, which keeps tests free of registry plumbing.
type Metrics struct {
	registry       *prometheus.Registry
	asks           *prometheus.CounterVec
	askDuration    prometheus.Histogram
	sessionsActive prometheus.Gauge
	ingestions     *prometheus.CounterVec
}

// New creates the collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		asks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "growthvision_backend_asks_total",
			Help: "Questions sent to the QA backend, by outcome.",
		}, []string{"outcome"}),
		askDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "growthvision_backend_ask_seconds",
			Help:    "Round trip time of QA backend calls.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "growthvision_sessions_active",
			Help: "Chat sessions currently held in memory.",
		}),
		ingestions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "growthvision_ingestion_submissions_total",
			Help: "Ingestion submissions handed to the sink, by mode and result.",
		}, []string{"mode", "result"}),
	}
	reg.MustRegister(m.asks, m.askDuration, m.sessionsActive, m.ingestions)
	return m
}

func (m *Metrics) ObserveAsk(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.asks.WithLabelValues(outcome).Inc()
	m.askDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.sessionsActive.Set(float64(n))
}

func (m *Metrics) ObserveIngestion(mode, result string) {
	if m == nil {
		return
	}
	m.ingestions.WithLabelValues(mode, result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
