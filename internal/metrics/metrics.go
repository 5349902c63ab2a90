// Package metrics exposes dispatch and persistence counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrSnakeDoc/logincmd/internal/domain"
)

const Namespace = "logincmd"

type Prometheus struct {
	registry        *prometheus.Registry
	dispatchedTotal *prometheus.CounterVec
	sinkDuration    *prometheus.HistogramVec
	pendingEntries  prometheus.Gauge
	logEntries      prometheus.Gauge
	loginsTotal     *prometheus.CounterVec
	persistFailures prometheus.Counter
}

// New registers every collector on a fresh registry, plus the Go and process collectors.
func New() *Prometheus {
	reg := prometheus.NewRegistry()

	m := &Prometheus{
		registry: reg,
		dispatchedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "entries_finished_total",
				Help:      "Execution entries that reached a terminal status",
			},
			[]string{"status"},
		),
		sinkDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "sink_duration_seconds",
				Help:      "Time spent inside the command sink",
				Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
			},
			[]string{"status"},
		),
		pendingEntries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "pending_entries",
				Help:      "Entries waiting in the dispatch queue",
			},
		),
		logEntries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "log_entries",
				Help:      "Entries retained in the audit log",
			},
		),
		loginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "logins_total",
				Help:      "Login signals by outcome",
			},
			[]string{"outcome"},
		),
		persistFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "persist_failures_total",
				Help:      "Failed saves to the settings store",
			},
		),
	}

	reg.MustRegister(
		m.dispatchedTotal,
		m.sinkDuration,
		m.pendingEntries,
		m.logEntries,
		m.loginsTotal,
		m.persistFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Prometheus) Finished(status domain.Status) {
	m.dispatchedTotal.WithLabelValues(string(status)).Inc()
}

func (m *Prometheus) SinkCall(status domain.Status, d time.Duration) {
	m.sinkDuration.WithLabelValues(string(status)).Observe(d.Seconds())
}

func (m *Prometheus) SetPending(n int) { m.pendingEntries.Set(float64(n)) }
func (m *Prometheus) SetLogSize(n int) { m.logEntries.Set(float64(n)) }

func (m *Prometheus) Login(ok bool) {
	outcome := "built"
	if !ok {
		outcome = "identity_not_ready"
	}
	m.loginsTotal.WithLabelValues(outcome).Inc()
}

func (m *Prometheus) PersistFailed() { m.persistFailures.Inc() }

// Registry exposes the underlying registry for tests and custom collectors.
func (m *Prometheus) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
