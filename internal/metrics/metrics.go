// Package metrics exposes Prometheus counters for message processing and
// background jobs. A nil *Metrics records nothing.
package metrics

import (
	"net/http"
	"time"

	"pump-radar/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pumpradar"

// Message outcomes.
const (
	OutcomeDropped = "dropped"
	OutcomeEmpty   = "empty"
	OutcomeSignal  = "signal"
	OutcomeError   = "error"
)

type Metrics struct {
	registry *prometheus.Registry

	Messages      *prometheus.CounterVec
	Signals       *prometheus.CounterVec
	PumpsDetected prometheus.Counter
	JobRuns       *prometheus.CounterVec
	JobDuration   *prometheus.HistogramVec
}

// New registers every collector on a private registry, plus the Go runtime
// and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Incoming chat messages by outcome.",
		}, []string{"outcome"}),
		Signals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signals_total",
			Help:      "Stored pump signals by how the coin was found.",
		}, []string{"source"}),
		PumpsDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pumps_detected_total",
			Help:      "Coins announced inside a group's expected pump window.",
		}),
		JobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_runs_total",
			Help:      "Background job runs by job and result.",
		}, []string{"job", "result"}),
		JobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Background job run time.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"job"}),
	}
	m.registry.MustRegister(
		m.Messages,
		m.Signals,
		m.PumpsDetected,
		m.JobRuns,
		m.JobDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveJob(job string, took time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.JobRuns.WithLabelValues(job, result).Inc()
	m.JobDuration.WithLabelValues(job).Observe(took.Seconds())
}

// ObserveMessage counts one processed message. sig is the stored signal, if any.
func (m *Metrics) ObserveMessage(dropped bool, sig *domain.PumpSignal, err error) {
	if m == nil {
		return
	}
	switch {
	case err != nil:
		m.Messages.WithLabelValues(OutcomeError).Inc()
		return
	case dropped:
		m.Messages.WithLabelValues(OutcomeDropped).Inc()
		return
	case sig == nil:
		m.Messages.WithLabelValues(OutcomeEmpty).Inc()
		return
	}

	m.Messages.WithLabelValues(OutcomeSignal).Inc()
	m.Signals.WithLabelValues(signalSource(sig)).Inc()
	if sig.InExpectedWindow {
		m.PumpsDetected.Inc()
	}
}

func signalSource(sig *domain.PumpSignal) string {
	switch {
	case sig.FromLink:
		return "link"
	case sig.Coin != "":
		return "text"
	case len(sig.Candidates) > 1:
		return "ambiguous"
	case sig.MinutesToPump != nil:
		return "countdown"
	default:
		return "exchange"
	}
}
