package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Status is the outcome of one sweep combination.
type Status string

const (
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Recorder receives sweep progress. Implementations must be safe for concurrent use.
type Recorder interface {
	// SweepStarted is called once the grid is known
	SweepStarted(kind string, total int)
	// CombinationFinished is called once per processed combination
	CombinationFinished(kind string, status Status, duration time.Duration)
	// SweepFinished is called when the sweep returns, partial or not
	SweepFinished(kind string, partial bool, duration time.Duration)
}

// PrometheusRecorder implements Recorder on its own registry so several sweeps or tests
// never collide on the default one.
type PrometheusRecorder struct {
	registry     *prometheus.Registry
	combinations *prometheus.CounterVec
	runDuration  *prometheus.HistogramVec
	sweeps       *prometheus.CounterVec
	sweepSeconds *prometheus.HistogramVec
	inFlight     *prometheus.GaugeVec
	gridSize     *prometheus.GaugeVec
}

// NewPrometheusRecorder creates a recorder with a fresh registry.
func NewPrometheusRecorder() *PrometheusRecorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &PrometheusRecorder{
		registry: registry,
		combinations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "argo_sweep_combinations_total",
				Help: "Total number of processed parameter combinations",
			},
			[]string{"strategy", "status"},
		),
		runDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "argo_sweep_run_duration_seconds",
				Help:    "Duration of a single backtest run in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
			},
			[]string{"strategy"},
		),
		sweeps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "argo_sweep_sweeps_total",
				Help: "Total number of finished sweeps",
			},
			[]string{"strategy", "partial"},
		),
		sweepSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "argo_sweep_duration_seconds",
				Help:    "Duration of a whole sweep in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"strategy"},
		),
		inFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "argo_sweep_in_flight",
				Help: "Number of sweeps currently running",
			},
			[]string{"strategy"},
		),
		gridSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "argo_sweep_grid_size",
				Help: "Number of combinations in the most recent sweep grid",
			},
			[]string{"strategy"},
		),
	}
}

// Registry exposes the registry, for example to serve it or gather it in tests.
func (r *PrometheusRecorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *PrometheusRecorder) SweepStarted(kind string, total int) {
	r.inFlight.WithLabelValues(kind).Inc()
	r.gridSize.WithLabelValues(kind).Set(float64(total))
}

func (r *PrometheusRecorder) CombinationFinished(kind string, status Status, duration time.Duration) {
	r.combinations.WithLabelValues(kind, string(status)).Inc()

	if status != StatusSkipped {
		r.runDuration.WithLabelValues(kind).Observe(duration.Seconds())
	}
}

func (r *PrometheusRecorder) SweepFinished(kind string, partial bool, duration time.Duration) {
	partialLabel := "false"
	if partial {
		partialLabel = "true"
	}

	r.inFlight.WithLabelValues(kind).Dec()
	r.sweeps.WithLabelValues(kind, partialLabel).Inc()
	r.sweepSeconds.WithLabelValues(kind).Observe(duration.Seconds())
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) SweepStarted(string, int)                           {}
func (NopRecorder) CombinationFinished(string, Status, time.Duration) {}
func (NopRecorder) SweepFinished(string, bool, time.Duration)          {}
