package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcomes used as the "outcome" label.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Manager owns the Prometheus metrics for one process.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	runs            *prometheus.CounterVec
	replacements    *prometheus.CounterVec
	rewriteDuration prometheus.Histogram
	targetBytes     *prometheus.GaugeVec
	lastRunUnix     prometheus.Gauge
}

// NewManager creates a metrics manager on its own registry so that Go
// runtime collectors stay out of the exported textfile.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "routefix",
		subsystem:        "rewrite",
		histogramBuckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		enabled:          true,
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_total",
		Help:      "Total number of rewrite runs by outcome",
	}, []string{"outcome"})

	m.replacements = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "replacements_total",
		Help:      "Total number of route prefixes removed, by rule",
	}, []string{"rule"})

	m.rewriteDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duration_seconds",
		Help:      "Wall time of a rewrite run in seconds",
		Buckets:   m.histogramBuckets,
	})

	m.targetBytes = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "target_bytes",
		Help:      "Size of the target file before and after the rewrite",
	}, []string{"direction"})

	m.lastRunUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time of the last rewrite run",
	})
}

// RecordReplacements adds count to the counter for rule. Zero counts still
// create the series so every rule shows up in the export.
func (m *Manager) RecordReplacements(rule string, count int) {
	if !m.enabled {
		return
	}
	m.replacements.WithLabelValues(rule).Add(float64(count))
}

// RecordRun records one finished run.
func (m *Manager) RecordRun(outcome string, duration time.Duration) {
	if !m.enabled {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
	m.rewriteDuration.Observe(duration.Seconds())
	m.lastRunUnix.SetToCurrentTime()
}

// RecordTargetSize records the target size before and after the rewrite.
func (m *Manager) RecordTargetSize(read, written int) {
	if !m.enabled {
		return
	}
	m.targetBytes.WithLabelValues("read").Set(float64(read))
	m.targetBytes.WithLabelValues("written").Set(float64(written))
}

// WriteTextfile writes all gathered metrics to path in the text exposition
// format, suitable for the node_exporter textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}
