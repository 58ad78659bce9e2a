// Package metrics exposes Prometheus counters and histograms for boundary
// translations and conversion calls.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/roach88/ccsbridge/internal/bridge"
)

const namespace = "ccsbridge"

// Metrics holds the collectors of one registry. It implements
// engine.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	TranslationsTotal   *prometheus.CounterVec
	TranslationDuration *prometheus.HistogramVec
	ConversionsTotal    *prometheus.CounterVec
	ConversionDuration  *prometheus.HistogramVec
	EPSGImported        prometheus.Counter
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		TranslationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bridge",
			Name:      "translations_total",
			Help:      "Boundary translations by operation and outcome code",
		}, []string{"operation", "code"}),

		TranslationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "bridge",
			Name:      "translation_duration_seconds",
			Help:      "Boundary translation latency in seconds",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}, []string{"operation"}),

		ConversionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "conversions_total",
			Help:      "Conversion calls by direction and status",
		}, []string{"direction", "status"}),

		ConversionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "conversion_duration_seconds",
			Help:      "Conversion call latency in seconds, journaling included",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"direction"}),

		EPSGImported: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "epsg",
			Name:      "codes_imported_total",
			Help:      "EPSG codes written to the registry",
		}),
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveTranslation counts one translation and records its latency.
func (m *Metrics) ObserveTranslation(op bridge.Operation, code string, d time.Duration) {
	m.TranslationsTotal.WithLabelValues(string(op), code).Inc()
	m.TranslationDuration.WithLabelValues(string(op)).Observe(d.Seconds())
}

// ObserveConversion counts one conversion call and records its latency.
func (m *Metrics) ObserveConversion(direction, status string, d time.Duration) {
	m.ConversionsTotal.WithLabelValues(direction, status).Inc()
	m.ConversionDuration.WithLabelValues(direction).Observe(d.Seconds())
}

// WriteText writes every gathered metric family in the Prometheus text
// exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
