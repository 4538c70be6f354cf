// Package observability holds the Prometheus metrics and OpenTelemetry spans
// emitted while a transcript is parsed and analysed.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for an analysis run.
type Metrics struct {
	// Parsing
	EventsParsedTotal   prometheus.Counter
	HeadersSkippedTotal prometheus.Counter
	ParseSeconds        prometheus.Histogram

	// Analysis
	SectionsTotal          *prometheus.CounterVec
	StageSeconds           *prometheus.HistogramVec
	AnalyticFailuresTotal  *prometheus.CounterVec
	AnomaliesDetectedTotal *prometheus.CounterVec
	HealthScore            prometheus.Gauge
}

// NewMetrics registers the metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		EventsParsedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "chatpulse_events_parsed_total",
				Help: "Messages parsed from transcripts",
			},
		),
		HeadersSkippedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "chatpulse_headers_skipped_total",
				Help: "Message headers dropped because their date did not parse",
			},
		),
		ParseSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "chatpulse_parse_seconds",
				Help:    "Time spent parsing a transcript",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			},
		),
		SectionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatpulse_sections_total",
				Help: "Per-author report sections built",
			},
			[]string{"scope"},
		),
		StageSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chatpulse_stage_seconds",
				Help:    "Time spent in each analysis stage",
				Buckets: []float64{0.0005, 0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"stage"},
		),
		AnalyticFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatpulse_analytic_failures_total",
				Help: "Analytics that degraded to their empty result",
			},
			[]string{"analytic", "code"},
		),
		AnomaliesDetectedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatpulse_anomalies_detected_total",
				Help: "Anomalies detected for the whole conversation",
			},
			[]string{"category"},
		),
		HealthScore: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "chatpulse_health_score",
				Help: "Health score of the last analysed conversation",
			},
		),
	}
}

// NewDiscardMetrics returns metrics bound to a private registry.
func NewDiscardMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

// RecordParse records one parsed transcript.
func (m *Metrics) RecordParse(events, skipped int, seconds float64) {
	m.EventsParsedTotal.Add(float64(events))
	m.HeadersSkippedTotal.Add(float64(skipped))
	m.ParseSeconds.Observe(seconds)
}

// RecordStage records how long a stage took.
func (m *Metrics) RecordStage(stage string, seconds float64) {
	m.StageSeconds.WithLabelValues(stage).Observe(seconds)
}

// RecordSection counts a built section; scope is "overall" or "author".
func (m *Metrics) RecordSection(scope string) {
	m.SectionsTotal.WithLabelValues(scope).Inc()
}

// RecordFailure counts an analytic that fell back to its empty result.
func (m *Metrics) RecordFailure(analytic, code string) {
	m.AnalyticFailuresTotal.WithLabelValues(analytic, code).Inc()
}

// RecordAnomalies counts detected anomalies per category.
func (m *Metrics) RecordAnomalies(spikes, drops int) {
	m.AnomaliesDetectedTotal.WithLabelValues("spikes").Add(float64(spikes))
	m.AnomaliesDetectedTotal.WithLabelValues("drops").Add(float64(drops))
}

// SetHealthScore records the overall health score.
func (m *Metrics) SetHealthScore(score float64) {
	m.HealthScore.Set(score)
}
