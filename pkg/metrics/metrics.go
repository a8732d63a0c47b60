// Package metrics exposes recording counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Session metrics
	ActiveSessions  prometheus.Gauge
	SessionsStarted prometheus.Counter
	SessionsFailed  prometheus.Counter
	SessionDuration prometheus.Histogram

	// Frame metrics
	FramesCaptured *prometheus.CounterVec
	FramesDropped  *prometheus.CounterVec
	FramesEncoded  *prometheus.CounterVec

	// Encoder metrics
	FinalizeDuration prometheus.Histogram
	FinalizeErrors   prometheus.Counter
}

// New creates the metrics and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "camrecord_active_sessions",
			Help: "Number of running recording sessions",
		}),
		SessionsStarted: f.NewCounter(prometheus.CounterOpts{
			Name: "camrecord_sessions_started_total",
			Help: "Total number of recording sessions started",
		}),
		SessionsFailed: f.NewCounter(prometheus.CounterOpts{
			Name: "camrecord_sessions_failed_total",
			Help: "Total number of sessions that failed to set up",
		}),
		SessionDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "camrecord_session_duration_seconds",
			Help:    "Duration of recording sessions in seconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1s to ~34min
		}),

		FramesCaptured: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "camrecord_frames_captured_total",
				Help: "Total number of frames read from sources",
			},
			[]string{"side"},
		),
		FramesDropped: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "camrecord_frames_dropped_total",
				Help: "Total number of ticks skipped per side",
			},
			[]string{"side", "reason"}, // reason: read or write
		),
		FramesEncoded: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "camrecord_frames_encoded_total",
				Help: "Total number of frames submitted to encoders",
			},
			[]string{"side"},
		),

		FinalizeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "camrecord_finalize_duration_seconds",
			Help:    "Time spent finalizing a recording",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}),
		FinalizeErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "camrecord_finalize_errors_total",
			Help: "Total number of recordings that failed to finalize",
		}),
	}
}

// RecordSessionStart records a session starting
func (m *Metrics) RecordSessionStart() {
	m.ActiveSessions.Inc()
	m.SessionsStarted.Inc()
}

// RecordSessionStop records a session ending
func (m *Metrics) RecordSessionStop(durationSeconds float64) {
	m.ActiveSessions.Dec()
	m.SessionDuration.Observe(durationSeconds)
}

// RecordSessionFailed records a session that never started
func (m *Metrics) RecordSessionFailed() {
	m.ActiveSessions.Dec()
	m.SessionsFailed.Inc()
}

// RecordFrame records a frame read from a source
func (m *Metrics) RecordFrame(side string) {
	m.FramesCaptured.WithLabelValues(side).Inc()
}

// RecordDrop records a skipped tick
func (m *Metrics) RecordDrop(side, reason string) {
	m.FramesDropped.WithLabelValues(side, reason).Inc()
}

// RecordEncoded records a frame accepted by an encoder
func (m *Metrics) RecordEncoded(side string) {
	m.FramesEncoded.WithLabelValues(side).Inc()
}

// RecordFinalize records one finalize call
func (m *Metrics) RecordFinalize(durationSeconds float64, err error) {
	m.FinalizeDuration.Observe(durationSeconds)
	if err != nil {
		m.FinalizeErrors.Inc()
	}
}
