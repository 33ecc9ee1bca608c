// Package prometheus provides the Prometheus-backed implementation of the
// metrics interfaces. Importing it for side effects wires the constructors:
//
//	import _ "github.com/mecodix/dontsee/pkg/metrics/prometheus"
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mecodix/dontsee/pkg/metrics"
)

func init() {
	metrics.RegisterCodecMetricsConstructor(newCodecMetrics)
}

// codecMetrics implements metrics.CodecMetrics over the shared registry.
type codecMetrics struct {
	operations   *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	inFlight     *prometheus.GaugeVec
	payloadBytes *prometheus.CounterVec
}

func newCodecMetrics() metrics.CodecMetrics {
	reg := metrics.GetRegistry()
	if reg == nil {
		return nil
	}

	return &codecMetrics{
		operations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "dontsee_codec_operations_total",
				Help: "Total codec operations by kind and outcome",
			},
			[]string{"op", "outcome"},
		),
		duration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dontsee_codec_operation_duration_seconds",
				Help:    "Codec operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		inFlight: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dontsee_codec_operations_in_flight",
				Help: "Codec operations currently being processed",
			},
			[]string{"op"},
		),
		payloadBytes: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "dontsee_codec_payload_bytes_total",
				Help: "Plaintext bytes embedded or extracted",
			},
			[]string{"op"},
		),
	}
}

func (m *codecMetrics) RecordRequestStart(op string) {
	if m == nil {
		return
	}
	m.inFlight.WithLabelValues(op).Inc()
}

func (m *codecMetrics) RecordRequestEnd(op string) {
	if m == nil {
		return
	}
	m.inFlight.WithLabelValues(op).Dec()
}

func (m *codecMetrics) RecordOperation(op string, errorKind string, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := errorKind
	if outcome == "" {
		outcome = "success"
	}
	m.operations.WithLabelValues(op, outcome).Inc()
	m.duration.WithLabelValues(op).Observe(duration.Seconds())
}

func (m *codecMetrics) RecordPayloadBytes(op string, n int) {
	if m == nil {
		return
	}
	m.payloadBytes.WithLabelValues(op).Add(float64(n))
}
