// Package metrics defines the observability interfaces for codec and worker
// operations. Implementations are optional: passing nil disables collection
// with zero overhead.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// CodecMetrics records codec operation outcomes as seen by the worker.
//
// All methods must be safe for concurrent use. A nil CodecMetrics is valid
// and records nothing.
type CodecMetrics interface {
	// RecordRequestStart increments the in-flight gauge for an operation.
	RecordRequestStart(op string)

	// RecordRequestEnd decrements the in-flight gauge for an operation.
	RecordRequestEnd(op string)

	// RecordOperation records a completed operation with its duration and
	// outcome. errorKind is empty on success, otherwise the codec error
	// kind ("CapacityExceeded", "NoSignature", ...) or "Canceled".
	RecordOperation(op string, errorKind string, duration time.Duration)

	// RecordPayloadBytes records the plaintext size moved through an
	// encode or decode.
	RecordPayloadBytes(op string, n int)
}

var (
	mu       sync.RWMutex
	registry *prometheus.Registry

	// newCodecMetrics is installed by the prometheus subpackage during
	// package initialization. The indirection keeps this package free of
	// collector definitions while letting callers stay agnostic of the
	// backend.
	newCodecMetrics func() CodecMetrics
)

// InitRegistry creates the process-wide Prometheus registry and enables
// metrics collection. Call once at startup, before constructing workers.
func InitRegistry() {
	mu.Lock()
	defer mu.Unlock()
	if registry != nil {
		return
	}
	registry = prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// IsEnabled reports whether InitRegistry has been called.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return registry != nil
}

// GetRegistry returns the process-wide registry, or nil when disabled.
func GetRegistry() *prometheus.Registry {
	mu.RLock()
	defer mu.RUnlock()
	return registry
}

// NewCodecMetrics returns a backend-specific CodecMetrics, or nil when
// metrics are disabled.
func NewCodecMetrics() CodecMetrics {
	if !IsEnabled() || newCodecMetrics == nil {
		return nil
	}
	return newCodecMetrics()
}

// RegisterCodecMetricsConstructor installs the backend constructor. Called
// by the prometheus subpackage from init().
func RegisterCodecMetricsConstructor(constructor func() CodecMetrics) {
	newCodecMetrics = constructor
}
