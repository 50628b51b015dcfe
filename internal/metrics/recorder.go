package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/project-flotta/sys-metrics-sim/internal/host"
)

const (
	namespace = "sim"

	hostLabel   = "host"
	metricLabel = "metric"

	MetricCPU    = "cpu_pct"
	MetricMemory = "memory_free"
)

// Recorder exposes the simulator's own progress. A nil *Recorder is valid
// and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	documentsWritten *prometheus.CounterVec
	writeErrors      *prometheus.CounterVec
	writeDuration    prometheus.Histogram
	generatorValue   *prometheus.GaugeVec
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		documentsWritten: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "documents_written_total",
				Help:      "The total of documents accepted by the sink",
			}, []string{hostLabel}),
		writeErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "document_write_errors_total",
				Help:      "The total of documents the sink refused",
			}, []string{hostLabel}),
		writeDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "document_write_duration_seconds",
				Help:      "Time spent writing a single document",
				Buckets:   prometheus.DefBuckets,
			}),
		generatorValue: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "generator_value",
				Help:      "The last value produced for a host",
			}, []string{hostLabel, metricLabel}),
	}
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Generated records the values carried by a document before it is written.
func (r *Recorder) Generated(doc *host.Document) {
	if r == nil {
		return
	}
	r.generatorValue.WithLabelValues(doc.HostName, MetricCPU).Set(doc.CPUPct)
	r.generatorValue.WithLabelValues(doc.HostName, MetricMemory).Set(float64(doc.MemoryFree))
}

func (r *Recorder) Written(hostName string, took time.Duration) {
	if r == nil {
		return
	}
	r.documentsWritten.WithLabelValues(hostName).Inc()
	r.writeDuration.Observe(took.Seconds())
}

func (r *Recorder) Failed(hostName string, took time.Duration) {
	if r == nil {
		return
	}
	r.writeErrors.WithLabelValues(hostName).Inc()
	r.writeDuration.Observe(took.Seconds())
}
