package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the recorder's collectors.
type Metrics struct {
	RecordsWritten prometheus.Counter
	Failures       *prometheus.CounterVec
	DroppedRecords prometheus.Counter
	HandleLatency  prometheus.Histogram
	NotifyFailures prometheus.Counter
	gatherer       prometheus.Gatherer
}

// NewMetrics builds the collectors and registers them on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		RecordsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recorder_records_written_total",
			Help: "Metadata records written to the table",
		}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recorder_failures_total",
			Help: "Invocations that ended with status 500, by error kind",
		}, []string{"kind"}),
		DroppedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recorder_dropped_records_total",
			Help: "Event records beyond the first that were not processed",
		}),
		HandleLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "recorder_handle_seconds",
			Help:    "Time to handle a single upload event",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
		}),
		NotifyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recorder_notify_failures_total",
			Help: "Post-write notifications that could not be published",
		}),
		gatherer: reg,
	}
	reg.MustRegister(m.RecordsWritten, m.Failures, m.DroppedRecords, m.HandleLatency, m.NotifyFailures)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
