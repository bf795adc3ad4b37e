// Package metrics holds the Prometheus collectors of sync runs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "l10nsync"

// Entry outcomes
const (
	EntryWritten = "written"
	EntrySkipped = "skipped"
)

type Metrics struct {
	registry     *prometheus.Registry
	runs         *prometheus.CounterVec
	entries      *prometheus.CounterVec
	bytesWritten prometheus.Counter
}

// New creates collectors on a dedicated registry so that several instances
// can live in one process.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Number of sync runs by result.",
		}, []string{"result"}),
		entries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_total",
			Help:      "Number of archive entries by outcome.",
		}, []string{"outcome"}),
		bytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_written_total",
			Help:      "Bytes of transformed content handed to sinks.",
		}),
	}

	m.registry.MustRegister(
		m.runs,
		m.entries,
		m.bytesWritten,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RunFinished records a run. result is "success" or the error kind.
func (x *Metrics) RunFinished(result string) {
	x.runs.WithLabelValues(result).Inc()
}

func (x *Metrics) EntryWritten(size int) {
	x.entries.WithLabelValues(EntryWritten).Inc()
	x.bytesWritten.Add(float64(size))
}

func (x *Metrics) EntrySkipped() {
	x.entries.WithLabelValues(EntrySkipped).Inc()
}

func (x *Metrics) Runs(result string) prometheus.Counter {
	return x.runs.WithLabelValues(result)
}

func (x *Metrics) Entries(outcome string) prometheus.Counter {
	return x.entries.WithLabelValues(outcome)
}

func (x *Metrics) BytesWritten() prometheus.Counter {
	return x.bytesWritten
}

func (x *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(x.registry, promhttp.HandlerOpts{Registry: x.registry})
}
