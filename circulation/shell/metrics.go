package shell

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// Journal metric names.
const (
	MetricJournalEventsTotal    = "circulation_journal_events_total"
	MetricJournalAppendDuration = "circulation_journal_append_duration_seconds"
	MetricJournalAppendErrors   = "circulation_journal_append_errors_total"
)

const labelEventType = "event_type"

var _ eventstore.MetricsCollector = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements eventstore.MetricsCollector with Prometheus collectors.
// Metrics with unknown names are ignored.
type PrometheusMetrics struct {
	eventsTotal    *prometheus.CounterVec
	appendErrors   prometheus.Counter
	appendDuration prometheus.Histogram
}

// NewPrometheusMetrics creates the journal collectors and registers them with the given registerer.
func NewPrometheusMetrics(registerer prometheus.Registerer) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricJournalEventsTotal,
			Help: "Number of domain events appended to the circulation journal.",
		}, []string{labelEventType}),
		appendErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricJournalAppendErrors,
			Help: "Number of failed journal appends.",
		}),
		appendDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricJournalAppendDuration,
			Help:    "Duration of journal appends.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	for _, collector := range []prometheus.Collector{m.eventsTotal, m.appendErrors, m.appendDuration} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// RecordDuration observes a duration for a known histogram.
func (m *PrometheusMetrics) RecordDuration(metric string, duration time.Duration, _ map[string]string) {
	if metric == MetricJournalAppendDuration {
		m.appendDuration.Observe(duration.Seconds())
	}
}

// IncrementCounter increments a known counter.
func (m *PrometheusMetrics) IncrementCounter(metric string, labels map[string]string) {
	switch metric {
	case MetricJournalEventsTotal:
		m.eventsTotal.WithLabelValues(labels[labelEventType]).Inc()
	case MetricJournalAppendErrors:
		m.appendErrors.Inc()
	}
}
