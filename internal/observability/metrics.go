package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Encode outcome labels.
const (
	StatusSuccess         = "success"
	StatusMissingField    = "missing_field"
	StatusInvalidSeverity = "invalid_severity"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	RecordsEncoded     *prometheus.CounterVec
	ExtensionsDropped  *prometheus.CounterVec
	ExtensionsAccepted prometheus.Counter
	LineLength         prometheus.Histogram
}

// NewMetrics creates all Prometheus metrics and registers them with
// registry. A nil registry leaves them unregistered.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		RecordsEncoded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cef_records_encoded_total",
				Help: "Total number of records passed to the CEF encoder, by outcome",
			},
			[]string{"status"},
		),
		ExtensionsDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cef_extensions_dropped_total",
				Help: "Total number of extension pairs dropped during encoding",
			},
			[]string{"reason"},
		),
		ExtensionsAccepted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "cef_extensions_accepted_total",
				Help: "Total number of extension pairs written to CEF lines",
			},
		),
		LineLength: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cef_line_length_bytes",
				Help:    "Length of encoded CEF lines",
				Buckets: prometheus.ExponentialBuckets(64, 2, 10), // 64B to 32KB
			},
		),
	}
}

// IncRecordsEncoded increments the records encoded counter.
func (m *Metrics) IncRecordsEncoded(status string) {
	m.RecordsEncoded.WithLabelValues(status).Inc()
}

// IncExtensionsDropped increments the dropped extensions counter.
func (m *Metrics) IncExtensionsDropped(reason string) {
	m.ExtensionsDropped.WithLabelValues(reason).Inc()
}

// AddExtensionsAccepted adds n to the accepted extensions counter.
func (m *Metrics) AddExtensionsAccepted(n int) {
	m.ExtensionsAccepted.Add(float64(n))
}

// ObserveLineLength observes the length of an encoded line.
func (m *Metrics) ObserveLineLength(n int) {
	m.LineLength.Observe(float64(n))
}
