package observability

import (
	"sync"

	"go.uber.org/zap"

	"github.com/jittakal/cefencoder/pkg/event"
)

// LogSink logs dropped extension pairs at warn level.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a sink that writes diagnostics to logger.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Report logs d.
func (s *LogSink) Report(d event.Diagnostic) {
	s.logger.Warn("extension dropped",
		zap.String("kind", string(d.Kind)),
		zap.String("key", d.Key),
		zap.String("value", d.Value),
		zap.String("reason", d.Message()),
	)
}

// MetricsSink counts dropped extension pairs by kind.
type MetricsSink struct {
	metrics *Metrics
}

// NewMetricsSink creates a sink that counts diagnostics in m.
func NewMetricsSink(m *Metrics) *MetricsSink {
	return &MetricsSink{metrics: m}
}

// Report increments the dropped counter for d's kind.
func (s *MetricsSink) Report(d event.Diagnostic) {
	s.metrics.IncExtensionsDropped(string(d.Kind))
}

// Collector keeps every reported diagnostic. It is safe for concurrent use.
type Collector struct {
	mu          sync.Mutex
	diagnostics []event.Diagnostic
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Report appends d.
func (c *Collector) Report(d event.Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diagnostics = append(c.diagnostics, d)
}

// Diagnostics returns a copy of the collected diagnostics.
func (c *Collector) Diagnostics() []event.Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]event.Diagnostic, len(c.diagnostics))
	copy(out, c.diagnostics)
	return out
}

// Reset discards the collected diagnostics.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diagnostics = nil
}

// MultiSink fans diagnostics out to every non-nil sink.
func MultiSink(sinks ...event.DiagnosticSink) event.DiagnosticSink {
	var active []event.DiagnosticSink
	for _, s := range sinks {
		if s != nil {
			active = append(active, s)
		}
	}
	switch len(active) {
	case 0:
		return event.DiscardSink
	case 1:
		return active[0]
	}
	return event.SinkFunc(func(d event.Diagnostic) {
		for _, s := range active {
			s.Report(d)
		}
	})
}
