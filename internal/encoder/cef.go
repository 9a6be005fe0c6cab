package encoder

import (
	stderrors "errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jittakal/cefencoder/internal/errors"
	"github.com/jittakal/cefencoder/internal/observability"
	"github.com/jittakal/cefencoder/internal/validator"
	"github.com/jittakal/cefencoder/pkg/encoder"
	"github.com/jittakal/cefencoder/pkg/event"
)

var _ encoder.Encoder = (*CEF)(nil)

// CEF encodes event records into single-line Common Event Format strings.
// It holds no mutable state after construction and is safe for concurrent
// use as long as the configured sink is.
type CEF struct {
	config    event.Config
	lookup    event.ValidatorLookup
	validator *validator.RecordValidator
	sink      event.DiagnosticSink
	logger    *zap.Logger
	metrics   *observability.Metrics
}

// Option configures a CEF encoder.
type Option func(*CEF)

// WithSink sets the sink that receives diagnostics for dropped extensions.
func WithSink(sink event.DiagnosticSink) Option {
	return func(c *CEF) {
		c.sink = sink
	}
}

// WithLogger sets the logger. Dropped extensions are logged at warn level
// and rejected records at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *CEF) {
		c.logger = logger
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *CEF) {
		c.metrics = m
	}
}

// NewCEF creates an encoder using cfg as the default vendor, product and
// version, and lookup as the extension schema.
func NewCEF(cfg event.Config, lookup event.ValidatorLookup, opts ...Option) *CEF {
	c := &CEF{
		config:    cfg,
		lookup:    lookup,
		validator: validator.NewRecordValidator(),
	}
	for _, opt := range opts {
		opt(c)
	}

	var sinks []event.DiagnosticSink
	if c.sink != nil {
		sinks = append(sinks, c.sink)
	}
	if c.logger != nil {
		sinks = append(sinks, observability.NewLogSink(c.logger))
	} else {
		c.logger = zap.NewNop()
	}
	if c.metrics != nil {
		sinks = append(sinks, observability.NewMetricsSink(c.metrics))
	}
	c.sink = observability.MultiSink(sinks...)

	return c
}

// Result is the outcome of a successful encode.
type Result struct {
	// Line is the complete CEF line, without a line terminator.
	Line string
	// Fields holds the encoded top-level fields, defaults applied. The
	// caller's record is never modified.
	Fields event.Record
	// Dropped lists the extension pairs left out of Line.
	Dropped []event.Diagnostic
}

// Encode returns the CEF line for rec.
func (c *CEF) Encode(rec event.Record) (string, error) {
	res, err := c.EncodeResult(rec)
	if err != nil {
		return "", err
	}
	return res.Line, nil
}

// EncodeResult encodes rec and reports the dropped extension pairs along
// with the line. It fails with *errors.MissingFieldError when a required
// field is absent or empty and with *errors.SeverityError when severity is
// not an integer in [0, 10].
func (c *CEF) EncodeResult(rec event.Record) (*Result, error) {
	fields := c.encodeFields(rec)

	if err := c.validator.CheckRequired(fields); err != nil {
		return nil, c.reject(err)
	}
	severity, err := c.validator.Severity(fields)
	if err != nil {
		return nil, c.reject(err)
	}

	var b strings.Builder
	b.WriteString("CEF:")
	b.WriteString(event.FormatVersion)
	for _, field := range event.RequiredFields[:len(event.RequiredFields)-1] {
		b.WriteByte('|')
		b.WriteString(fields[field].(string))
	}
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(severity))

	var dropped []event.Diagnostic
	if pairs, ok := event.Pairs(rec[event.FieldExtensions]); ok {
		var ext string
		ext, dropped = EncodeExtensions(pairs, c.lookup, c.sink)
		b.WriteByte('|')
		b.WriteString(ext)
		if c.metrics != nil {
			c.metrics.AddExtensionsAccepted(len(pairs) - len(dropped))
		}
	}

	line := b.String()
	if c.metrics != nil {
		c.metrics.IncRecordsEncoded(observability.StatusSuccess)
		c.metrics.ObserveLineLength(len(line))
	}

	return &Result{Line: line, Fields: fields, Dropped: dropped}, nil
}

// EncodeBatch encodes every record and returns the lines of those that
// succeeded, in input order. Failures are joined into the returned error,
// each wrapped in *errors.RecordError carrying the record's index.
func (c *CEF) EncodeBatch(recs []event.Record) ([]string, error) {
	lines := make([]string, 0, len(recs))
	var errs []error
	for i, rec := range recs {
		line, err := c.Encode(rec)
		if err != nil {
			errs = append(errs, &errors.RecordError{Index: i, Err: err})
			continue
		}
		lines = append(lines, line)
	}
	return lines, stderrors.Join(errs...)
}

// encodeFields returns an encoded copy of every top-level field except the
// extensions. Vendor, product and version are replaced by the configured
// defaults, all three together, unless the record supplies all three.
func (c *CEF) encodeFields(rec event.Record) event.Record {
	fields := make(event.Record, len(rec)+3)
	for k, v := range rec {
		if k == event.FieldExtensions {
			continue
		}
		fields[k] = EncodeValue(v)
	}

	if !(supplied(rec, event.FieldVendor) && supplied(rec, event.FieldProduct) && supplied(rec, event.FieldVersion)) {
		fields[event.FieldVendor] = EncodeValue(c.config.Vendor)
		fields[event.FieldProduct] = EncodeValue(c.config.Product)
		fields[event.FieldVersion] = EncodeValue(c.config.Version)
	}
	return fields
}

// supplied reports whether rec carries a non-nil value for field that
// encodes to non-empty text.
func supplied(rec event.Record, field string) bool {
	v, ok := rec[field]
	return ok && v != nil && EncodeValue(v) != ""
}

func (c *CEF) reject(err error) error {
	c.logger.Debug("record rejected",
		zap.String("field", errors.Field(err)),
		zap.Error(err),
	)
	if c.metrics != nil {
		status := observability.StatusMissingField
		if stderrors.Is(err, errors.ErrInvalidSeverity) {
			status = observability.StatusInvalidSeverity
		}
		c.metrics.IncRecordsEncoded(status)
	}
	return err
}
