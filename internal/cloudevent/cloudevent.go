// Package cloudevent maps CloudEvents 1.0 events onto CEF event records.
package cloudevent

import (
	"sort"

	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/jittakal/cefencoder/internal/errors"
	"github.com/jittakal/cefencoder/pkg/event"
)

// Mapping controls how CloudEvent attributes become record fields.
type Mapping struct {
	// SeverityAttribute names the CloudEvent extension holding the severity.
	SeverityAttribute string
	// DefaultSeverity is used when the event has no severity extension.
	DefaultSeverity int

	// Extension keys for the context attributes. An empty key leaves the
	// attribute out.
	SourceKey string
	IDKey     string
	TimeKey   string
}

// DefaultMapping returns the mapping used when none is configured.
func DefaultMapping() Mapping {
	return Mapping{
		SeverityAttribute: "severity",
		DefaultSeverity:   0,
		SourceKey:         "request",
		IDKey:             "externalId",
		TimeKey:           "rt",
	}
}

// ToRecord converts ce into a record. The event type becomes the signature
// and the subject the name, falling back to the type when there is no
// subject. Vendor, product and version are left unset so the encoder's
// defaults apply. Every CloudEvent extension except the severity attribute
// is added as a record extension in sorted order, after source, id and time.
func ToRecord(ce cloudevents.Event, m Mapping) (event.Record, error) {
	if err := ce.Validate(); err != nil {
		return nil, &errors.ValidationError{
			EventID: ce.ID(),
			Field:   "cloudevent",
			Reason:  err.Error(),
		}
	}

	name := ce.Subject()
	if name == "" {
		name = ce.Type()
	}

	attrs := ce.Extensions()
	var severity any = m.DefaultSeverity
	if m.SeverityAttribute != "" {
		if v, ok := attrs[m.SeverityAttribute]; ok {
			severity = v
		}
	}

	ext := event.Extensions{}
	if m.SourceKey != "" {
		ext = ext.Add(m.SourceKey, ce.Source())
	}
	if m.IDKey != "" {
		ext = ext.Add(m.IDKey, ce.ID())
	}
	if t := ce.Time(); m.TimeKey != "" && !t.IsZero() {
		ext = ext.Add(m.TimeKey, t.UnixMilli())
	}

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if k != m.SeverityAttribute {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		ext = ext.Add(k, attrs[k])
	}

	return event.Record{
		event.FieldSignature:  ce.Type(),
		event.FieldName:       name,
		event.FieldSeverity:   severity,
		event.FieldExtensions: ext,
	}, nil
}
