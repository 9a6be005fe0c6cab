// Package event defines the record, extension and schema types consumed by
// the CEF encoder.
package event

import (
	"fmt"
	"reflect"
	"sort"
)

// FormatVersion is the CEF format version written in the line header.
const FormatVersion = "0"

// MaxFieldLength is the maximum length, in characters, of an encoded key or value.
const MaxFieldLength = 1023

// UndefinedText is the text written for an absent (nil) value.
const UndefinedText = "undefined"

// Record field names.
const (
	FieldVendor     = "vendor"
	FieldProduct    = "product"
	FieldVersion    = "version"
	FieldSignature  = "signature"
	FieldName       = "name"
	FieldSeverity   = "severity"
	FieldExtensions = "extensions"
)

// Severity bounds, inclusive.
const (
	MinSeverity = 0
	MaxSeverity = 10
)

// RequiredFields lists the prefix fields every record must carry, in the
// order they appear in the CEF header.
var RequiredFields = []string{
	FieldVendor,
	FieldProduct,
	FieldVersion,
	FieldSignature,
	FieldName,
	FieldSeverity,
}

// Record is a security/audit event to be encoded. Values may be of any type;
// structured values are rendered as indented JSON.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Extension is a single extension key/value pair.
type Extension struct {
	Key   string
	Value any
}

// Extensions is an ordered list of extension pairs. Encoding preserves the
// slice order.
type Extensions []Extension

// Add appends a pair and returns the extended list.
func (e Extensions) Add(key string, value any) Extensions {
	return append(e, Extension{Key: key, Value: value})
}

// Pairs returns the extension pairs held by v in encoding order.
// Extensions and []Extension are returned as is. Any map with string keys,
// Record included, is returned sorted by key. Any other type reports false.
func Pairs(v any) (Extensions, bool) {
	switch ext := v.(type) {
	case Extensions:
		return ext, true
	case []Extension:
		return Extensions(ext), true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}

	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	out := make(Extensions, 0, len(keys))
	for _, k := range keys {
		out = append(out, Extension{Key: k.String(), Value: rv.MapIndex(k).Interface()})
	}
	return out, true
}

// Config holds the default vendor, product and version used when a record
// does not supply all three.
type Config struct {
	Vendor  string
	Product string
	Version string
}

// Predicate reports whether an encoded extension value is acceptable.
type Predicate func(encodedValue string) bool

// ValidatorLookup resolves the predicate registered for an encoded extension key.
type ValidatorLookup interface {
	// Lookup returns the predicate for key, or false when the key is unknown.
	Lookup(key string) (Predicate, bool)
}

// LookupFunc adapts a function to ValidatorLookup.
type LookupFunc func(key string) (Predicate, bool)

// Lookup calls f(key).
func (f LookupFunc) Lookup(key string) (Predicate, bool) {
	return f(key)
}

// Schema is a map-backed ValidatorLookup.
type Schema map[string]Predicate

// Lookup returns the predicate registered for key.
func (s Schema) Lookup(key string) (Predicate, bool) {
	p, ok := s[key]
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}

// DiagnosticKind classifies a dropped extension pair.
type DiagnosticKind string

const (
	DiagnosticUnknownKey   DiagnosticKind = "unknown_key"
	DiagnosticInvalidValue DiagnosticKind = "invalid_value"
)

// Diagnostic describes an extension pair that was dropped during encoding.
type Diagnostic struct {
	Kind  DiagnosticKind
	Key   string
	Value string
	Err   error
}

// Message returns a human-readable description of the diagnostic.
func (d Diagnostic) Message() string {
	if d.Err != nil {
		return d.Err.Error()
	}
	switch d.Kind {
	case DiagnosticUnknownKey:
		return fmt.Sprintf("unknown extension key: %s", d.Key)
	case DiagnosticInvalidValue:
		return fmt.Sprintf("invalid extension value for key %s: %s", d.Key, d.Value)
	default:
		return fmt.Sprintf("extension %s dropped", d.Key)
	}
}

// DiagnosticSink receives diagnostics for dropped extension pairs.
type DiagnosticSink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to DiagnosticSink.
type SinkFunc func(d Diagnostic)

// Report calls f(d).
func (f SinkFunc) Report(d Diagnostic) {
	f(d)
}

// DiscardSink drops every diagnostic.
var DiscardSink DiagnosticSink = SinkFunc(func(Diagnostic) {})
