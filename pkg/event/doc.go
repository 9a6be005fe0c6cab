// Package event defines the record, extension and schema types consumed by
// the CEF encoder.
//
// # Records
//
// Record is a map keyed by field name. The six prefix fields are required:
//
//	rec := event.Record{
//	    event.FieldVendor:    "FooTech",
//	    event.FieldProduct:   "Frobulator",
//	    event.FieldVersion:   "42",
//	    event.FieldSignature: "1337",
//	    event.FieldName:      "Unmatched sock detected",
//	    event.FieldSeverity:  6,
//	}
//
// # Extensions
//
// Extensions keep their insertion order:
//
//	rec[event.FieldExtensions] = event.Extensions{}.
//	    Add("color", "red").
//	    Add("size", "M")
//
// A plain map[string]any is also accepted and encoded in sorted key order.
//
// # Schemas
//
// The encoder never owns the extension schema. Callers inject one through
// ValidatorLookup; Schema and LookupFunc cover the common cases:
//
//	schema := event.Schema{
//	    "color": func(v string) bool { return v != "" },
//	}
//
// # Diagnostics
//
// Dropped extension pairs are reported to a DiagnosticSink rather than
// returned as errors. SinkFunc adapts a closure; DiscardSink ignores them.
package event
