// Package encoder encodes event records into Common Event Format (CEF) lines.
//
// A CEF line is a pipe-delimited prefix of seven fields followed by optional
// space-separated key=value extensions:
//
//	CEF:0|FooTech|Frobulator|42|1337|Unmatched sock detected|6|color=red size=M
//
// # Pipeline
//
// Encoding runs in layers, each usable on its own:
//
//   - Sanitize renders any value as text and escapes it
//   - EncodeKey and EncodeValue add the per-field constraints
//   - EncodeExtensions validates pairs against an injected schema
//   - CEF assembles the line from a record
//
// # Escaping
//
// Pipes, backslashes and equals signs are prefixed with a backslash unless
// they are already escaped, so text that went through Sanitize once passes
// through it again unchanged. Runs of CR and LF become a single LF. nil
// values are written as "undefined"; maps, slices and structs are written as
// indented JSON.
//
// # Encoding Records
//
//	enc := encoder.NewCEF(event.Config{Vendor: "Acme", Product: "Shipper", Version: "1.0"}, schema)
//	line, err := enc.Encode(rec)
//	if err != nil {
//	    // *errors.MissingFieldError or *errors.SeverityError
//	}
//
// When a record does not supply vendor, product and version all together,
// the configured defaults replace all three. The caller's record is never
// modified.
//
// # Extensions
//
// Extension keys without a registered predicate, and values the predicate
// rejects, are dropped from the line. They are reported to the sink given
// with WithSink (and logged when WithLogger is set); EncodeResult also
// returns them.
//
// # Factory
//
// Use Factory to build an encoder from loaded configuration:
//
//	factory := encoder.NewFactory(cfg.Encoder, schema, encoder.WithLogger(logger))
//	enc, err := factory.CreateEncoder()
//
// # Thread Safety
//
// A CEF encoder is immutable after construction and safe for concurrent use,
// provided the schema lookup and sink are.
package encoder
