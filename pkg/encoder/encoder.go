// Package encoder defines interfaces for encoding event records to CEF lines.
package encoder

import "github.com/jittakal/cefencoder/pkg/event"

// Encoder encodes a record into a single CEF line.
type Encoder interface {
	// Encode returns the CEF line for rec, or an error when a prefix field is
	// missing or invalid. It never returns both.
	Encode(rec event.Record) (string, error)
}
