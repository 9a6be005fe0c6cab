package encoder

import (
	"strings"

	"github.com/jittakal/cefencoder/internal/errors"
	"github.com/jittakal/cefencoder/pkg/event"
)

// EncodeExtensions encodes the extension pairs held by ext as
// space-separated key=value text. Each key is encoded and resolved through
// lookup; pairs whose key is unknown or whose encoded value the predicate
// rejects are dropped and reported to sink. The dropped pairs are also
// returned in input order.
//
// ext that is not mapping-like yields "" and no diagnostics. A nil lookup
// treats every key as unknown; a nil sink discards reports.
func EncodeExtensions(ext any, lookup event.ValidatorLookup, sink event.DiagnosticSink) (string, []event.Diagnostic) {
	pairs, ok := event.Pairs(ext)
	if !ok || len(pairs) == 0 {
		return "", nil
	}
	if sink == nil {
		sink = event.DiscardSink
	}

	var (
		accepted = make([]string, 0, len(pairs))
		dropped  []event.Diagnostic
	)
	drop := func(d event.Diagnostic) {
		sink.Report(d)
		dropped = append(dropped, d)
	}

	for _, pair := range pairs {
		key := EncodeKey(pair.Key)

		var (
			predicate event.Predicate
			known     bool
		)
		if lookup != nil {
			predicate, known = lookup.Lookup(key)
		}
		if !known || predicate == nil {
			drop(event.Diagnostic{
				Kind: event.DiagnosticUnknownKey,
				Key:  key,
				Err:  &errors.ExtensionError{Key: key, Err: errors.ErrUnknownExtensionKey},
			})
			continue
		}

		value := EncodeValue(pair.Value)
		if !predicate(value) {
			drop(event.Diagnostic{
				Kind:  event.DiagnosticInvalidValue,
				Key:   key,
				Value: value,
				Err:   &errors.ExtensionError{Key: key, Value: value, Err: errors.ErrInvalidExtensionValue},
			})
			continue
		}

		accepted = append(accepted, key+"="+value)
	}

	return strings.Join(accepted, " "), dropped
}
