package encoder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	json "github.com/goccy/go-json"

	"github.com/jittakal/cefencoder/pkg/event"
)

// Sanitize converts v into escaped, CEF-safe text.
//
// Pipes, backslashes and equals signs are escaped with a backslash unless
// they are already escaped, and every run of CR/LF characters becomes a
// single LF. Sanitize is idempotent.
func Sanitize(v any) string {
	return escape(normalizeNewlines(text(v)))
}

// EncodeKey sanitizes an extension key, replaces whitespace runs with a
// single underscore and caps the result at event.MaxFieldLength characters.
func EncodeKey(raw any) string {
	return truncate(collapseWhitespace(Sanitize(raw)), event.MaxFieldLength)
}

// EncodeValue sanitizes a value and caps it at event.MaxFieldLength
// characters. Whitespace is kept.
func EncodeValue(raw any) string {
	return truncate(Sanitize(raw), event.MaxFieldLength)
}

// maxPointerDepth bounds pointer dereferencing in text.
const maxPointerDepth = 8

// text renders v as plain text before escaping.
func text(v any) string {
	switch t := v.(type) {
	case nil:
		return event.UndefinedText
	case string:
		return t
	case []byte:
		return string(t)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(t).Int(), 10)
	case uint, uint8, uint16, uint32, uint64, uintptr:
		return strconv.FormatUint(reflect.ValueOf(t).Uint(), 10)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case error:
		return t.Error()
	case fmt.Stringer:
		return t.String()
	}

	// Pointers render as the value they point to, never as an address.
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer {
		for depth := 0; rv.Kind() == reflect.Pointer && !rv.IsNil() && depth < maxPointerDepth; depth++ {
			rv = rv.Elem()
		}
		if rv.Kind() != reflect.Pointer && rv.Kind() != reflect.Interface {
			return text(rv.Interface())
		}
	}

	if structured(v) {
		b, err := json.MarshalIndent(v, "", "  ")
		if err == nil {
			return string(b)
		}
	}
	return fmt.Sprint(v)
}

// structured reports whether v is a composite value rendered as JSON.
func structured(v any) bool {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return true
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return true
	default:
		return false
	}
}

func normalizeNewlines(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inBreak := false
	for _, r := range s {
		if r == '\r' || r == '\n' {
			if !inBreak {
				b.WriteByte('\n')
				inBreak = true
			}
			continue
		}
		inBreak = false
		b.WriteRune(r)
	}
	return b.String()
}

func isDelimiter(r rune) bool {
	return r == '|' || r == '\\' || r == '='
}

// escape scans left to right. A backslash followed by a delimiter is an
// existing escape and is copied through with its target; any other
// backslash, pipe or equals sign gets a backslash prefix. This covers a
// delimiter at position zero as well.
func escape(s string) string {
	if !strings.ContainsAny(s, `|\=`) {
		return s
	}
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\' && i+1 < len(runes) && isDelimiter(runes[i+1]):
			b.WriteRune(r)
			b.WriteRune(runes[i+1])
			i++
		case isDelimiter(r):
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('_')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// truncate caps s at max characters. An escape pair split by the cut is
// dropped whole so the result never ends in a bare backslash.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	runes = runes[:max]
	i := 0
	for i < len(runes) {
		if runes[i] == '\\' {
			if i+1 == len(runes) {
				return string(runes[:i])
			}
			i += 2
			continue
		}
		i++
	}
	return string(runes)
}
