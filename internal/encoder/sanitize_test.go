package encoder

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jaswdr/faker"

	"github.com/jittakal/cefencoder/pkg/event"
)

type sample struct {
	User string `json:"user"`
	Port int    `json:"port"`
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"plain text", "hello world", "hello world"},
		{"pipe", "a|b", `a\|b`},
		{"equals", "a=b=c", `a\=b\=c`},
		{"backslash", `a\b`, `a\\b`},
		{"already escaped pipe", `a\|b`, `a\|b`},
		{"already escaped backslash", `a\\b`, `a\\b`},
		{"escaped backslash before pipe", `a\\|b`, `a\\\|b`},
		{"adjacent delimiters", "||==", `\|\|\=\=`},
		{"leading pipe", "|start", `\|start`},
		{"leading equals", "=start", `\=start`},
		{"trailing backslash", `end\`, `end\\`},
		{"lone backslash", `\`, `\\`},
		{"crlf", "line1\r\nline2\r", "line1\nline2\n"},
		{"newline run", "a\n\n\r\nb", "a\nb"},
		{"tabs kept", "a\tb", "a\tb"},
		{"nil", nil, "undefined"},
		{"int", 42, "42"},
		{"negative int64", int64(-7), "-7"},
		{"uint", uint8(200), "200"},
		{"float", 3.5, "3.5"},
		{"whole float", 6.0, "6"},
		{"bool", true, "true"},
		{"bytes", []byte("x|y"), `x\|y`},
		{"error", errors.New("bad=value"), `bad\=value`},
		{"map", map[string]any{"a": 1}, "{\n  \"a\": 1\n}"},
		{"slice", []int{1, 2}, "[\n  1,\n  2\n]"},
		{"struct", sample{User: "bob", Port: 22}, "{\n  \"user\": \"bob\",\n  \"port\": 22\n}"},
		{"struct pointer", &sample{User: "a=b"}, "{\n  \"user\": \"a\\=b\",\n  \"port\": 0\n}"},
		{"nil pointer", (*sample)(nil), "null"},
		{"string pointer", ptr("hello"), "hello"},
		{"int pointer", ptr(7), "7"},
		{"pointer to delimited text", ptr("a|b"), `a\|b`},
		{"pointer to pointer", ptr(ptr(7)), "7"},
		{"empty string", "", ""},
		{"unicode", "héllo|wörld", `héllo\|wörld`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%#v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// wellEscaped reports whether every delimiter in s is escaped.
func ptr[T any](v T) *T {
	return &v
}

func wellEscaped(s string) bool {
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '\\':
			if i+1 >= len(runes) || !isDelimiter(runes[i+1]) {
				return false
			}
			i++
		case '|', '=':
			return false
		}
	}
	return true
}

func randomDelimited(f faker.Faker, n int) string {
	alphabet := []string{"|", `\`, "=", "\r", "\n", " ", "\t", "a", "b", "é", "\r\n"}
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString(alphabet[f.IntBetween(0, len(alphabet)-1)])
	}
	return b.String()
}

func TestSanitize_Properties(t *testing.T) {
	f := faker.New()

	inputs := []string{
		"", `\`, `\\`, `\\\`, `|\`, `\|`, `=\=`, `\\|\\=`, "\r", "\r\n\r\n",
		f.Lorem().Sentence(12),
		f.Internet().Email(),
	}
	for i := 0; i < 500; i++ {
		inputs = append(inputs, randomDelimited(f, f.IntBetween(1, 64)))
	}

	for _, in := range inputs {
		once := Sanitize(in)
		if twice := Sanitize(once); twice != once {
			t.Fatalf("Sanitize not idempotent for %q: %q then %q", in, once, twice)
		}
		if !wellEscaped(once) {
			t.Fatalf("Sanitize(%q) = %q leaves an unescaped delimiter", in, once)
		}
		if strings.Contains(once, "\r") || strings.Contains(once, "\n\n") {
			t.Fatalf("Sanitize(%q) = %q has unnormalized line breaks", in, once)
		}
	}
}

func TestSanitize_EscapedInputUnchanged(t *testing.T) {
	escaped := []string{`a\|b`, `\=`, `\\`, `x\\y\|z\=w`}
	for _, in := range escaped {
		if got := Sanitize(in); got != in {
			t.Errorf("Sanitize(%q) = %q, want input unchanged", in, got)
		}
	}
}

func TestEncodeKey(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"plain", "color", "color"},
		{"space", "source user", "source_user"},
		{"whitespace run", "a \t\n b", "a_b"},
		{"leading and trailing", " key ", "_key_"},
		{"equals", "a=b", `a\=b`},
		{"crlf", "a\r\nb", "a_b"},
		{"nil", nil, "undefined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeKey(tt.input); got != tt.want {
				t.Errorf("EncodeKey(%#v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEncodeValue(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"plain", "red", "red"},
		{"whitespace kept", "a  b\tc", "a  b\tc"},
		{"crlf", "a\r\nb", "a\nb"},
		{"pipe", "a|b", `a\|b`},
		{"number", 1337, "1337"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeValue(tt.input); got != tt.want {
				t.Errorf("EncodeValue(%#v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEncode_LengthBound(t *testing.T) {
	f := faker.New()

	inputs := []string{
		strings.Repeat("x", 2000),
		strings.Repeat("é", 1500),
		strings.Repeat("|", 600),
		strings.Repeat("a|", 700),
		strings.Repeat(" ", 3000),
		strings.Repeat("x", event.MaxFieldLength),
	}
	for i := 0; i < 50; i++ {
		inputs = append(inputs, randomDelimited(f, f.IntBetween(900, 2500)))
	}

	for _, in := range inputs {
		for name, fn := range map[string]func(any) string{"EncodeKey": EncodeKey, "EncodeValue": EncodeValue} {
			got := fn(in)
			if n := utf8.RuneCountInString(got); n > event.MaxFieldLength {
				t.Fatalf("%s produced %d characters, want <= %d", name, n, event.MaxFieldLength)
			}
			if !wellEscaped(got) {
				t.Fatalf("%s truncation left an unescaped delimiter at the end: %q", name, got[len(got)-4:])
			}
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "abc", 5, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"cut", "abcdef", 3, "abc"},
		{"split escape dropped", `ab\|`, 3, "ab"},
		{"whole escape kept", `a\|b`, 3, `a\|`},
		{"runes", "ééé", 2, "éé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}
