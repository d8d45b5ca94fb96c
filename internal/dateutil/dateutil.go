// Package dateutil resolves report dates written with user-friendly tokens.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date value or format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxFormatLength limits format string length.
const MaxFormatLength = 50

// DefaultFormat is used by a bare "auto".
const DefaultFormat = "YYYY-MM-DD"

// autoPrefix introduces a generated date: "auto" or "auto:FORMAT".
const autoPrefix = "auto"

// tokens maps format tokens to Go layout components, longest first so
// matching is greedy. Matching is case-sensitive: MM is the month, mm the
// minute.
var tokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"mm", "04"},
	{"M", "1"},
	{"D", "2"},
}

// Presets are named formats accepted after "auto:".
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"datetime": "YYYY-MM-DD HH:mm",
}

// Layout converts a token format such as "DD/MM/YYYY" to a Go time layout.
// Text in brackets is kept literally, so "[Week of] D MMM" renders
// "Week of 3 Mar". Other characters pass through unchanged.
func Layout(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxFormatLength)
	}

	var b strings.Builder
	b.Grow(len(format) + 10)

	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			b.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		n := writeToken(&b, format[i:])
		if n == 0 {
			b.WriteByte(format[i])
			n = 1
		}
		i += n
	}

	return b.String(), nil
}

// writeToken writes the layout of the token s starts with and returns its
// length, or 0 if s does not start with a token.
func writeToken(b *strings.Builder, s string) int {
	for _, t := range tokens {
		if strings.HasPrefix(s, t.token) {
			b.WriteString(t.layout)
			return len(t.token)
		}
	}
	return 0
}

// Resolve expands a report date value:
//   - "" stays empty (no date)
//   - "auto" is now formatted as DefaultFormat
//   - "auto:FORMAT" is now formatted with FORMAT or a preset name
//   - anything else is a literal date, returned unchanged ("Autumn 2026")
func Resolve(value string, now time.Time) (string, error) {
	lower := strings.ToLower(value)
	if lower != autoPrefix && !strings.HasPrefix(lower, autoPrefix+":") {
		return value, nil
	}

	format := DefaultFormat
	if lower != autoPrefix {
		rest := value[len(autoPrefix)+1:]
		if rest == "" {
			return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
		}
		format = rest
		if preset, ok := Presets[strings.ToLower(rest)]; ok {
			format = preset
		}
	}

	layout, err := Layout(format)
	if err != nil {
		return "", err
	}
	return now.Format(layout), nil
}
