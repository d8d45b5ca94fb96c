package htmlreport

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Default document style values.
const (
	DefaultFont            = "sans-serif"
	DefaultBackgroundColor = "white"
)

// Recognized keys for SetStyleMap.
const (
	StyleKeyFont            = "font"
	StyleKeyBackgroundColor = "backgroundColor"
)

// Style holds the document-wide presentation defaults.
type Style struct {
	Font            string // default text typeface (CSS font-family value)
	BackgroundColor string // document background (CSS color value)
}

// DefaultStyle returns the style a new report starts with.
func DefaultStyle() Style {
	return Style{
		Font:            DefaultFont,
		BackgroundColor: DefaultBackgroundColor,
	}
}

// Validate checks that both fields are usable CSS values.
func (s Style) Validate() error {
	if err := validateFont("style.font", s.Font, false); err != nil {
		return err
	}
	return validateColor("style.backgroundColor", s.BackgroundColor, false)
}

// StyleOption changes one field of a Style. Options are applied by
// Report.SetStyle; fields without an option keep their current value.
type StyleOption func(*Style)

// Font sets the default typeface.
func Font(name string) StyleOption {
	return func(s *Style) { s.Font = name }
}

// BackgroundColor sets the document background color.
func BackgroundColor(color string) StyleOption {
	return func(s *Style) { s.BackgroundColor = color }
}

// styleKeys maps SetStyleMap keys to options.
var styleKeys = map[string]func(string) StyleOption{
	StyleKeyFont:            Font,
	StyleKeyBackgroundColor: BackgroundColor,
}

// StyleKeys returns the keys accepted by SetStyleMap, sorted.
func StyleKeys() []string {
	keys := make([]string, 0, len(styleKeys))
	for k := range styleKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// styleOptionsFromMap converts named options to StyleOptions in key order.
// Any unrecognized key fails the whole conversion.
func styleOptionsFromMap(values map[string]string) ([]StyleOption, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	opts := make([]StyleOption, 0, len(keys))
	for _, k := range keys {
		mk, ok := styleKeys[k]
		if !ok {
			return nil, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownOption, k, strings.Join(StyleKeys(), ", "))
		}
		opts = append(opts, mk(values[k]))
	}
	return opts, nil
}

// CSS value whitelists. They keep user values from closing a declaration,
// a rule, a comment, or the surrounding style attribute.
var (
	fontPattern   = regexp.MustCompile(`^[\p{L}\p{N} ,'._-]+$`)
	colorPattern  = regexp.MustCompile(`^[#A-Za-z0-9(),.% /-]+$`)
	lengthPattern = regexp.MustCompile(`^\d+(\.\d+)?(px|%|em|rem|vw|vh|pt|cm|mm|in)?$`)
)

func validateFont(field, value string, optional bool) error {
	if value == "" {
		if optional {
			return nil
		}
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidArgument, field)
	}
	if !fontPattern.MatchString(value) {
		return fmt.Errorf("%w: %s %q contains characters not allowed in a font name", ErrInvalidArgument, field, value)
	}
	return nil
}

func validateColor(field, value string, optional bool) error {
	if value == "" {
		if optional {
			return nil
		}
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidArgument, field)
	}
	if !colorPattern.MatchString(value) {
		return fmt.Errorf("%w: %s %q is not a CSS color", ErrInvalidArgument, field, value)
	}
	return nil
}

func validateLength(field, value string) error {
	if value != "" && !lengthPattern.MatchString(value) {
		return fmt.Errorf("%w: %s %q is not a CSS length", ErrInvalidArgument, field, value)
	}
	return nil
}

// validateDeclarations accepts raw "prop: value; prop: value" text that stays
// inside a single style attribute.
func validateDeclarations(field, value string) error {
	if strings.ContainsAny(value, "{}<>\"\\") || strings.Contains(value, "/*") {
		return fmt.Errorf("%w: %s %q contains characters not allowed in a style attribute", ErrInvalidArgument, field, value)
	}
	return nil
}
