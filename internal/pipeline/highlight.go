package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultCodeStyle is the Chroma style used for code blocks.
const DefaultCodeStyle = "github"

// ErrHighlight indicates source code could not be tokenised or formatted.
var ErrHighlight = errors.New("code highlighting failed")

// IsKnownLanguage reports whether Chroma has a lexer for language.
// The empty string is accepted and means plain text.
func IsKnownLanguage(language string) bool {
	if language == "" {
		return true
	}
	return lexers.Get(language) != nil
}

// HighlightCode renders source as a <pre> block with inline Chroma styles.
// Unknown or empty languages render as plain text.
func HighlightCode(source, language string) (string, error) {
	lexer := lexers.Fallback
	if language != "" {
		if l := lexers.Get(language); l != nil {
			lexer = l
		}
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(DefaultCodeStyle)
	formatter := chromahtml.New(
		chromahtml.WithClasses(false),
		chromahtml.TabWidth(4),
	)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlight, err)
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlight, err)
	}
	return buf.String(), nil
}
