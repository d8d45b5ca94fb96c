package pipeline

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
)

// fallbackHeadingID is used when a heading has no characters usable in an ID.
const fallbackHeadingID = "section"

// HeadingIDs hands out unique anchor IDs for one rendered document.
// Report headers and Markdown headings share one instance so their anchors
// never collide. Not safe for concurrent use.
type HeadingIDs struct {
	seen map[string]int
}

// NewHeadingIDs creates an empty ID registry.
func NewHeadingIDs() *HeadingIDs {
	return &HeadingIDs{seen: make(map[string]int)}
}

// Next returns a unique ID derived from text: "Hello, world!" -> "hello-world",
// a second "Hello, world!" -> "hello-world-1".
func (h *HeadingIDs) Next(text string) string {
	base := slugify(text)
	n, taken := h.seen[base]
	if !taken {
		h.seen[base] = 0
		return base
	}
	for {
		n++
		candidate := base + "-" + strconv.Itoa(n)
		if _, clash := h.seen[candidate]; !clash {
			h.seen[base] = n
			h.seen[candidate] = 0
			return candidate
		}
	}
}

// Generate implements parser.IDs for Goldmark's auto heading IDs.
func (h *HeadingIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	return []byte(h.Next(string(value)))
}

// Put implements parser.IDs; it reserves an explicit ID ({#custom}).
func (h *HeadingIDs) Put(value []byte) {
	if _, taken := h.seen[string(value)]; !taken {
		h.seen[string(value)] = 0
	}
}

var _ parser.IDs = (*HeadingIDs)(nil)

// slugify lowercases text, keeps letters and digits, and joins the
// remaining words with single hyphens.
func slugify(text string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			pendingDash = true
		}
	}
	if b.Len() == 0 {
		return fallbackHeadingID
	}
	return b.String()
}
