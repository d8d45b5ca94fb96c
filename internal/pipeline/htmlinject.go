package pipeline

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is sanitized so it cannot close the style element.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>\n" + sanitizeCSS(cssContent) + "\n</style>\n"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}
	if pos := afterOpeningTag(htmlContent, lowerHTML, "<body"); pos != -1 {
		return htmlContent[:pos] + styleBlock + htmlContent[pos:]
	}
	return styleBlock + htmlContent
}

// sanitizeCSS escapes "</" so a rule cannot terminate the <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// afterOpeningTag returns the index just past the first opening tag that
// starts with prefix (e.g. "<body"), or -1 if there is none.
func afterOpeningTag(htmlContent, lowerHTML, prefix string) int {
	idx := strings.Index(lowerHTML, prefix)
	if idx == -1 {
		return -1
	}
	closeIdx := strings.Index(htmlContent[idx:], ">")
	if closeIdx == -1 {
		return -1
	}
	return idx + closeIdx + 1
}

// TOCData holds TOC configuration for injection.
type TOCData struct {
	Title    string
	MinDepth int // Shallowest heading level listed (1-6)
	MaxDepth int // Deepest heading level listed (1-6)
}

// TOCInjector defines the contract for TOC injection into HTML.
type TOCInjector interface {
	InjectTOC(ctx context.Context, htmlContent string, data *TOCData) (string, error)
}

// TOCInjection implements TOCInjector.
type TOCInjection struct{}

// NewTOCInjection creates a new TOC injector.
func NewTOCInjection() *TOCInjection {
	return &TOCInjection{}
}

type tocEntry struct {
	Level int
	ID    string
	Text  string
}

// headingPattern matches h1-h6 tags with an id attribute.
// Captures: 1=level, 2=id, 3=inner HTML (may contain inline tags)
var headingPattern = regexp.MustCompile(`(?is)<h([1-6])[^>]*\bid="([^"]*)"[^>]*>(.*?)</h[1-6]>`)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// headingText strips tags and decodes entities so the text is escaped
// exactly once when the TOC is written.
func headingText(inner string) string {
	return strings.TrimSpace(html.UnescapeString(htmlTagPattern.ReplaceAllString(inner, "")))
}

func collectHeadings(htmlContent string, minDepth, maxDepth int) []tocEntry {
	var entries []tocEntry
	for _, m := range headingPattern.FindAllStringSubmatch(htmlContent, -1) {
		level, _ := strconv.Atoi(m[1])
		if level < minDepth || level > maxDepth {
			continue
		}
		entries = append(entries, tocEntry{Level: level, ID: html.UnescapeString(m[2]), Text: headingText(m[3])})
	}
	return entries
}

// tocNumbering produces "1.", "1.1.", "2." style numbers. The shallowest
// level seen first becomes depth 1 and skipped levels (h1 -> h3) nest only
// one step deeper.
type tocNumbering struct {
	counters [6]int
	base     int
	depth    int
}

func (n *tocNumbering) next(level int) (string, int) {
	if n.base == 0 {
		n.base = level
	}
	depth := max(level-n.base+1, 1)
	if n.depth > 0 && depth > n.depth+1 {
		depth = n.depth + 1
	}

	n.counters[depth-1]++
	for i := depth; i < len(n.counters); i++ {
		n.counters[i] = 0
	}
	n.depth = depth

	parts := make([]string, depth)
	for i := range parts {
		parts[i] = strconv.Itoa(n.counters[i])
	}
	return strings.Join(parts, ".") + ".", depth
}

// renderTOC writes the navigation block. Entries are <div>s rather than a
// list so theme list styles do not leak into the TOC.
func renderTOC(entries []tocEntry, title string) string {
	var buf strings.Builder
	buf.WriteString(`<nav class="toc">`)
	if title != "" {
		fmt.Fprintf(&buf, `<h2 class="toc-title">%s</h2>`, html.EscapeString(title))
	}
	buf.WriteString(`<div class="toc-list">`)

	var numbering tocNumbering
	for _, e := range entries {
		num, depth := numbering.next(e.Level)
		buf.WriteString(`<div class="toc-item"`)
		if depth > 1 {
			fmt.Fprintf(&buf, ` style="padding-left:%.1fem"`, float64(depth-1)*1.5)
		}
		fmt.Fprintf(&buf, `><a href="#%s">%s %s</a></div>`,
			html.EscapeString(e.ID), num, html.EscapeString(e.Text))
	}

	buf.WriteString(`</div></nav>`)
	return buf.String()
}

// InjectTOC collects headings and injects a numbered TOC at the start of the
// report body (<main>, falling back to <body>, then the document start).
// If data is nil or no heading qualifies, htmlContent is returned unchanged.
func (t *TOCInjection) InjectTOC(ctx context.Context, htmlContent string, data *TOCData) (string, error) {
	if data == nil {
		return htmlContent, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	entries := collectHeadings(htmlContent, data.MinDepth, data.MaxDepth)
	if len(entries) == 0 {
		return htmlContent, nil
	}
	toc := renderTOC(entries, data.Title)

	lowerHTML := strings.ToLower(htmlContent)
	for _, tag := range []string{"<main", "<body"} {
		if pos := afterOpeningTag(htmlContent, lowerHTML, tag); pos != -1 {
			return htmlContent[:pos] + toc + htmlContent[pos:], nil
		}
	}
	return toc + htmlContent, nil
}

var (
	_ CSSInjector = (*CSSInjection)(nil)
	_ TOCInjector = (*TOCInjection)(nil)
)
