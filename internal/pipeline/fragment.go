package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Sentinel errors for fragment checks.
var (
	ErrNotATable      = errors.New("fragment must consist of <table> elements")
	ErrUnsafeFragment = errors.New("fragment contains disallowed markup")
)

// disallowedElements may not appear inside raw table fragments. Headings are
// excluded so the table of contents only lists header and Markdown headings.
var disallowedElements = map[atom.Atom]bool{
	atom.H1:       true,
	atom.H2:       true,
	atom.H3:       true,
	atom.H4:       true,
	atom.H5:       true,
	atom.H6:       true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Iframe:   true,
	atom.Object:   true,
	atom.Embed:    true,
	atom.Link:     true,
	atom.Meta:     true,
	atom.Base:     true,
	atom.Form:     true,
	atom.Frame:    true,
	atom.Frameset: true,
}

// urlAttributes hold URLs whose scheme must be in allowedSchemes.
var urlAttributes = map[string]bool{
	"href":       true,
	"src":        true,
	"action":     true,
	"formaction": true,
	"background": true,
	"poster":     true,
	"cite":       true,
	"longdesc":   true,
	"xlink:href": true,
}

var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
	"tel":    true,
	"file":   true,
}

// NormalizeTableFragment parses a raw HTML fragment, checks that its top
// level consists only of <table> elements (and whitespace), rejects active
// content and headings, and returns the fragment re-serialized in canonical
// form. URL attributes may only use http, https, mailto, tel and file
// schemes; relative URLs are kept.
func NormalizeTableFragment(fragment string) (string, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotATable, err)
	}

	tables := 0
	for _, n := range nodes {
		switch {
		case n.Type == html.TextNode && strings.TrimSpace(n.Data) == "":
			continue
		case n.Type == html.CommentNode:
			continue
		case n.Type == html.ElementNode && n.DataAtom == atom.Table:
			if err := checkNode(n); err != nil {
				return "", err
			}
			tables++
		default:
			return "", fmt.Errorf("%w: unexpected top-level %s", ErrNotATable, describeNode(n))
		}
	}
	if tables == 0 {
		return "", ErrNotATable
	}

	var buf strings.Builder
	for _, n := range nodes {
		if n.Type != html.ElementNode {
			continue
		}
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func checkNode(n *html.Node) error {
	if n.Type == html.ElementNode {
		if disallowedElements[n.DataAtom] {
			return fmt.Errorf("%w: <%s>", ErrUnsafeFragment, n.Data)
		}
		for _, a := range n.Attr {
			key := strings.ToLower(a.Key)
			if strings.HasPrefix(key, "on") {
				return fmt.Errorf("%w: %s attribute", ErrUnsafeFragment, a.Key)
			}
			if urlAttributes[key] {
				if scheme, ok := urlScheme(stripURLNoise(a.Val)); ok && !allowedSchemes[scheme] {
					return fmt.Errorf("%w: %s URL in %s", ErrUnsafeFragment, scheme, a.Key)
				}
				continue
			}
			if strings.HasPrefix(strings.ToLower(strings.TrimSpace(a.Val)), "javascript:") {
				return fmt.Errorf("%w: javascript URL in %s", ErrUnsafeFragment, a.Key)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := checkNode(c); err != nil {
			return err
		}
	}
	return nil
}

// stripURLNoise lowercases v and drops whitespace and control characters,
// which browsers ignore inside URL schemes.
func stripURLNoise(v string) string {
	return strings.Map(func(r rune) rune {
		if r <= ' ' || r == 0x7f {
			return -1
		}
		return unicode.ToLower(r)
	}, v)
}

// urlScheme returns the scheme of an already stripped URL. Relative URLs
// have none.
func urlScheme(v string) (string, bool) {
	i := strings.IndexByte(v, ':')
	if i <= 0 {
		return "", false
	}
	if j := strings.IndexAny(v, "/?#"); j >= 0 && j < i {
		return "", false
	}
	return v[:i], true
}

func describeNode(n *html.Node) string {
	if n.Type == html.ElementNode {
		return "<" + n.Data + ">"
	}
	return "text"
}
