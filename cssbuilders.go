package htmlreport

import (
	"fmt"
	"html"
	"strings"
)

// defaultTableCSS is added once when a report holds a table without its own
// CSS. Rules passed to InsertCSS come later and override it.
const defaultTableCSS = `
/* Tables */
table {
  font-family: Arial;
  border-collapse: collapse;
  width: 50%;
}
`

// buildDocumentCSS assembles the stylesheet in cascade order: theme, document
// style, table rules, inserted rules.
func buildDocumentCSS(themeCSS string, style Style, tableCSS []string, extra []string) string {
	var buf strings.Builder

	if themeCSS != "" {
		buf.WriteString(strings.TrimRight(themeCSS, "\n"))
		buf.WriteString("\n")
	}

	buf.WriteString(buildBodyCSS(style))

	for _, css := range tableCSS {
		if css == defaultTableCSS {
			buf.WriteString(defaultTableCSS)
			continue
		}
		buf.WriteString("\n/* Table */\n")
		buf.WriteString(strings.TrimRight(css, "\n"))
		buf.WriteString("\n")
	}

	for _, css := range extra {
		buf.WriteString("\n/* Inserted */\n")
		buf.WriteString(strings.TrimRight(css, "\n"))
		buf.WriteString("\n")
	}

	return buf.String()
}

// buildBodyCSS generates the document-wide font and background rule.
// Values are validated by Style.Validate before they reach here.
func buildBodyCSS(s Style) string {
	return fmt.Sprintf(`
/* Document style */
body {
  font-family: %s;
  background-color: %s;
}
`, s.Font, s.BackgroundColor)
}

// declarations accumulates "property: value" pairs for a style attribute.
type declarations []string

// add appends a declaration, skipping empty values.
func (d *declarations) add(property, value string) {
	if value == "" {
		return
	}
	*d = append(*d, property+": "+value)
}

// addRaw appends pre-validated declaration text such as Figure.CSS.
func (d *declarations) addRaw(raw string) {
	raw = strings.Trim(strings.TrimSpace(raw), ";")
	if raw == "" {
		return
	}
	*d = append(*d, strings.TrimSpace(raw))
}

// attr renders ` style="..."`, or "" when there are no declarations.
func (d declarations) attr() string {
	if len(d) == 0 {
		return ""
	}
	return ` style="` + html.EscapeString(strings.Join(d, "; ")) + `"`
}

// textDeclarations converts per-block text styling. Raw CSS comes last so
// it overrides the generated declarations.
func textDeclarations(s TextStyle) declarations {
	var d declarations
	d.add("font-family", s.Font)
	d.add("text-align", strings.ToLower(s.Align))
	d.add("color", s.Color)
	d.add("background-color", s.Background)
	d.addRaw(s.CSS)
	return d
}

// paragraphDeclarations puts size first, then the text styling. The
// paragraph font takes precedence over TextFont.
func paragraphDeclarations(p Paragraph) declarations {
	d := declarations{fmt.Sprintf("font-size: %dpt", p.Size)}
	s := p.Style
	if p.Font != "" {
		s.Font = p.Font
	}
	return append(d, textDeclarations(s)...)
}

// captionDeclarations styles a figure caption.
func captionDeclarations(f Figure) declarations {
	var d declarations
	if f.CaptionSize > 0 {
		d = append(d, fmt.Sprintf("font-size: %dpt", f.CaptionSize))
	}
	d.add("font-family", f.CaptionFont)
	d.add("color", f.CaptionColor)
	d.add("background-color", f.CaptionBackground)
	return d
}

// imageDeclarations styles the figure image.
func imageDeclarations(f Figure) declarations {
	var d declarations
	d.add("width", f.Width)
	d.addRaw(f.CSS)
	return d
}
