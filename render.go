package htmlreport

import (
	"context"
	"fmt"
	"html"
	"html/template"
	"slices"
	"strings"

	"github.com/alnah/go-htmlreport/internal/pipeline"
)

// pageData is passed to the page template.
type pageData struct {
	Title string
	Date  string
	Body  template.HTML
}

// Render returns r as a complete HTML document.
// It is a convenience for r.Render().
func Render(r *Report) (string, error) {
	if r == nil {
		return "", fmt.Errorf("%w: nil report", ErrInvalidArgument)
	}
	return r.Render()
}

// Render returns the report as a complete HTML document. The output depends
// only on the title, style, blocks, inserted CSS and options, so repeated
// calls on an unchanged report return identical strings.
func (r *Report) Render() (string, error) {
	return r.RenderContext(context.Background())
}

// RenderContext is Render with a context checked between pipeline stages.
func (r *Report) RenderContext(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	br := &htmlRenderer{
		ctx:       ctx,
		ids:       pipeline.NewHeadingIDs(),
		markdown:  r.markdown,
		sourceDir: r.cfg.sourceDir,
	}
	for i, b := range r.blocks {
		if err := b.accept(br); err != nil {
			return "", fmt.Errorf("rendering block %d: %w", i, err)
		}
	}

	var page strings.Builder
	data := pageData{
		Title: r.title,
		Date:  r.cfg.date,
		Body:  template.HTML(br.buf.String()), // #nosec G203 -- body is assembled from escaped block output
	}
	if err := r.page.Execute(&page, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}

	css := buildDocumentCSS(r.themeCSS, r.style, br.tableCSS, r.extraCSS)
	out := r.cssInjector.InjectCSS(ctx, page.String(), css)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if r.cfg.toc != nil {
		minDepth, maxDepth := r.cfg.toc.depths()
		var err error
		out, err = r.tocInjector.InjectTOC(ctx, out, &pipeline.TOCData{
			Title:    r.cfg.toc.Title,
			MinDepth: minDepth,
			MaxDepth: maxDepth,
		})
		if err != nil {
			return "", fmt.Errorf("injecting TOC: %w", err)
		}
	}

	return out, nil
}

// htmlRenderer writes one block at a time into buf. A fresh renderer is used
// per render so heading IDs restart and output stays deterministic.
type htmlRenderer struct {
	ctx       context.Context
	buf       strings.Builder
	ids       *pipeline.HeadingIDs
	markdown  pipeline.MarkdownConverter
	sourceDir string
	tableCSS  []string // distinct table rules in first-use order
}

func (r *htmlRenderer) visitHeader(h Header) error {
	id := r.ids.Next(h.Text)
	fmt.Fprintf(&r.buf, "<h%d id=\"%s\"%s>%s</h%d>\n",
		h.Level, html.EscapeString(id), textDeclarations(h.Style).attr(), html.EscapeString(h.Text), h.Level)
	return nil
}

func (r *htmlRenderer) visitParagraph(p Paragraph) error {
	fmt.Fprintf(&r.buf, "<p%s>%s</p>\n", paragraphDeclarations(p).attr(), html.EscapeString(p.Text))
	return nil
}

func (r *htmlRenderer) visitFigure(f Figure) error {
	src, err := pipeline.ResolveFigurePath(f.Path, r.sourceDir)
	if err != nil {
		return fmt.Errorf("resolving figure path %q: %w", f.Path, err)
	}

	fmt.Fprintf(&r.buf, "<figure><img src=\"%s\" alt=\"%s\"%s>",
		html.EscapeString(src), html.EscapeString(f.Caption), imageDeclarations(f).attr())
	if f.Caption != "" {
		fmt.Fprintf(&r.buf, "<figcaption%s>%s</figcaption>", captionDeclarations(f).attr(), html.EscapeString(f.Caption))
	}
	r.buf.WriteString("</figure>\n")
	return nil
}

func (r *htmlRenderer) visitTable(t Table) error {
	css := t.CSS
	if css == "" {
		css = defaultTableCSS
	}
	if !slices.Contains(r.tableCSS, css) {
		r.tableCSS = append(r.tableCSS, css)
	}
	r.buf.WriteString(t.HTML)
	r.buf.WriteString("\n")
	return nil
}

func (r *htmlRenderer) visitMarkdown(m Markdown) error {
	fragment, err := r.markdown.ToHTML(r.ctx, m.Source, r.ids)
	if err != nil {
		if ctxErr := r.ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	r.buf.WriteString(fragment)
	r.buf.WriteString("\n")
	return nil
}

func (r *htmlRenderer) visitCode(c Code) error {
	highlighted, err := pipeline.HighlightCode(c.Source, c.Language)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	r.buf.WriteString(highlighted)
	r.buf.WriteString("\n")
	return nil
}

var _ blockVisitor = (*htmlRenderer)(nil)
