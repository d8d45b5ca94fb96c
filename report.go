package htmlreport

import (
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/alnah/go-htmlreport/internal/pipeline"
)

// Report is an ordered collection of content blocks bound to a title and an
// output path. Create with New, append blocks, then Render or RenderToFile.
//
// A Report is safe for concurrent use: every method holds one exclusive
// lock for its whole duration.
type Report struct {
	mu sync.Mutex

	title      string
	outputPath string
	style      Style
	blocks     []Block
	extraCSS   []string

	cfg         reportConfig
	themeCSS    string
	page        *template.Template
	markdown    pipeline.MarkdownConverter
	cssInjector pipeline.CSSInjector
	tocInjector pipeline.TOCInjector
}

// New creates an empty report with the default style.
// Returns ErrInvalidArgument if title or outputPath is empty, and asset
// errors (ErrStyleNotFound, ErrInvalidAssetPath) from option resolution.
func New(title, outputPath string, opts ...Option) (*Report, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", ErrInvalidArgument)
	}
	if outputPath == "" {
		return nil, fmt.Errorf("%w: output path cannot be empty", ErrInvalidArgument)
	}

	r := &Report{
		title:       title,
		outputPath:  outputPath,
		style:       DefaultStyle(),
		cfg:         reportConfig{theme: ThemeDefault},
		markdown:    pipeline.NewGoldmarkConverter(),
		cssInjector: &pipeline.CSSInjection{},
		tocInjector: pipeline.NewTOCInjection(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if err := r.cfg.toc.Validate(); err != nil {
		return nil, err
	}
	if err := r.loadAssets(); err != nil {
		return nil, err
	}
	return r, nil
}

// loadAssets resolves the theme stylesheet and parses the page template.
func (r *Report) loadAssets() error {
	loader := r.cfg.assetLoader
	if loader == nil {
		var err error
		loader, err = NewAssetLoader(r.cfg.assetPath)
		if err != nil {
			return err
		}
	}

	if !r.cfg.noTheme {
		css, err := loader.LoadStyle(r.cfg.theme)
		if err != nil {
			return fmt.Errorf("loading theme %q: %w", r.cfg.theme, err)
		}
		r.themeCSS = css
	}

	src, err := loader.LoadTemplate(PageTemplate)
	if err != nil {
		return fmt.Errorf("loading page template: %w", err)
	}
	page, err := template.New(PageTemplate).Parse(src)
	if err != nil {
		return fmt.Errorf("%w: parsing page template: %v", ErrTemplateRender, err)
	}
	r.page = page
	return nil
}

// Title returns the report title.
func (r *Report) Title() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.title
}

// OutputPath returns the path RenderToFile writes to.
func (r *Report) OutputPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outputPath
}

// Style returns the current document style.
func (r *Report) Style() Style {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.style
}

// Blocks returns a copy of the blocks in insertion order.
func (r *Report) Blocks() []Block {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Block, len(r.blocks))
	copy(out, r.blocks)
	return out
}

// Len returns the number of blocks.
func (r *Report) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.blocks)
}

// SetStyle updates the fields named by opts and leaves the others as they
// are. Either every option is applied or, on ErrInvalidArgument, none is.
func (r *Report) SetStyle(opts ...StyleOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.style
	for _, opt := range opts {
		opt(&next)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	r.style = next
	return nil
}

// SetStyleMap is SetStyle keyed by name ("font", "backgroundColor").
// Any other key returns ErrUnknownOption and leaves the style unchanged.
func (r *Report) SetStyleMap(values map[string]string) error {
	opts, err := styleOptionsFromMap(values)
	if err != nil {
		return err
	}
	return r.SetStyle(opts...)
}

// Append validates every block and appends them in order. If any block is
// invalid nothing is appended.
func (r *Report) Append(blocks ...Block) error {
	normalized := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if b == nil {
			return fmt.Errorf("%w: nil block", ErrInvalidArgument)
		}
		nb, err := b.normalize()
		if err != nil {
			return err
		}
		normalized = append(normalized, nb)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocks = append(r.blocks, normalized...)
	return nil
}

// AddHeader appends a heading of the given level (1 to 6).
func (r *Report) AddHeader(text string, level int, opts ...TextOption) error {
	return r.Append(Header{Text: text, Level: level, Style: newTextStyle(opts)})
}

// AddParagraph appends body text at size points in font.
// An empty font inherits the document font.
func (r *Report) AddParagraph(text string, size int, font string, opts ...TextOption) error {
	return r.Append(Paragraph{Text: text, Size: size, Font: font, Style: newTextStyle(opts)})
}

// AddFigure appends an image reference. An empty caption renders no
// <figcaption>.
func (r *Report) AddFigure(path, caption string, opts ...FigureOption) error {
	f := Figure{Path: path, Caption: caption}
	for _, opt := range opts {
		opt(&f)
	}
	return r.Append(f)
}

// AddTable appends an HTML fragment of one or more <table> elements.
// Without TableCSS the default table rule applies.
func (r *Report) AddTable(fragment string, opts ...TableOption) error {
	t := Table{HTML: fragment}
	for _, opt := range opts {
		opt(&t)
	}
	return r.Append(t)
}

// AddMarkdown appends Markdown source rendered into the report body.
func (r *Report) AddMarkdown(source string) error {
	return r.Append(Markdown{Source: source})
}

// AddCode appends a highlighted code listing.
func (r *Report) AddCode(source, language string) error {
	return r.Append(Code{Source: source, Language: language})
}

// InsertCSS appends raw CSS rules rendered after the generated styles, so
// they override theme and document defaults.
func (r *Report) InsertCSS(css string) error {
	if strings.TrimSpace(css) == "" {
		return fmt.Errorf("%w: css cannot be empty", ErrInvalidArgument)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extraCSS = append(r.extraCSS, css)
	return nil
}
