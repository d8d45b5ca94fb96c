package htmlreport

import (
	"fmt"
	"strings"

	"github.com/alnah/go-htmlreport/internal/pipeline"
)

// Header level bounds. HTML has six heading elements.
const (
	MinHeaderLevel = 1
	MaxHeaderLevel = 6
)

// Block is one unit of report content. The set of implementations is closed:
// Header, Paragraph, Figure, Table, Markdown and Code.
type Block interface {
	// Validate reports whether the block can be appended to a report.
	Validate() error

	// normalize validates the block and returns the form stored in a report.
	normalize() (Block, error)

	// accept dispatches to the visitor method for the concrete variant.
	accept(v blockVisitor) error
}

// blockVisitor has one method per Block variant. A new variant must add a
// method here, which every renderer must then implement.
type blockVisitor interface {
	visitHeader(Header) error
	visitParagraph(Paragraph) error
	visitFigure(Figure) error
	visitTable(Table) error
	visitMarkdown(Markdown) error
	visitCode(Code) error
}

// Text alignment values.
const (
	AlignLeft    = "left"
	AlignRight   = "right"
	AlignCenter  = "center"
	AlignJustify = "justify"
)

// TextStyle holds optional per-block text presentation.
// Empty fields inherit from the document.
type TextStyle struct {
	Align      string // "left", "right", "center", "justify"
	Font       string // CSS font-family
	Color      string // CSS color
	Background string // CSS color
	CSS        string // extra declarations, emitted last
}

// Validate checks alignment, font, color and declaration values.
func (s TextStyle) Validate() error {
	switch strings.ToLower(s.Align) {
	case "", AlignLeft, AlignRight, AlignCenter, AlignJustify:
	default:
		return fmt.Errorf("%w: align %q (must be left, right, center, or justify)", ErrInvalidArgument, s.Align)
	}
	if err := validateFont("font", s.Font, true); err != nil {
		return err
	}
	if err := validateColor("color", s.Color, true); err != nil {
		return err
	}
	if err := validateColor("background", s.Background, true); err != nil {
		return err
	}
	return validateDeclarations("css", s.CSS)
}

// TextOption sets one field of a TextStyle.
type TextOption func(*TextStyle)

// TextAlign sets horizontal alignment.
func TextAlign(align string) TextOption {
	return func(s *TextStyle) { s.Align = align }
}

// TextFont sets the typeface. For paragraphs the font argument of
// AddParagraph wins when both are set.
func TextFont(font string) TextOption {
	return func(s *TextStyle) { s.Font = font }
}

// TextCSS appends raw declarations (e.g. "letter-spacing: 2px") to the
// style attribute.
func TextCSS(declarations string) TextOption {
	return func(s *TextStyle) { s.CSS = declarations }
}

// TextColor sets the foreground color.
func TextColor(color string) TextOption {
	return func(s *TextStyle) { s.Color = color }
}

// TextBackground sets the background color behind the text.
func TextBackground(color string) TextOption {
	return func(s *TextStyle) { s.Background = color }
}

func newTextStyle(opts []TextOption) TextStyle {
	var s TextStyle
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Header is a section heading.
type Header struct {
	Text  string
	Level int // 1 (largest) to 6
	Style TextStyle
}

// Validate checks that Text is set and Level is within 1..6.
func (h Header) Validate() error {
	_, err := h.normalize()
	return err
}

func (h Header) normalize() (Block, error) {
	if h.Text == "" {
		return nil, fmt.Errorf("%w: header text cannot be empty", ErrInvalidArgument)
	}
	if h.Level < MinHeaderLevel || h.Level > MaxHeaderLevel {
		return nil, fmt.Errorf("%w: header level %d (must be between %d and %d)",
			ErrInvalidArgument, h.Level, MinHeaderLevel, MaxHeaderLevel)
	}
	if err := h.Style.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h Header) accept(v blockVisitor) error { return v.visitHeader(h) }

// Paragraph is a run of body text with an explicit size and typeface.
type Paragraph struct {
	Text  string
	Size  int    // points, must be positive
	Font  string // CSS font-family; empty inherits the document font
	Style TextStyle
}

// Validate checks that Size is positive and Font is a usable font name.
func (p Paragraph) Validate() error {
	_, err := p.normalize()
	return err
}

func (p Paragraph) normalize() (Block, error) {
	if p.Size <= 0 {
		return nil, fmt.Errorf("%w: paragraph size %d (must be positive)", ErrInvalidArgument, p.Size)
	}
	if err := validateFont("paragraph font", p.Font, true); err != nil {
		return nil, err
	}
	if err := p.Style.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p Paragraph) accept(v blockVisitor) error { return v.visitParagraph(p) }

// Figure is an image reference with an optional caption.
// Path is emitted as given unless the report has a source directory.
type Figure struct {
	Path    string
	Caption string
	Width   string // CSS length for the image, e.g. "50%" or "320px"
	CSS     string // extra declarations for the image style attribute

	CaptionSize       int // points; 0 inherits
	CaptionFont       string
	CaptionColor      string
	CaptionBackground string
}

// FigureOption sets optional Figure presentation.
type FigureOption func(*Figure)

// FigureWidth sets the rendered image width.
func FigureWidth(width string) FigureOption {
	return func(f *Figure) { f.Width = width }
}

// FigureCSS appends raw declarations (e.g. "border: 1px solid gray") to the
// image style attribute.
func FigureCSS(declarations string) FigureOption {
	return func(f *Figure) { f.CSS = declarations }
}

// CaptionSize sets the caption size in points.
func CaptionSize(size int) FigureOption {
	return func(f *Figure) { f.CaptionSize = size }
}

// CaptionFont sets the caption typeface.
func CaptionFont(font string) FigureOption {
	return func(f *Figure) { f.CaptionFont = font }
}

// CaptionColor sets the caption text color.
func CaptionColor(color string) FigureOption {
	return func(f *Figure) { f.CaptionColor = color }
}

// CaptionBackground sets the caption background color.
func CaptionBackground(color string) FigureOption {
	return func(f *Figure) { f.CaptionBackground = color }
}

// Validate checks that Path is set and the presentation values are usable.
func (f Figure) Validate() error {
	_, err := f.normalize()
	return err
}

func (f Figure) normalize() (Block, error) {
	if f.Path == "" {
		return nil, fmt.Errorf("%w: figure path cannot be empty", ErrInvalidArgument)
	}
	if f.CaptionSize < 0 {
		return nil, fmt.Errorf("%w: caption size %d (must be positive)", ErrInvalidArgument, f.CaptionSize)
	}
	if err := validateLength("figure width", f.Width); err != nil {
		return nil, err
	}
	if err := validateDeclarations("figure css", f.CSS); err != nil {
		return nil, err
	}
	if err := validateFont("caption font", f.CaptionFont, true); err != nil {
		return nil, err
	}
	if err := validateColor("caption color", f.CaptionColor, true); err != nil {
		return nil, err
	}
	if err := validateColor("caption background", f.CaptionBackground, true); err != nil {
		return nil, err
	}
	return f, nil
}

func (f Figure) accept(v blockVisitor) error { return v.visitFigure(f) }

// Table is a raw HTML fragment made of one or more <table> elements.
// CSS holds stylesheet rules emitted in place of the default table rule;
// empty keeps the default.
type Table struct {
	HTML string
	CSS  string
}

// TableOption sets optional Table presentation.
type TableOption func(*Table)

// TableCSS replaces the default table rule with css
// (e.g. "table { width: 100%; }").
func TableCSS(css string) TableOption {
	return func(t *Table) { t.CSS = css }
}

// Validate checks that HTML parses to tables only and holds no active content.
func (t Table) Validate() error {
	_, err := t.normalize()
	return err
}

func (t Table) normalize() (Block, error) {
	if strings.TrimSpace(t.HTML) == "" {
		return nil, fmt.Errorf("%w: table html cannot be empty", ErrInvalidArgument)
	}
	normalized, err := pipeline.NormalizeTableFragment(t.HTML)
	if err != nil {
		return nil, fmt.Errorf("%w: table: %w", ErrInvalidArgument, err)
	}
	return Table{HTML: normalized, CSS: strings.TrimSpace(t.CSS)}, nil
}

func (t Table) accept(v blockVisitor) error { return v.visitTable(t) }

// Markdown is a CommonMark/GFM source rendered as part of the report body.
// Raw HTML inside the source is not passed through.
type Markdown struct {
	Source string
}

// Validate checks that Source is not blank.
func (m Markdown) Validate() error {
	_, err := m.normalize()
	return err
}

func (m Markdown) normalize() (Block, error) {
	if strings.TrimSpace(m.Source) == "" {
		return nil, fmt.Errorf("%w: markdown source cannot be empty", ErrInvalidArgument)
	}
	return m, nil
}

func (m Markdown) accept(v blockVisitor) error { return v.visitMarkdown(m) }

// Code is a syntax-highlighted source listing.
type Code struct {
	Source   string
	Language string // lexer name or alias; empty means plain text
}

// Validate checks that Source is set and Language has a lexer.
func (c Code) Validate() error {
	_, err := c.normalize()
	return err
}

func (c Code) normalize() (Block, error) {
	if c.Source == "" {
		return nil, fmt.Errorf("%w: code source cannot be empty", ErrInvalidArgument)
	}
	if !pipeline.IsKnownLanguage(c.Language) {
		return nil, fmt.Errorf("%w: code language %q has no highlighter", ErrInvalidArgument, c.Language)
	}
	return c, nil
}

func (c Code) accept(v blockVisitor) error { return v.visitCode(c) }

// Compile-time interface checks.
var (
	_ Block = Header{}
	_ Block = Paragraph{}
	_ Block = Figure{}
	_ Block = Table{}
	_ Block = Markdown{}
	_ Block = Code{}
)
