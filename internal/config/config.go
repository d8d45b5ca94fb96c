// Package config loads and validates YAML report definitions for the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-htmlreport/internal/dateutil"
	"github.com/alnah/go-htmlreport/internal/fileutil"
	"github.com/alnah/go-htmlreport/internal/yamlutil"
)

// Sentinel errors for definition loading.
var (
	ErrDefinitionNotFound = errors.New("report definition not found")
	ErrEmptyName          = errors.New("definition name cannot be empty")
	ErrDefinitionParse    = errors.New("failed to parse report definition")
	ErrFieldTooLong       = errors.New("field exceeds maximum length")
	ErrMissingField       = errors.New("required field missing")
	ErrInvalidBlock       = errors.New("invalid block")
	ErrTooManyBlocks      = errors.New("too many blocks")
)

// AppDirName is the directory under os.UserConfigDir searched for named
// definitions.
const AppDirName = "go-htmlreport"

// Field length limits.
const (
	MaxTitleLength      = 200
	MaxPathLength       = 4096
	MaxNameLength       = 100   // theme names, fonts, languages
	MaxColorLength      = 50    // "#ffffff", "rgb(255, 255, 255)"
	MaxTextLength       = 10000 // header and paragraph text
	MaxSourceLength     = 1 << 20
	MaxCSSLength        = 64 * 1024
	MaxStyleValueLength = 200
	MaxBlocks           = 10000
)

// Definition describes one report: where it goes, how it looks, and its
// blocks in order.
type Definition struct {
	Title     string            `yaml:"title"`
	Output    string            `yaml:"output"`              // relative paths resolve against the definition file
	Theme     string            `yaml:"theme,omitempty"`     // embedded or custom theme name
	AssetPath string            `yaml:"assetPath,omitempty"` // directory with styles/ and templates/
	SourceDir string            `yaml:"sourceDir,omitempty"` // base for relative figure paths
	Date      string            `yaml:"date,omitempty"`      // "auto", "auto:FORMAT" or a literal date
	Style     map[string]string `yaml:"style,omitempty"`     // font, backgroundColor
	TOC       TOCConfig         `yaml:"toc,omitempty"`
	CSS       string            `yaml:"css,omitempty"` // raw rules appended after generated styles
	Blocks    []BlockConfig     `yaml:"blocks"`
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Title    string `yaml:"title,omitempty"`
	MinDepth int    `yaml:"minDepth,omitempty"` // 1-6, default 2
	MaxDepth int    `yaml:"maxDepth,omitempty"` // 1-6, default 3
}

// BlockConfig holds exactly one block kind.
type BlockConfig struct {
	Header    *HeaderConfig    `yaml:"header,omitempty"`
	Paragraph *ParagraphConfig `yaml:"paragraph,omitempty"`
	Figure    *FigureConfig    `yaml:"figure,omitempty"`
	Table     *TableConfig     `yaml:"table,omitempty"`
	Markdown  *string          `yaml:"markdown,omitempty"`
	Code      *CodeConfig      `yaml:"code,omitempty"`
}

// TextConfig holds optional per-block text styling.
type TextConfig struct {
	Align      string `yaml:"align,omitempty"`
	Color      string `yaml:"color,omitempty"`
	Background string `yaml:"background,omitempty"`
	CSS        string `yaml:"css,omitempty"` // raw declarations for the style attribute
}

// HeaderConfig defines a heading block.
type HeaderConfig struct {
	Text       string `yaml:"text"`
	Level      int    `yaml:"level"`
	Font       string `yaml:"font,omitempty"`
	TextConfig `yaml:",inline"`
}

// ParagraphConfig defines a paragraph block.
type ParagraphConfig struct {
	Text       string `yaml:"text"`
	Size       int    `yaml:"size"`
	Font       string `yaml:"font,omitempty"`
	TextConfig `yaml:",inline"`
}

// FigureConfig defines a figure block.
type FigureConfig struct {
	Path              string `yaml:"path"`
	Caption           string `yaml:"caption,omitempty"`
	Width             string `yaml:"width,omitempty"`
	CSS               string `yaml:"css,omitempty"`
	CaptionSize       int    `yaml:"captionSize,omitempty"`
	CaptionFont       string `yaml:"captionFont,omitempty"`
	CaptionColor      string `yaml:"captionColor,omitempty"`
	CaptionBackground string `yaml:"captionBackground,omitempty"`
}

// TableConfig defines a raw HTML table block. CSS replaces the default
// table rule.
type TableConfig struct {
	HTML string `yaml:"html"`
	CSS  string `yaml:"css,omitempty"`
}

// CodeConfig defines a highlighted code block.
type CodeConfig struct {
	Source   string `yaml:"source"`
	Language string `yaml:"language,omitempty"`
}

// Kind returns the name of the block kind that is set, or "" if none is.
// If several are set, the first in declaration order is returned.
func (b BlockConfig) Kind() string {
	switch {
	case b.Header != nil:
		return "header"
	case b.Paragraph != nil:
		return "paragraph"
	case b.Figure != nil:
		return "figure"
	case b.Table != nil:
		return "table"
	case b.Markdown != nil:
		return "markdown"
	case b.Code != nil:
		return "code"
	}
	return ""
}

func (b BlockConfig) kindCount() int {
	n := 0
	for _, set := range []bool{
		b.Header != nil, b.Paragraph != nil, b.Figure != nil,
		b.Table != nil, b.Markdown != nil, b.Code != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// Validate checks required fields, block shape, and field lengths.
// Content rules (header levels, CSS values) are left to the report library
// so both surfaces report them identically.
func (d *Definition) Validate() error {
	if d.Title == "" {
		return fmt.Errorf("%w: title", ErrMissingField)
	}
	if err := validateFieldLength("title", d.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("output", d.Output, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("theme", d.Theme, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("assetPath", d.AssetPath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("sourceDir", d.SourceDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("date", d.Date, MaxNameLength); err != nil {
		return err
	}
	if _, err := dateutil.Resolve(d.Date, time.Time{}); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	for key, value := range d.Style {
		if err := validateFieldLength("style."+key, value, MaxStyleValueLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("toc.title", d.TOC.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("css", d.CSS, MaxCSSLength); err != nil {
		return err
	}

	if len(d.Blocks) > MaxBlocks {
		return fmt.Errorf("%w: %d (max %d)", ErrTooManyBlocks, len(d.Blocks), MaxBlocks)
	}
	for i, b := range d.Blocks {
		if err := b.validate(fmt.Sprintf("blocks[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func (b BlockConfig) validate(field string) error {
	switch n := b.kindCount(); {
	case n == 0:
		return fmt.Errorf("%w: %s: must set one of header, paragraph, figure, table, markdown, code", ErrInvalidBlock, field)
	case n > 1:
		return fmt.Errorf("%w: %s: sets %d block kinds, want exactly one", ErrInvalidBlock, field, n)
	}

	field += "." + b.Kind()
	switch {
	case b.Header != nil:
		return firstError(
			validateFieldLength(field+".text", b.Header.Text, MaxTextLength),
			validateFieldLength(field+".font", b.Header.Font, MaxNameLength),
			b.Header.TextConfig.validate(field),
		)
	case b.Paragraph != nil:
		return firstError(
			validateFieldLength(field+".text", b.Paragraph.Text, MaxTextLength),
			validateFieldLength(field+".font", b.Paragraph.Font, MaxNameLength),
			b.Paragraph.TextConfig.validate(field),
		)
	case b.Figure != nil:
		f := b.Figure
		return firstError(
			validateFieldLength(field+".path", f.Path, MaxPathLength),
			validateFieldLength(field+".caption", f.Caption, MaxTextLength),
			validateFieldLength(field+".width", f.Width, MaxColorLength),
			validateFieldLength(field+".css", f.CSS, MaxStyleValueLength),
			validateFieldLength(field+".captionFont", f.CaptionFont, MaxNameLength),
			validateFieldLength(field+".captionColor", f.CaptionColor, MaxColorLength),
			validateFieldLength(field+".captionBackground", f.CaptionBackground, MaxColorLength),
		)
	case b.Table != nil:
		return firstError(
			validateFieldLength(field+".html", b.Table.HTML, MaxSourceLength),
			validateFieldLength(field+".css", b.Table.CSS, MaxCSSLength),
		)
	case b.Markdown != nil:
		return validateFieldLength(field, *b.Markdown, MaxSourceLength)
	default:
		return firstError(
			validateFieldLength(field+".source", b.Code.Source, MaxSourceLength),
			validateFieldLength(field+".language", b.Code.Language, MaxNameLength),
		)
	}
}

func (t TextConfig) validate(field string) error {
	return firstError(
		validateFieldLength(field+".align", t.Align, MaxNameLength),
		validateFieldLength(field+".color", t.Color, MaxColorLength),
		validateFieldLength(field+".background", t.Background, MaxColorLength),
		validateFieldLength(field+".css", t.CSS, MaxStyleValueLength),
	)
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadDefinition loads a definition from a file path or a name.
// If nameOrPath contains a path separator or a YAML extension it is read as
// a file; otherwise it is searched in standard locations. Relative Output,
// AssetPath and SourceDir values are resolved against the file's directory.
func LoadDefinition(nameOrPath string) (*Definition, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyName
	}

	path := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		path, err = resolveDefinitionPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	var def Definition
	if err := yamlutil.ReadFileStrict(path, &def); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDefinitionNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrDefinitionParse, path, err)
	}

	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	def.resolvePaths(filepath.Dir(path))
	return &def, nil
}

// resolvePaths makes relative paths absolute against base.
func (d *Definition) resolvePaths(base string) {
	for _, p := range []*string{&d.Output, &d.AssetPath, &d.SourceDir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	if fileutil.IsFilePath(s) {
		return true
	}
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

// SearchPaths lists the files tried for a definition name, in order:
// ./name.yaml, ./name.yml, then the same names under
// os.UserConfigDir()/go-htmlreport/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDirName, name+ext))
		}
	}
	return paths
}

// resolveDefinitionPath returns the first existing file from SearchPaths.
func resolveDefinitionPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrDefinitionNotFound, strings.Join(tried, ", "))
}

// SampleDefinition returns the definition written by "htmlreport init".
func SampleDefinition() *Definition {
	markdown := "Markdown blocks support **GFM**, tables and ==highlights==.\n"
	return &Definition{
		Title:  "Sample report",
		Output: "sample.html",
		Theme:  "default",
		Date:   "auto:long",
		Style: map[string]string{
			"font":            "Arial",
			"backgroundColor": "white",
		},
		TOC: TOCConfig{Enabled: true, Title: "Contents", MinDepth: 1, MaxDepth: 2},
		Blocks: []BlockConfig{
			{Header: &HeaderConfig{Text: "Hello, world!", Level: 1}},
			{Header: &HeaderConfig{Text: "Hello, section!", Level: 2}},
			{Paragraph: &ParagraphConfig{Text: "Put some text here", Size: 12, Font: "Verdana"}},
			{Figure: &FigureConfig{Path: "img_path", Caption: "This is a figure"}},
			{Markdown: &markdown},
		},
	}
}
