package htmlreport

import "fmt"

// TOC depth defaults and bounds.
const (
	DefaultTOCMinDepth = 2
	DefaultTOCMaxDepth = 3
	MaxTOCDepth        = 6
)

// TOC configures the generated table of contents.
type TOC struct {
	Title    string // heading above the list; empty for none
	MinDepth int    // shallowest heading level listed (0 = DefaultTOCMinDepth)
	MaxDepth int    // deepest heading level listed (0 = DefaultTOCMaxDepth)
}

// Validate checks the depth range. Returns nil if t is nil.
func (t *TOC) Validate() error {
	if t == nil {
		return nil
	}
	minDepth, maxDepth := t.depths()
	if minDepth < 1 || minDepth > MaxTOCDepth {
		return fmt.Errorf("%w: minDepth %d (must be between 1 and %d)", ErrInvalidTOCDepth, minDepth, MaxTOCDepth)
	}
	if maxDepth < 1 || maxDepth > MaxTOCDepth {
		return fmt.Errorf("%w: maxDepth %d (must be between 1 and %d)", ErrInvalidTOCDepth, maxDepth, MaxTOCDepth)
	}
	if minDepth > maxDepth {
		return fmt.Errorf("%w: minDepth %d greater than maxDepth %d", ErrInvalidTOCDepth, minDepth, maxDepth)
	}
	return nil
}

// depths resolves zero values to the defaults.
func (t *TOC) depths() (int, int) {
	minDepth, maxDepth := t.MinDepth, t.MaxDepth
	if minDepth == 0 {
		minDepth = DefaultTOCMinDepth
	}
	if maxDepth == 0 {
		maxDepth = DefaultTOCMaxDepth
	}
	return minDepth, maxDepth
}

// Option configures a Report at construction.
type Option func(*Report)

// reportConfig holds construction-time settings resolved by New.
type reportConfig struct {
	theme       string
	noTheme     bool
	assetPath   string
	assetLoader AssetLoader
	sourceDir   string
	toc         *TOC
	date        string
}

// WithTheme selects the base stylesheet by name (see Themes).
func WithTheme(name string) Option {
	return func(r *Report) {
		r.cfg.theme = name
		r.cfg.noTheme = false
	}
}

// WithoutTheme renders with only the generated document style.
func WithoutTheme() Option {
	return func(r *Report) {
		r.cfg.noTheme = true
	}
}

// WithAssetPath loads themes and the page template from dir, falling back
// to the embedded assets for anything dir does not contain.
func WithAssetPath(dir string) Option {
	return func(r *Report) {
		r.cfg.assetPath = dir
	}
}

// WithAssetLoader sets a custom asset loader. It takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(r *Report) {
		r.cfg.assetLoader = loader
	}
}

// WithSourceDir resolves relative figure paths against dir, emitting
// absolute file:// URLs. Paths that escape dir are left unchanged.
func WithSourceDir(dir string) Option {
	return func(r *Report) {
		r.cfg.sourceDir = dir
	}
}

// WithTOC injects a numbered table of contents listing headings between
// minDepth and maxDepth. Zero depths use the defaults.
func WithTOC(title string, minDepth, maxDepth int) Option {
	return func(r *Report) {
		r.cfg.toc = &TOC{Title: title, MinDepth: minDepth, MaxDepth: maxDepth}
	}
}

// WithDate records the report date in a <meta name="date"> tag. The value
// is written as given.
func WithDate(date string) Option {
	return func(r *Report) {
		r.cfg.date = date
	}
}
