package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
	"golang.org/x/sync/errgroup"

	htmlreport "github.com/alnah/go-htmlreport"
	"github.com/alnah/go-htmlreport/internal/config"
	"github.com/alnah/go-htmlreport/internal/dateutil"
	"github.com/alnah/go-htmlreport/internal/hints"
)

// Sentinel errors for the build command.
var (
	ErrNoInput        = errors.New("no report definition specified")
	ErrStdoutMultiple = errors.New("--stdout accepts a single definition")
	ErrInvalidWorkers = errors.New("invalid worker count")
	ErrInvalidFlags   = errors.New("invalid flags")
)

// maxWorkers bounds --workers.
const maxWorkers = 32

// hintPrefix is stripped from hints before they become a log field.
const hintPrefix = "\n  hint: "

// buildResult holds the outcome of a single definition.
type buildResult struct {
	Input    string
	Output   string
	Blocks   int
	Err      error
	Duration time.Duration
}

// blockError locates a block that the report rejected.
type blockError struct {
	Index int
	Kind  string
	Err   error
}

func (e *blockError) Error() string {
	return fmt.Sprintf("blocks[%d] (%s): %v", e.Index, e.Kind, e.Err)
}

func (e *blockError) Unwrap() error { return e.Err }

// runBuildCommand parses flags, builds every definition, and returns the
// exit code of the first failure in argument order.
func runBuildCommand(ctx context.Context, args []string, env *Environment) int {
	flags, inputs, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return reportError(env, fmt.Errorf("%w: %v", ErrInvalidFlags, err), "")
	}
	env.applyVerbosity(flags.common.verbose, flags.common.quiet)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	if undo, err := maxprocs.Set(maxprocs.Logger(env.Logger.Debugf)); err == nil {
		defer undo()
	}

	results, err := runBuild(ctx, inputs, flags, env)
	if err != nil {
		return reportError(env, err, "")
	}
	return summarize(results, flags, env)
}

// runBuild builds every input concurrently. Per-definition failures are
// recorded in the results; the returned error covers invalid invocations.
func runBuild(ctx context.Context, inputs []string, flags *buildFlags, env *Environment) ([]buildResult, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInput
	}
	if flags.stdout && len(inputs) > 1 {
		return nil, fmt.Errorf("%w: got %d", ErrStdoutMultiple, len(inputs))
	}
	if err := validateWorkers(flags.workers); err != nil {
		return nil, err
	}

	workers := resolveWorkers(flags.workers, len(inputs))
	env.Logger.Debug("starting build", "definitions", len(inputs), "workers", workers)

	results := make([]buildResult, len(inputs))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, input := range inputs {
		g.Go(func() error {
			results[i] = buildOne(ctx, input, flags, env)
			return nil
		})
	}
	_ = g.Wait() // builds report through results, never through the group

	return results, nil
}

// buildOne loads, assembles and renders a single definition.
func buildOne(ctx context.Context, input string, flags *buildFlags, env *Environment) (res buildResult) {
	start := time.Now()
	res.Input = input
	defer func() { res.Duration = time.Since(start) }()

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	def, err := config.LoadDefinition(input)
	if err != nil {
		res.Err = err
		return res
	}

	report, err := newReport(def, input, flags, env.Now())
	if err != nil {
		res.Err = err
		return res
	}
	res.Output = report.OutputPath()
	res.Blocks = report.Len()

	if flags.stdout {
		out, err := report.RenderContext(ctx)
		if err != nil {
			res.Err = err
			return res
		}
		if _, err := fmt.Fprint(env.Stdout, out); err != nil {
			res.Err = fmt.Errorf("%w: stdout: %w", htmlreport.ErrRenderWriteFailed, err)
		}
		res.Output = "-"
		return res
	}

	res.Err = report.RenderToFileContext(ctx)
	return res
}

// newReport turns a definition into a populated report. Flags override the
// definition's theme and asset path; now resolves generated dates.
func newReport(def *config.Definition, input string, flags *buildFlags, now time.Time) (*htmlreport.Report, error) {
	var opts []htmlreport.Option

	theme := def.Theme
	if flags.theme != "" {
		theme = flags.theme
	}
	if theme != "" {
		opts = append(opts, htmlreport.WithTheme(theme))
	}
	if flags.noTheme {
		opts = append(opts, htmlreport.WithoutTheme())
	}

	assetPath := def.AssetPath
	if flags.assetPath != "" {
		assetPath = flags.assetPath
	}
	if assetPath != "" {
		opts = append(opts, htmlreport.WithAssetPath(assetPath))
	}
	if def.SourceDir != "" {
		opts = append(opts, htmlreport.WithSourceDir(def.SourceDir))
	}
	if def.Date != "" {
		date, err := dateutil.Resolve(def.Date, now)
		if err != nil {
			return nil, fmt.Errorf("date: %w", err)
		}
		opts = append(opts, htmlreport.WithDate(date))
	}
	if def.TOC.Enabled {
		opts = append(opts, htmlreport.WithTOC(def.TOC.Title, def.TOC.MinDepth, def.TOC.MaxDepth))
	}

	r, err := htmlreport.New(def.Title, resolveOutputPath(def.Output, input, flags.outputDir), opts...)
	if err != nil {
		return nil, err
	}

	if len(def.Style) > 0 {
		if err := r.SetStyleMap(def.Style); err != nil {
			return nil, fmt.Errorf("style: %w", err)
		}
	}
	if def.CSS != "" {
		if err := r.InsertCSS(def.CSS); err != nil {
			return nil, fmt.Errorf("css: %w", err)
		}
	}

	for i, b := range def.Blocks {
		if err := r.Append(toBlock(b)); err != nil {
			return nil, &blockError{Index: i, Kind: b.Kind(), Err: err}
		}
	}
	return r, nil
}

// resolveOutputPath picks the report file: the definition's output, or the
// input path with an .html extension, moved into outputDir when set.
func resolveOutputPath(defOutput, input, outputDir string) string {
	out := defOutput
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + ".html"
	}
	if outputDir != "" {
		out = filepath.Join(outputDir, filepath.Base(out))
	}
	return out
}

// toBlock converts one definition entry to a report block.
// Returns nil for an empty entry, which Append rejects.
func toBlock(b config.BlockConfig) htmlreport.Block {
	switch {
	case b.Header != nil:
		h := b.Header
		style := toTextStyle(h.TextConfig)
		style.Font = h.Font
		return htmlreport.Header{Text: h.Text, Level: h.Level, Style: style}
	case b.Paragraph != nil:
		p := b.Paragraph
		return htmlreport.Paragraph{Text: p.Text, Size: p.Size, Font: p.Font, Style: toTextStyle(p.TextConfig)}
	case b.Figure != nil:
		f := b.Figure
		return htmlreport.Figure{
			Path:              f.Path,
			Caption:           f.Caption,
			Width:             f.Width,
			CSS:               f.CSS,
			CaptionSize:       f.CaptionSize,
			CaptionFont:       f.CaptionFont,
			CaptionColor:      f.CaptionColor,
			CaptionBackground: f.CaptionBackground,
		}
	case b.Table != nil:
		return htmlreport.Table{HTML: b.Table.HTML, CSS: b.Table.CSS}
	case b.Markdown != nil:
		return htmlreport.Markdown{Source: *b.Markdown}
	case b.Code != nil:
		return htmlreport.Code{Source: b.Code.Source, Language: b.Code.Language}
	}
	return nil
}

func toTextStyle(t config.TextConfig) htmlreport.TextStyle {
	return htmlreport.TextStyle{Align: t.Align, Color: t.Color, Background: t.Background, CSS: t.CSS}
}

// validateWorkers checks the --workers range (0 means auto).
func validateWorkers(n int) error {
	if n < 0 || n > maxWorkers {
		return fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidWorkers, n, maxWorkers)
	}
	return nil
}

// resolveWorkers determines the build concurrency.
// Priority: explicit flag > GOMAXPROCS (adjusted by automaxprocs), capped
// at the number of jobs.
func resolveWorkers(flagWorkers, jobs int) int {
	n := flagWorkers
	if n <= 0 {
		n = min(max(runtime.GOMAXPROCS(0), 1), 8)
	}
	return max(min(n, jobs), 1)
}

// summarize logs each result and returns the exit code of the first failure.
func summarize(results []buildResult, flags *buildFlags, env *Environment) int {
	code := ExitSuccess
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			if c := reportError(env, r.Err, r.Input); code == ExitSuccess {
				code = c
			}
			continue
		}

		kv := []any{"definition", r.Input, "output", r.Output, "blocks", r.Blocks}
		if flags.common.verbose {
			kv = append(kv, "duration", r.Duration.Round(time.Millisecond))
		}
		env.Logger.Info("built report", kv...)
	}

	if len(results) > 1 {
		env.Logger.Info("done", "succeeded", len(results)-failed, "failed", failed)
	}
	return code
}

// reportError logs err with an actionable hint and returns its exit code.
func reportError(env *Environment, err error, input string) int {
	if err == nil {
		return ExitSuccess
	}

	var kv []any
	if input != "" {
		kv = append(kv, "definition", input)
	}
	kv = append(kv, "err", err)
	if h := hintFor(err, input); h != "" {
		kv = append(kv, "hint", strings.TrimPrefix(h, hintPrefix))
	}
	env.Logger.Error("build failed", kv...)
	return exitCodeFor(err)
}

// hintFor picks the hint matching err.
func hintFor(err error, input string) string {
	switch {
	case errors.Is(err, config.ErrDefinitionNotFound):
		var searched []string
		if isDefinitionName(input) {
			searched = config.SearchPaths(input)
		}
		return hints.ForDefinitionNotFound(searched)
	case errors.Is(err, htmlreport.ErrUnknownOption):
		return hints.ForUnknownOption(htmlreport.StyleKeys())
	case errors.Is(err, htmlreport.ErrStyleNotFound):
		return hints.ForStyleNotFound(htmlreport.Themes())
	case errors.Is(err, htmlreport.ErrRenderWriteFailed):
		return hints.ForWriteFailed()
	case errors.Is(err, htmlreport.ErrInvalidArgument) && input != "":
		var be *blockError
		if errors.As(err, &be) {
			return hints.ForInvalidArgument(input, be.Index)
		}
		return hints.ForInvalidArgument(input, -1)
	}
	return ""
}

// isDefinitionName reports whether input is a bare name rather than a path.
func isDefinitionName(input string) bool {
	return input != "" && filepath.Base(input) == input && filepath.Ext(input) == ""
}
