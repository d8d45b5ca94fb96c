package main

// Notes:
// - runBuildCommand: we test end-to-end builds from YAML definitions written
//   to t.TempDir(), covering file output, --stdout, --output-dir, several
//   definitions and the exit codes of failures.
// - newReport/toBlock: we test flag precedence over the definition and that
//   every block kind converts.
// - buildOne: results carry block counts and a measured duration.
// - resolveOutputPath, resolveWorkers, validateWorkers, hintFor: pure helpers.
// These are acceptable gaps: we don't test signal-driven cancellation, only a
// context cancelled up front.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	htmlreport "github.com/alnah/go-htmlreport"
	"github.com/alnah/go-htmlreport/internal/config"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

const scenarioDefinition = `title: Scenario
output: scenario.html
date: auto:long
style:
  font: Arial
  backgroundColor: red
blocks:
  - header:
      text: Hello, world!
      level: 1
  - header:
      text: Hello, section!
      level: 2
  - paragraph:
      text: Put some text here
      size: 12
      font: Verdana
  - figure:
      path: img_path
      caption: This is a figure
`

// writeFile writes content under dir and returns the full path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// TestRunBuildCommand - End-to-end builds
// ---------------------------------------------------------------------------

func TestRunBuildCommand(t *testing.T) {
	t.Parallel()

	t.Run("writes the report next to the definition", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		def := writeFile(t, dir, "scenario.yaml", scenarioDefinition)
		env, stdout, stderr := newTestEnv()

		code := runBuildCommand(context.Background(), []string{def}, env)
		if code != ExitSuccess {
			t.Fatalf("code = %d, want %d (stderr: %s)", code, ExitSuccess, stderr.String())
		}
		if stdout.Len() != 0 {
			t.Errorf("stdout should be empty, got %q", stdout.String())
		}

		html := readFile(t, filepath.Join(dir, "scenario.html"))
		for _, want := range []string{
			"<title>Scenario</title>",
			`<meta name="date" content="March 9, 2026">`,
			"font-family: Arial;",
			"background-color: red;",
			">Hello, world!</h1>",
			">Hello, section!</h2>",
			`<p style="font-size: 12pt; font-family: Verdana">Put some text here</p>`,
			`<img src="img_path" alt="This is a figure">`,
			"<figcaption>This is a figure</figcaption>",
		} {
			if !strings.Contains(html, want) {
				t.Errorf("report missing %q", want)
			}
		}
		if !strings.Contains(stderr.String(), "built report") {
			t.Errorf("stderr should log the build, got %q", stderr.String())
		}
	})

	t.Run("stdout", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		def := writeFile(t, dir, "scenario.yaml", scenarioDefinition)
		env, stdout, stderr := newTestEnv()

		code := runBuildCommand(context.Background(), []string{"--stdout", def}, env)
		if code != ExitSuccess {
			t.Fatalf("code = %d, want %d (stderr: %s)", code, ExitSuccess, stderr.String())
		}
		if !strings.HasPrefix(stdout.String(), "<!DOCTYPE html>") {
			t.Errorf("stdout should hold the document, got %q", stdout.String())
		}
		if _, err := os.Stat(filepath.Join(dir, "scenario.html")); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("--stdout should not write a file, stat err = %v", err)
		}
	})

	t.Run("stdout rejects several definitions", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a := writeFile(t, dir, "a.yaml", scenarioDefinition)
		b := writeFile(t, dir, "b.yaml", scenarioDefinition)
		env, _, _ := newTestEnv()

		if code := runBuildCommand(context.Background(), []string{"--stdout", a, b}, env); code != ExitUsage {
			t.Errorf("code = %d, want %d", code, ExitUsage)
		}
	})

	t.Run("output dir", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		outDir := filepath.Join(dir, "public")
		def := writeFile(t, dir, "scenario.yaml", scenarioDefinition)
		env, _, stderr := newTestEnv()

		code := runBuildCommand(context.Background(), []string{"-o", outDir, def}, env)
		if code != ExitSuccess {
			t.Fatalf("code = %d, want %d (stderr: %s)", code, ExitSuccess, stderr.String())
		}
		if html := readFile(t, filepath.Join(outDir, "scenario.html")); !strings.Contains(html, "Hello, world!") {
			t.Errorf("report in output dir missing content")
		}
	})

	t.Run("several definitions", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		var inputs []string
		for _, name := range []string{"one", "two", "three"} {
			content := strings.Replace(scenarioDefinition, "scenario.html", name+".html", 1)
			inputs = append(inputs, writeFile(t, dir, name+".yaml", content))
		}
		env, _, stderr := newTestEnv()

		code := runBuildCommand(context.Background(), append([]string{"-w", "2"}, inputs...), env)
		if code != ExitSuccess {
			t.Fatalf("code = %d, want %d (stderr: %s)", code, ExitSuccess, stderr.String())
		}
		for _, name := range []string{"one", "two", "three"} {
			if _, err := os.Stat(filepath.Join(dir, name+".html")); err != nil {
				t.Errorf("%s.html not written: %v", name, err)
			}
		}
		if !strings.Contains(stderr.String(), "succeeded=3") {
			t.Errorf("stderr should summarize the batch, got %q", stderr.String())
		}
	})

	t.Run("first failure decides the exit code", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		good := writeFile(t, dir, "good.yaml", scenarioDefinition)
		missing := filepath.Join(dir, "missing.yaml")
		bad := writeFile(t, dir, "bad.yaml", strings.Replace(scenarioDefinition, "font: Arial", "fontFamily: Arial", 1))
		env, _, stderr := newTestEnv()

		code := runBuildCommand(context.Background(), []string{good, missing, bad}, env)
		if code != ExitIO {
			t.Errorf("code = %d, want %d (stderr: %s)", code, ExitIO, stderr.String())
		}
		if _, err := os.Stat(filepath.Join(dir, "scenario.html")); err != nil {
			t.Errorf("good definition should still build: %v", err)
		}
		if !strings.Contains(stderr.String(), "failed=2") {
			t.Errorf("stderr should count failures, got %q", stderr.String())
		}
	})

	t.Run("unknown style key", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		def := writeFile(t, dir, "bad.yaml", strings.Replace(scenarioDefinition, "font: Arial", "fontFamily: Arial", 1))
		env, _, stderr := newTestEnv()

		code := runBuildCommand(context.Background(), []string{def}, env)
		if code != ExitUsage {
			t.Errorf("code = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), "fontFamily") {
			t.Errorf("stderr should name the key, got %q", stderr.String())
		}
		if !strings.Contains(stderr.String(), "backgroundColor") {
			t.Errorf("stderr should hint the valid keys, got %q", stderr.String())
		}
	})

	t.Run("invalid block", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		def := writeFile(t, dir, "bad.yaml", strings.Replace(scenarioDefinition, "size: 12", "size: -1", 1))
		env, _, stderr := newTestEnv()

		code := runBuildCommand(context.Background(), []string{def}, env)
		if code != ExitUsage {
			t.Errorf("code = %d, want %d (stderr: %s)", code, ExitUsage, stderr.String())
		}
		if _, err := os.Stat(filepath.Join(dir, "scenario.html")); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("a rejected definition should not write output, stat err = %v", err)
		}
	})

	t.Run("missing definition", func(t *testing.T) {
		t.Parallel()

		env, _, _ := newTestEnv()
		code := runBuildCommand(context.Background(), []string{filepath.Join(t.TempDir(), "nope.yaml")}, env)
		if code != ExitIO {
			t.Errorf("code = %d, want %d", code, ExitIO)
		}
	})

	t.Run("invalid workers", func(t *testing.T) {
		t.Parallel()

		env, _, _ := newTestEnv()
		if code := runBuildCommand(context.Background(), []string{"-w", "-1", "x.yaml"}, env); code != ExitUsage {
			t.Errorf("code = %d, want %d", code, ExitUsage)
		}
	})

	t.Run("quiet hides info logs", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		def := writeFile(t, dir, "scenario.yaml", scenarioDefinition)
		env, _, stderr := newTestEnv()

		if code := runBuildCommand(context.Background(), []string{"-q", def}, env); code != ExitSuccess {
			t.Fatalf("code = %d, want %d", code, ExitSuccess)
		}
		if stderr.Len() != 0 {
			t.Errorf("quiet build should log nothing, got %q", stderr.String())
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		def := writeFile(t, dir, "scenario.yaml", scenarioDefinition)
		env, _, _ := newTestEnv()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if code := runBuildCommand(ctx, []string{def}, env); code != ExitGeneral {
			t.Errorf("code = %d, want %d", code, ExitGeneral)
		}
		if _, err := os.Stat(filepath.Join(dir, "scenario.html")); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("cancelled build should not write output, stat err = %v", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestNewReport - Definition to report
// ---------------------------------------------------------------------------

func TestNewReport(t *testing.T) {
	t.Parallel()

	markdown := "Some *markdown*."

	def := &config.Definition{
		Title:  "All kinds",
		Output: "all.html",
		Theme:  "plain",
		Style:  map[string]string{"font": "Arial"},
		CSS:    "h1 { color: navy; }",
		Blocks: []config.BlockConfig{
			{Header: &config.HeaderConfig{Text: "Title", Level: 1, Font: "Georgia", TextConfig: config.TextConfig{Align: "center", CSS: "letter-spacing: 2px"}}},
			{Paragraph: &config.ParagraphConfig{Text: "Body", Size: 10, Font: "Verdana"}},
			{Figure: &config.FigureConfig{Path: "a.png", Caption: "A", CaptionSize: 9}},
			{Table: &config.TableConfig{HTML: "<table><tr><td>1</td></tr></table>", CSS: "table { width: 100%; }"}},
			{Markdown: &markdown},
			{Code: &config.CodeConfig{Source: "x := 1", Language: "go"}},
		},
	}

	r, err := newReport(def, "all.yaml", &buildFlags{}, testNow)
	if err != nil {
		t.Fatalf("newReport: %v", err)
	}

	if r.Title() != "All kinds" {
		t.Errorf("Title() = %q, want %q", r.Title(), "All kinds")
	}
	if r.Style().Font != "Arial" {
		t.Errorf("Style().Font = %q, want Arial", r.Style().Font)
	}

	var kinds []string
	for _, b := range r.Blocks() {
		switch b.(type) {
		case htmlreport.Header:
			kinds = append(kinds, "header")
		case htmlreport.Paragraph:
			kinds = append(kinds, "paragraph")
		case htmlreport.Figure:
			kinds = append(kinds, "figure")
		case htmlreport.Table:
			kinds = append(kinds, "table")
		case htmlreport.Markdown:
			kinds = append(kinds, "markdown")
		case htmlreport.Code:
			kinds = append(kinds, "code")
		}
	}
	want := []string{"header", "paragraph", "figure", "table", "markdown", "code"}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("block kinds mismatch (-want +got):\n%s", diff)
	}

	h, ok := r.Blocks()[0].(htmlreport.Header)
	wantStyle := htmlreport.TextStyle{Align: "center", Font: "Georgia", CSS: "letter-spacing: 2px"}
	if !ok || h.Style != wantStyle {
		t.Errorf("header style not carried over: %+v", r.Blocks()[0])
	}

	tbl, ok := r.Blocks()[3].(htmlreport.Table)
	if !ok || tbl.CSS != "table { width: 100%; }" {
		t.Errorf("table css not carried over: %+v", r.Blocks()[3])
	}
}

func TestNewReport_FlagsOverrideDefinition(t *testing.T) {
	t.Parallel()

	def := &config.Definition{Title: "T", Theme: "no-such-theme", Output: "t.html"}

	if _, err := newReport(def, "t.yaml", &buildFlags{}, testNow); !errors.Is(err, htmlreport.ErrStyleNotFound) {
		t.Fatalf("definition theme should be used, got %v", err)
	}
	if _, err := newReport(def, "t.yaml", &buildFlags{theme: "plain"}, testNow); err != nil {
		t.Errorf("--theme should override the definition, got %v", err)
	}
}

func TestNewReport_BlockError(t *testing.T) {
	t.Parallel()

	def := &config.Definition{
		Title:  "T",
		Output: "t.html",
		Blocks: []config.BlockConfig{
			{Header: &config.HeaderConfig{Text: "ok", Level: 1}},
			{Header: &config.HeaderConfig{Text: "bad", Level: 9}},
		},
	}

	_, err := newReport(def, "t.yaml", &buildFlags{}, testNow)
	var be *blockError
	if !errors.As(err, &be) {
		t.Fatalf("error = %v, want *blockError", err)
	}
	if be.Index != 1 || be.Kind != "header" {
		t.Errorf("blockError = {%d %q}, want {1 \"header\"}", be.Index, be.Kind)
	}
	if !errors.Is(err, htmlreport.ErrInvalidArgument) {
		t.Errorf("error should wrap ErrInvalidArgument, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestBuildOne - Single definition results
// ---------------------------------------------------------------------------

func TestBuildOne(t *testing.T) {
	t.Parallel()

	t.Run("records duration on success", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		var def strings.Builder
		def.WriteString("title: Long\noutput: long.html\nblocks:\n")
		for range 300 {
			def.WriteString("  - paragraph:\n      text: Put some text here\n      size: 12\n")
		}
		input := writeFile(t, dir, "long.yaml", def.String())
		env, _, _ := newTestEnv()

		res := buildOne(context.Background(), input, &buildFlags{}, env)
		if res.Err != nil {
			t.Fatalf("buildOne: %v", res.Err)
		}
		if res.Blocks != 300 {
			t.Errorf("Blocks = %d, want 300", res.Blocks)
		}
		if res.Duration <= 0 {
			t.Errorf("Duration = %v, want > 0", res.Duration)
		}
	})

	t.Run("records duration on failure", func(t *testing.T) {
		t.Parallel()

		env, _, _ := newTestEnv()
		res := buildOne(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"), &buildFlags{}, env)
		if res.Err == nil {
			t.Fatal("expected an error for a missing definition")
		}
		if res.Duration <= 0 {
			t.Errorf("Duration = %v, want > 0", res.Duration)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveOutputPath - Output naming
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		defOutput string
		input     string
		outputDir string
		want      string
	}{
		{"definition output", "reports/a.html", "a.yaml", "", "reports/a.html"},
		{"derived from input", "", "defs/weekly.yaml", "", "defs/weekly.html"},
		{"bare name", "", "weekly", "", "weekly.html"},
		{"output dir keeps base name", "reports/a.html", "a.yaml", "public", filepath.Join("public", "a.html")},
		{"output dir with derived name", "", "defs/weekly.yml", "public", filepath.Join("public", "weekly.html")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := resolveOutputPath(tt.defOutput, tt.input, tt.outputDir); got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveWorkers - Concurrency sizing
// ---------------------------------------------------------------------------

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	auto := min(max(runtime.GOMAXPROCS(0), 1), 8)

	tests := []struct {
		name string
		flag int
		jobs int
		want int
	}{
		{"explicit", 4, 10, 4},
		{"explicit capped by jobs", 4, 2, 2},
		{"auto", 0, 100, auto},
		{"auto capped by jobs", 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := resolveWorkers(tt.flag, tt.jobs); got != tt.want {
				t.Errorf("resolveWorkers(%d, %d) = %d, want %d", tt.flag, tt.jobs, got, tt.want)
			}
		})
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n       int
		wantErr bool
	}{
		{0, false},
		{1, false},
		{maxWorkers, false},
		{-1, true},
		{maxWorkers + 1, true},
	}

	for _, tt := range tests {
		err := validateWorkers(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateWorkers(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidWorkers) {
			t.Errorf("validateWorkers(%d) should wrap ErrInvalidWorkers, got %v", tt.n, err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Error hints
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err   error
		input string
		want  string
	}{
		{"definition not found by name", config.ErrDefinitionNotFound, "weekly", "htmlreport init"},
		{"unknown option", htmlreport.ErrUnknownOption, "r.yaml", "backgroundColor"},
		{"style not found", htmlreport.ErrStyleNotFound, "r.yaml", "plain"},
		{"write failed", htmlreport.ErrRenderWriteFailed, "r.yaml", "writable"},
		{"block error", &blockError{Index: 3, Kind: "paragraph", Err: htmlreport.ErrInvalidArgument}, "r.yaml", "blocks[3]"},
		{"invalid argument outside blocks", htmlreport.ErrInvalidArgument, "r.yaml", "r.yaml"},
		{"no hint", errors.New("boom"), "r.yaml", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := hintFor(tt.err, tt.input)
			if tt.want == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want no hint", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("hintFor() = %q, want to contain %q", got, tt.want)
			}
		})
	}
}

func TestIsDefinitionName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"weekly", true},
		{"weekly.yaml", false},
		{"defs/weekly", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isDefinitionName(tt.input); got != tt.want {
			t.Errorf("isDefinitionName(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
