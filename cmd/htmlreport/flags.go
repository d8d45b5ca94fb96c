package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	quiet   bool
	verbose bool
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common    commonFlags
	outputDir string // overrides the directory of each definition's output
	theme     string // overrides each definition's theme
	noTheme   bool
	assetPath string // overrides each definition's assetPath
	workers   int
	stdout    bool
}

// initFlags holds flags for the init command.
type initFlags struct {
	force bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output and timing")
}

// parseBuildFlags parses build command flags.
// Returns the remaining positional arguments (definition files or names).
func parseBuildFlags(args []string, usage io.Writer) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &buildFlags{}

	fs.StringVarP(&f.outputDir, "output-dir", "o", "", "write reports into this directory")
	fs.StringVar(&f.theme, "theme", "", "theme name (overrides definitions)")
	fs.BoolVar(&f.noTheme, "no-theme", false, "render without a theme stylesheet")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with custom styles/ and templates/")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel builds (0 = auto)")
	fs.BoolVar(&f.stdout, "stdout", false, "print the rendered HTML instead of writing a file")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printBuildUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseInitFlags parses init command flags.
func parseInitFlags(args []string, usage io.Writer) (*initFlags, []string, error) {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &initFlags{}

	fs.BoolVarP(&f.force, "force", "f", false, "overwrite an existing file")
	fs.Usage = func() { printInitUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
