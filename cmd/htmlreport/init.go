package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-htmlreport/internal/config"
	"github.com/alnah/go-htmlreport/internal/fileutil"
	"github.com/alnah/go-htmlreport/internal/yamlutil"
)

// ErrFileExists is returned when init would overwrite a file without --force.
var ErrFileExists = errors.New("file already exists")

// defaultInitPath is where init writes when no path is given.
const defaultInitPath = "report.yaml"

const sampleHeader = "# htmlreport definition. Build it with: htmlreport build %s\n"

// runInitCommand writes a sample report definition.
func runInitCommand(args []string, env *Environment) error {
	flags, positional, err := parseInitFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: init takes at most one path, got %d", ErrInvalidFlags, len(positional))
	}

	path := defaultInitPath
	if len(positional) == 1 {
		path = positional[0]
	}

	if !flags.force && fileutil.FileExists(path) {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrFileExists, path)
	}

	data, err := yamlutil.Marshal(config.SampleDefinition())
	if err != nil {
		return fmt.Errorf("encoding sample definition: %w", err)
	}
	content := append([]byte(fmt.Sprintf(sampleHeader, path)), data...)

	if err := fileutil.WriteFileAtomic(path, content); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	env.Logger.Info("wrote sample definition", "path", path)
	return nil
}
