// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alnah/go-htmlreport/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForDefinitionNotFound returns hints for missing report definitions.
// Suggests passing a path, or creating the definition in the user config
// directory when that location was searched.
func ForDefinitionNotFound(searchedPaths []string) string {
	hint := "pass a path such as ./report.yaml, or run 'htmlreport init'"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), ".config/go-htmlreport") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForUnknownOption lists the style keys that are accepted.
func ForUnknownOption(valid []string) string {
	if len(valid) == 0 {
		return ""
	}
	return format("style keys: " + strings.Join(valid, ", "))
}

// ForStyleNotFound returns hints for theme not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForWriteFailed returns hints for report write errors.
// Inside a container the output should go to a mounted volume.
func ForWriteFailed() string {
	hints := []string{"check the output directory is writable"}
	if IsInContainer() {
		hints = append(hints, "write to a mounted volume to keep the report")
	}
	return formatHints(hints)
}

// ForInvalidArgument points at the block that failed validation.
func ForInvalidArgument(file string, block int) string {
	if block < 0 {
		return format("check " + file)
	}
	return format("check blocks[" + strconv.Itoa(block) + "] in " + file)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
