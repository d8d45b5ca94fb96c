package main

import (
	"errors"
	"os"

	htmlreport "github.com/alnah/go-htmlreport"
	"github.com/alnah/go-htmlreport/internal/config"
	"github.com/alnah/go-htmlreport/internal/dateutil"
)

// Exit codes for the htmlreport CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All reports built
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, definition, or block content
	ExitIO      = 3 // File not found, permission denied, write failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, htmlreport.ErrRenderWriteFailed) ||
		errors.Is(err, config.ErrDefinitionNotFound) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/definition/validation errors (exit 2)
	if errors.Is(err, config.ErrDefinitionParse) ||
		errors.Is(err, config.ErrEmptyName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrMissingField) ||
		errors.Is(err, config.ErrInvalidBlock) ||
		errors.Is(err, config.ErrTooManyBlocks) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, htmlreport.ErrInvalidArgument) ||
		errors.Is(err, htmlreport.ErrUnknownOption) ||
		errors.Is(err, htmlreport.ErrInvalidTOCDepth) ||
		errors.Is(err, htmlreport.ErrStyleNotFound) ||
		errors.Is(err, htmlreport.ErrTemplateNotFound) ||
		errors.Is(err, htmlreport.ErrInvalidAssetPath) ||
		errors.Is(err, ErrStdoutMultiple) ||
		errors.Is(err, ErrFileExists) ||
		errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrInvalidWorkers) {
		return ExitUsage
	}

	return ExitGeneral
}
