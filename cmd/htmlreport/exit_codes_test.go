package main

// Notes:
// - exitCodeFor: we test the sentinel errors of the library, config and CLI,
//   plus wrapped errors to verify the errors.Is() chain works correctly.
// - Exit code constants: we verify Unix conventions (0=success, 1=general, 2=usage)
//   and custom codes are below 126.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	htmlreport "github.com/alnah/go-htmlreport"
	"github.com/alnah/go-htmlreport/internal/config"
	"github.com/alnah/go-htmlreport/internal/dateutil"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"render write failed", htmlreport.ErrRenderWriteFailed, ExitIO},
		{"definition not found", config.ErrDefinitionNotFound, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"wrapped write failed", fmt.Errorf("%w: out.html: %w", htmlreport.ErrRenderWriteFailed, os.ErrPermission), ExitIO},

		// Usage/definition/validation errors (exit 2)
		{"definition parse", config.ErrDefinitionParse, ExitUsage},
		{"empty name", config.ErrEmptyName, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"missing field", config.ErrMissingField, ExitUsage},
		{"invalid block", config.ErrInvalidBlock, ExitUsage},
		{"too many blocks", config.ErrTooManyBlocks, ExitUsage},
		{"invalid date format", dateutil.ErrInvalidDateFormat, ExitUsage},
		{"invalid argument", htmlreport.ErrInvalidArgument, ExitUsage},
		{"unknown option", htmlreport.ErrUnknownOption, ExitUsage},
		{"invalid toc depth", htmlreport.ErrInvalidTOCDepth, ExitUsage},
		{"style not found", htmlreport.ErrStyleNotFound, ExitUsage},
		{"template not found", htmlreport.ErrTemplateNotFound, ExitUsage},
		{"invalid asset path", htmlreport.ErrInvalidAssetPath, ExitUsage},
		{"stdout multiple", ErrStdoutMultiple, ExitUsage},
		{"file exists", ErrFileExists, ExitUsage},
		{"invalid flags", ErrInvalidFlags, ExitUsage},
		{"invalid workers", ErrInvalidWorkers, ExitUsage},
		{"block error", &blockError{Index: 2, Kind: "header", Err: htmlreport.ErrInvalidArgument}, ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("boom"), ExitGeneral},
		{"html conversion", htmlreport.ErrHTMLConversion, ExitGeneral},
		{"canceled", context.Canceled, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}
	for _, code := range []int{ExitIO} {
		if code >= 126 {
			t.Errorf("custom exit code %d must be below 126", code)
		}
	}
}
