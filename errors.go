package htmlreport

import "errors"

// Sentinel errors for library operations.
var (
	// ErrInvalidArgument reports malformed input to New, a style option, or
	// an append call. The wrapped message names the field and the value.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownOption reports an unrecognized key passed to SetStyleMap.
	ErrUnknownOption = errors.New("unknown option")

	// ErrRenderWriteFailed wraps any I/O failure from RenderToFile.
	ErrRenderWriteFailed = errors.New("failed to write rendered report")

	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrTemplateRender = errors.New("page template rendering failed")

	// TOC validation errors.
	ErrInvalidTOCDepth = errors.New("invalid TOC depth")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
