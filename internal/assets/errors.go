package assets

import "errors"

// Sentinel errors for asset loading.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName rejects names that are not a plain file stem.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath rejects a custom directory that cannot be used.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead covers read failures other than a missing file, including
	// symlinks leaving the custom directory.
	ErrAssetRead = errors.New("failed to read asset")
)
