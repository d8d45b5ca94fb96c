package htmlreport

import (
	"errors"

	"github.com/alnah/go-htmlreport/internal/assets"
)

// Built-in theme names.
const (
	ThemeDefault = assets.DefaultTheme
	ThemePlain   = assets.PlainTheme
)

// PageTemplate is the name of the page template every loader must provide.
const PageTemplate = assets.DefaultTemplate

// AssetLoader defines the contract for loading theme stylesheets and the page
// template. Implementations may load from the filesystem, embedded assets,
// a database, etc.
//
// The page template is an html/template receiving .Title (string), .Date
// (string, empty unless WithDate is used) and .Body (template.HTML).
type AssetLoader interface {
	// LoadStyle loads a CSS stylesheet by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML page template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory may contain:
//   - styles/{name}.css for themes
//   - templates/{name}.html for page templates
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	layered, err := assets.NewLayered(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{loader: layered}, nil
}

// Themes lists the embedded theme names.
func Themes() []string {
	return assets.Names(assets.Theme)
}

// assetLoaderAdapter wraps an internal loader to return public errors.
type assetLoaderAdapter struct {
	loader assets.Loader
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	return a.load(assets.Theme, name)
}

func (a *assetLoaderAdapter) LoadTemplate(name string) (string, error) {
	return a.load(assets.Template, name)
}

func (a *assetLoaderAdapter) load(kind assets.Kind, name string) (string, error) {
	content, err := a.loader.Load(kind, name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrAssetRead):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrStyleNotFound, err) // invalid name means not found
	default:
		return err
	}
}

// wrapError creates an error that keeps the original message but matches the
// public sentinel with errors.Is.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel. Internal errors are not exposed.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
