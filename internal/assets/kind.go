package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Names of the built-in assets.
const (
	DefaultTheme    = "default"
	PlainTheme      = "plain"
	DefaultTemplate = "report"
)

// Kind describes one family of assets.
type Kind struct {
	Dir      string
	Ext      string
	NotFound error // returned when a name has no file
}

// Asset kinds.
var (
	Theme    = Kind{Dir: "styles", Ext: ".css", NotFound: ErrStyleNotFound}
	Template = Kind{Dir: "templates", Ext: ".html", NotFound: ErrTemplateNotFound}
)

// path returns the slash-separated location of name in an asset tree.
func (k Kind) path(name string) string {
	return k.Dir + "/" + name + k.Ext
}

// Loader loads named assets.
type Loader interface {
	// Load returns the asset called name. It returns kind.NotFound when the
	// asset does not exist and ErrInvalidAssetName when name is not a plain
	// file stem.
	Load(kind Kind, name string) (string, error)
}

// ValidateName checks that name can be used as a file stem: non-empty,
// without separators, dots or null bytes.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// read loads name of the given kind from fsys.
func read(fsys fs.FS, kind Kind, name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}

	content, err := fs.ReadFile(fsys, kind.path(name))
	switch {
	case err == nil:
		return string(content), nil
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", kind.NotFound, name)
	default:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
}
