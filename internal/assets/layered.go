package assets

import "errors"

// Layered loads from a custom directory first and falls back to the
// embedded assets for names the directory does not provide. Other errors
// from the directory are returned as is.
type Layered struct {
	custom Loader // nil without a custom directory
}

// NewLayered returns a Layered loader. An empty customDir serves only the
// embedded assets.
func NewLayered(customDir string) (*Layered, error) {
	l := &Layered{}
	if customDir != "" {
		dir, err := NewDir(customDir)
		if err != nil {
			return nil, err
		}
		l.custom = dir
	}
	return l, nil
}

// Load implements Loader.
func (l *Layered) Load(kind Kind, name string) (string, error) {
	if l.custom != nil {
		content, err := l.custom.Load(kind, name)
		if !errors.Is(err, kind.NotFound) {
			return content, err
		}
	}
	return Embedded{}.Load(kind, name)
}

var _ Loader = (*Layered)(nil)
