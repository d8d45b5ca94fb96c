package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

// Dir loads assets from a directory on disk.
type Dir struct {
	path string
}

// NewDir returns a Dir rooted at path.
// Returns ErrInvalidBasePath if path is not an openable directory.
func NewDir(path string) (*Dir, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, abs)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, abs)
	}

	root, err := os.OpenRoot(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open directory: %v", ErrInvalidBasePath, err)
	}
	_ = root.Close()

	return &Dir{path: abs}, nil
}

// Load implements Loader. The directory is reopened as an os.Root on every
// call; paths escaping it fail with ErrAssetRead.
func (d *Dir) Load(kind Kind, name string) (string, error) {
	root, err := os.OpenRoot(d.path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	defer root.Close()

	return read(root.FS(), kind, name)
}

var _ Loader = (*Dir)(nil)
