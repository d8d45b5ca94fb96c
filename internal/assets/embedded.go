package assets

import (
	"embed"
	"io/fs"
	"slices"
	"strings"
)

//go:embed styles/*.css templates/*.html
var embedded embed.FS

// Embedded loads the assets compiled into the binary.
type Embedded struct{}

// Load implements Loader.
func (Embedded) Load(kind Kind, name string) (string, error) {
	return read(embedded, kind, name)
}

// Names lists the embedded assets of kind in sorted order.
func Names(kind Kind) []string {
	entries, err := fs.ReadDir(embedded, kind.Dir)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), kind.Ext); ok && !e.IsDir() {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

var _ Loader = Embedded{}
