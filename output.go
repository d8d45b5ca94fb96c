package htmlreport

import (
	"context"
	"fmt"

	"github.com/alnah/go-htmlreport/internal/fileutil"
)

// RenderToFile renders the report and writes it to OutputPath, creating
// parent directories as needed. The file is replaced atomically. Any I/O
// failure is returned wrapped in ErrRenderWriteFailed.
func (r *Report) RenderToFile() error {
	return r.RenderToFileContext(context.Background())
}

// RenderToFileContext is RenderToFile with a context for the render stage.
func (r *Report) RenderToFileContext(ctx context.Context) error {
	out, err := r.RenderContext(ctx)
	if err != nil {
		return err
	}

	path := r.OutputPath()
	if err := fileutil.WriteFileAtomic(path, []byte(out)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRenderWriteFailed, path, err)
	}
	return nil
}
