package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"
)

// ResolveFigurePath converts a relative figure path to an absolute file:// URL
// rooted at sourceDir. URLs, anchors, data URIs, absolute paths, and paths
// that would escape sourceDir are returned unchanged. An empty sourceDir
// disables rewriting.
func ResolveFigurePath(path, sourceDir string) (string, error) {
	if sourceDir == "" || !isRelativePath(path) {
		return path, nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	absPath := filepath.Join(absSourceDir, path)
	if !isPathUnderDir(absPath, absSourceDir) {
		return path, nil
	}
	return pathToFileURL(absPath), nil
}

func isRelativePath(path string) bool {
	if path == "" {
		return false
	}
	for _, prefix := range []string{"http://", "https://", "file://", "data:", "//", "#"} {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return !filepath.IsAbs(path)
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(filepath.Clean(absPath)+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}
