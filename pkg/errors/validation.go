package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateOutputPath validates an output file path for rendering.
// It rejects paths that cannot name a regular file:
//   - No empty paths
//   - No control characters or null bytes
//   - No trailing separator (directories)
//
// The extension is not checked here; the renderer decides which formats it
// supports.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid control characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}

	base := filepath.Base(path)
	if base == "." || base == ".." {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}

	return nil
}
