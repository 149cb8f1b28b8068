package source

import (
	"path"
	"strings"
)

// Normalize cleans an asset path and validates that it stays inside the
// logical root. The empty string and "." both normalize to "", the root.
// Absolute paths and paths escaping the root are rejected with
// ErrInvalidPath.
func Normalize(p string) (string, error) {
	if strings.HasPrefix(p, "/") {
		return "", InvalidPath(p)
	}
	cleaned := path.Clean(p)
	if cleaned == "." {
		return "", nil
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", InvalidPath(p)
	}
	return cleaned, nil
}

// MetaPath returns the sidecar metadata path for an asset path.
func MetaPath(p string) string {
	return p + ".meta"
}
