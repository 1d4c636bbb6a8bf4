package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// SanitizeOutputPath cleans path and makes it absolute. It rejects a path
// that is a symlink; a path that does not exist yet is accepted.
func SanitizeOutputPath(path string) (string, error) {
	abs, info, err := inspect(path)
	if err != nil {
		return "", err
	}
	if info != nil && info.Mode()&os.ModeSymlink != 0 {
		return "", fmt.Errorf("pathutil: refusing to write through symlink %s", abs)
	}
	return abs, nil
}

// SanitizeOutputDir is SanitizeOutputPath for a directory: an existing
// non-directory is rejected as well.
func SanitizeOutputDir(path string) (string, error) {
	abs, err := SanitizeOutputPath(path)
	if err != nil {
		return "", err
	}
	if info, statErr := os.Stat(abs); statErr == nil && !info.IsDir() {
		return "", fmt.Errorf("pathutil: %s exists and is not a directory", abs)
	}
	return abs, nil
}

// inspect returns the absolute path and its Lstat info, nil when missing.
func inspect(path string) (string, os.FileInfo, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", nil, fmt.Errorf("pathutil: cannot resolve %s: %w", path, err)
	}
	info, err := os.Lstat(abs)
	switch {
	case os.IsNotExist(err):
		return abs, nil, nil
	case err != nil:
		return "", nil, fmt.Errorf("pathutil: cannot stat %s: %w", abs, err)
	}
	return abs, info, nil
}
