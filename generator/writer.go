package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/erraggy/oapistub/internal/fileutil"
)

// WriteFiles writes every generated file into outputDir, creating it when
// needed. File names are checked before anything is written; each file is
// replaced atomically.
func (r *GenerateResult) WriteFiles(outputDir string) error {
	for _, f := range r.Files {
		if f.Name == "" || filepath.Base(f.Name) != f.Name {
			return fmt.Errorf("invalid file name %q: must be a plain file name", f.Name)
		}
	}
	if err := os.MkdirAll(outputDir, fileutil.DirReadableByAll); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, f := range r.Files {
		path := filepath.Join(outputDir, f.Name)
		if err := fileutil.WriteFileAtomic(path, f.Content, fileutil.ReadableByAll); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
	}
	return nil
}
