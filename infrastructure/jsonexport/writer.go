// Package jsonexport persists a completed canvass export as an indented
// JSON document.
package jsonexport

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/azrealign/canvass/internal/domain"
	"github.com/azrealign/canvass/internal/ports"
)

var _ ports.ResultWriter = (*FileWriter)(nil)

// FileWriter writes the export document to a single JSON file,
// replacing any previous contents.
type FileWriter struct {
	path string
}

// NewFileWriter creates a writer targeting the given path.
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// Path returns the target file path.
func (w *FileWriter) Path() string { return w.path }

// Write marshals the export with indentation and writes it atomically
// via a temporary file in the same directory.
func (w *FileWriter) Write(ctx context.Context, export *domain.Export) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}

	dir := filepath.Dir(w.path)
	tmp, err := os.CreateTemp(dir, ".canvass-export-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing export: %w", err)
	}

	if err := os.Rename(tmpName, w.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing export file: %w", err)
	}
	return nil
}
