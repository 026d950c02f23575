// Package handoff passes completion results to the editor through temporary files.
package handoff

import (
	"os"
	"path/filepath"

	"github.com/segmentio/ksuid"
	"go.trai.ch/connector/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ResultWriter = (*Writer)(nil)

const filePrefix = "connector_output_"

// Writer stores each result in its own file below dir.
type Writer struct {
	dir string
}

// NewWriter creates a Writer using dir, which is created on first use.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write stores result in a new file named after a KSUID and returns the file path.
// KSUIDs sort by creation time, so the newest handoff file sorts last.
func (w *Writer) Write(result string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o700); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create handoff directory"), "dir", w.dir)
	}

	path := filepath.Join(w.dir, filePrefix+ksuid.New().String()+".txt")
	if err := os.WriteFile(path, []byte(result), 0o600); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to write handoff file"), "path", path)
	}
	return path, nil
}
