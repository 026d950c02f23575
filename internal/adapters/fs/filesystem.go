package fs

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/connector/internal/core/domain"
	"go.trai.ch/connector/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Filesystem = (*OS)(nil)

const (
	dirPerm  = 0o750
	filePerm = 0o644
)

// OS implements ports.Filesystem on the host operating system.
type OS struct{}

// NewOS creates a new OS filesystem.
func NewOS() *OS {
	return &OS{}
}

// Canonicalize returns the absolute path of path with every symlink resolved.
func (o *OS) Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Join(domain.ErrNotFound, zerr.With(zerr.Wrap(err, "failed to make path absolute"), "path", path))
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Join(domain.ErrNotFound, zerr.With(zerr.Wrap(err, "failed to resolve path"), "path", path))
	}
	return resolved, nil
}

// ListDir returns the names of the entries in dir.
func (o *OS) ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read directory"), "dir", dir)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// Parent returns the directory containing dir. The root is its own parent.
func (o *OS) Parent(dir string) string {
	return filepath.Dir(dir)
}

// Join joins path elements.
func (o *OS) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// Exists reports whether path exists.
func (o *OS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Open opens path for reading.
func (o *OS) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	return f, nil
}

// WriteFile writes data to path, creating parent directories as needed.
func (o *OS) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", path)
	}
	if err := os.WriteFile(path, data, filePerm); err != nil { //nolint:gosec // Config files are meant to be readable
		return zerr.With(zerr.Wrap(err, "failed to write file"), "path", path)
	}
	return nil
}
