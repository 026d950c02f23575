// Package ports defines the core interfaces for the application.
package ports

import "io"

// Filesystem abstracts the filesystem capabilities needed to discover project configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type Filesystem interface {
	// Canonicalize returns the absolute, symlink-resolved form of path.
	// Any failure matches domain.ErrNotFound.
	Canonicalize(path string) (string, error)
	// ListDir returns the entry names of dir.
	ListDir(dir string) ([]string, error)
	// Parent returns the parent directory of dir. The root is its own parent.
	Parent(dir string) string
	// Join joins path elements with the platform separator.
	Join(elem ...string) string
	// Exists reports whether path names an existing entry.
	Exists(path string) bool
	// Open opens path for reading.
	Open(path string) (io.ReadCloser, error)
	// WriteFile writes data to path, creating or truncating it.
	WriteFile(path string, data []byte) error
}
