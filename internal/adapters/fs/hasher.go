package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/connector/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher fingerprints project configuration files.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// Fingerprint hashes the path and content of each file in order.
func (h *Hasher) Fingerprint(paths ...string) (string, error) {
	digest := xxhash.New()
	for _, path := range paths {
		_, _ = digest.WriteString(path)
		_, _ = digest.Write([]byte{0}) // Separator

		sum, err := h.ComputeFileHash(path)
		if err != nil {
			return "", err
		}
		if err := binary.Write(digest, binary.LittleEndian, sum); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}
	}
	return fmt.Sprintf("%016x", digest.Sum64()), nil
}

// Executable hashes the resolved location, size and modification time of the program name runs.
// The content is not read; compilers are large and the metadata changes on every upgrade.
func (h *Hasher) Executable(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to find executable"), "name", name)
	}
	if path, err = filepath.EvalSymlinks(path); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve executable"), "name", name)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to stat executable"), "path", path)
	}

	digest := xxhash.New()
	_, _ = digest.WriteString(path)
	_, _ = digest.Write([]byte{0})
	if err := binary.Write(digest, binary.LittleEndian, [2]int64{info.Size(), info.ModTime().UnixNano()}); err != nil {
		return "", zerr.Wrap(err, "failed to write executable metadata to digest")
	}
	return fmt.Sprintf("%016x", digest.Sum64()), nil
}
