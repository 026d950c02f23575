package project

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"go.trai.ch/connector/internal/core/domain"
	"go.trai.ch/connector/internal/core/ports"
	"go.trai.ch/zerr"
)

// Extractor collects include-path flags from project configuration files.
type Extractor struct {
	fs ports.Filesystem
}

// NewExtractor creates a new Extractor.
func NewExtractor(fs ports.Filesystem) *Extractor {
	return &Extractor{fs: fs}
}

// Extract reads the files in order and returns their include flags,
// deduplicated in first-seen order together with the sorted view.
// Both files must be readable.
func (e *Extractor) Extract(files ...string) (domain.IncludeSet, error) {
	var candidates []string
	for _, path := range files {
		var err error
		candidates, err = e.collect(path, candidates)
		if err != nil {
			return domain.IncludeSet{}, err
		}
	}
	return domain.NewIncludeSet(candidates), nil
}

// collect appends the include flag lines of one file to candidates.
func (e *Extractor) collect(path string, candidates []string) ([]string, error) {
	rc, err := e.fs.Open(path)
	if err != nil {
		return nil, errors.Join(domain.ErrIO, err)
	}
	defer rc.Close() //nolint:errcheck // Read-only file

	r := bufio.NewReader(rc)
	for {
		line, readErr := r.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, errors.Join(domain.ErrIO, zerr.With(zerr.Wrap(readErr, "failed to read file"), "path", path))
		}

		line = strings.TrimRight(line, "\r\n")
		if len(candidates) < domain.MaxCandidates-1 && domain.IsIncludeFlag(line) {
			candidates = append(candidates, line)
		}

		if readErr != nil {
			return candidates, nil
		}
	}
}
