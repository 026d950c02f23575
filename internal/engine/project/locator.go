// Package project discovers and caches the compile configuration of C/C++ projects.
package project

import (
	"errors"
	"slices"

	"go.trai.ch/connector/internal/core/domain"
	"go.trai.ch/connector/internal/core/ports"
	"go.trai.ch/zerr"
)

// Locator finds the nearest ancestor directory that holds both project files.
type Locator struct {
	fs         ports.Filesystem
	markerFile string
	flagsFile  string
}

// NewLocator creates a Locator searching for markerFile and flagsFile.
func NewLocator(fs ports.Filesystem, markerFile, flagsFile string) *Locator {
	return &Locator{
		fs:         fs,
		markerFile: markerFile,
		flagsFile:  flagsFile,
	}
}

// Locate walks upward from startDir, inclusive, and returns the first directory
// containing both the marker file and the flags file.
//
// The search never descends. A directory that cannot be listed ends the search.
func (l *Locator) Locate(startDir string) (domain.ProjectDir, error) {
	current, err := l.fs.Canonicalize(startDir)
	if err != nil {
		return "", err
	}

	for {
		names, err := l.fs.ListDir(current)
		if err != nil {
			return "", errors.Join(domain.ErrNotFound, zerr.With(err, "start", startDir))
		}
		if slices.Contains(names, l.markerFile) && slices.Contains(names, l.flagsFile) {
			return domain.ProjectDir(current), nil
		}

		parent := l.fs.Parent(current)
		if parent == current {
			err := zerr.With(zerr.New("no ancestor directory holds the project files"), "start", startDir)
			return "", errors.Join(domain.ErrNotFound, err)
		}
		current = parent
	}
}

// Files returns the flags file and marker file paths of a project, in extraction order.
func (l *Locator) Files(dir domain.ProjectDir) (flagsPath, markerPath string) {
	return l.fs.Join(dir.String(), l.flagsFile), l.fs.Join(dir.String(), l.markerFile)
}
