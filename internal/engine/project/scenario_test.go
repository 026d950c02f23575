package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/connector/internal/adapters/fs"
	"go.trai.ch/connector/internal/core/domain"
	"go.trai.ch/connector/internal/engine/project"
)

// TestProjectResolution walks a project from discovery to a valid cache.
func TestProjectResolution(t *testing.T) {
	root := tempRoot(t)
	proj := filepath.Join(root, "proj")
	writeProject(t, proj, "-I/proj/include\n-Iinc/skip\n", "")
	require.NoError(t, os.MkdirAll(filepath.Join(proj, "src"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(proj, "src", "main.c"), nil, 0o600))

	filesystem := fs.NewOS()
	locator := project.NewLocator(filesystem, markerName, flagsName)

	dir, err := locator.Locate(filepath.Join(proj, "src"))
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectDir(proj), dir)

	set, err := project.NewExtractor(filesystem).Extract(locator.Files(dir))
	require.NoError(t, err)
	assert.Equal(t, []string{"-I/proj/include"}, set.Ordered)

	cache, _ := newCache(t, domain.DefaultMaxIncludePaths)
	require.NoError(t, cache.Refresh(dir.String(), set.Ordered, "x86_64-pc-linux-gnu"))
	assert.True(t, cache.IsValidFor(proj))
	assert.False(t, cache.IsValidFor(filepath.Join(root, "other")))
}
