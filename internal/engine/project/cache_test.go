package project_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/connector/internal/adapters/fs"
	"go.trai.ch/connector/internal/core/domain"
	"go.trai.ch/connector/internal/core/ports/mocks"
	"go.trai.ch/connector/internal/engine/project"
	"go.uber.org/mock/gomock"
)

func newCache(t *testing.T, maxPaths int) (*project.Cache, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	return project.NewCache(fs.NewOS(), log, maxPaths), log
}

func TestCache_StartsInvalid(t *testing.T) {
	cache, _ := newCache(t, 128)
	root := tempRoot(t)

	_, ok := cache.Read()
	assert.False(t, ok)
	assert.False(t, cache.IsValidFor(root))
}

func TestCache_RefreshThenValid(t *testing.T) {
	cache, _ := newCache(t, 128)
	proj := filepath.Join(tempRoot(t), "proj")
	require.NoError(t, os.MkdirAll(proj, 0o750))

	require.NoError(t, cache.Refresh(proj, []string{"-Ix", "-Iy", "-Ix", "-Iz"}, "x86_64-pc-linux-gnu"))

	assert.True(t, cache.IsValidFor(proj))
	// Idempotent.
	assert.True(t, cache.IsValidFor(proj))
	assert.True(t, cache.IsValidFor(filepath.Join(proj, ".")))

	entry, ok := cache.Read()
	require.True(t, ok)
	assert.Equal(t, domain.ProjectDir(proj), entry.ProjectDir)
	assert.Equal(t, []string{"-Ix", "-Iy", "-Iz"}, entry.IncludePaths)
	assert.Equal(t, domain.TargetTriple("x86_64-pc-linux-gnu"), entry.Target)
}

func TestCache_IsValidFor_OtherDirectory(t *testing.T) {
	cache, _ := newCache(t, 128)
	root := tempRoot(t)
	a := filepath.Join(root, "a")
	b := filepath.Join(root, "b")
	require.NoError(t, os.MkdirAll(a, 0o750))
	require.NoError(t, os.MkdirAll(b, 0o750))

	require.NoError(t, cache.Refresh(a, []string{"-I/a"}, "t"))

	assert.False(t, cache.IsValidFor(b))
	assert.False(t, cache.IsValidFor(filepath.Join(root, "missing")))
}

func TestCache_RefreshReplacesWithoutMerge(t *testing.T) {
	cache, _ := newCache(t, 128)
	root := tempRoot(t)
	a := filepath.Join(root, "a")
	b := filepath.Join(root, "b")
	require.NoError(t, os.MkdirAll(a, 0o750))
	require.NoError(t, os.MkdirAll(b, 0o750))

	require.NoError(t, cache.Refresh(a, []string{"-I/a1", "-I/a2"}, "target-a"))
	require.NoError(t, cache.Refresh(b, []string{"-I/b1"}, "target-b"))

	entry, ok := cache.Read()
	require.True(t, ok)
	assert.Equal(t, domain.ProjectDir(b), entry.ProjectDir)
	assert.Equal(t, []string{"-I/b1"}, entry.IncludePaths)
	assert.Equal(t, domain.TargetTriple("target-b"), entry.Target)
	assert.False(t, cache.IsValidFor(a))
}

func TestCache_FailedRefreshInvalidates(t *testing.T) {
	cache, _ := newCache(t, 128)
	root := tempRoot(t)
	require.NoError(t, cache.Refresh(root, []string{"-I."}, "t"))

	err := cache.Refresh(filepath.Join(root, "missing"), []string{"-I."}, "t")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, ok := cache.Read()
	assert.False(t, ok)
	assert.False(t, cache.IsValidFor(root))
}

func TestCache_EmptyTargetInvalidates(t *testing.T) {
	cache, _ := newCache(t, 128)
	root := tempRoot(t)
	require.NoError(t, cache.Refresh(root, []string{"-I."}, "t"))

	err := cache.Refresh(root, []string{"-I."}, "")

	require.Error(t, err)
	_, ok := cache.Read()
	assert.False(t, ok)
}

func TestCache_EmptyPathsAreValid(t *testing.T) {
	cache, _ := newCache(t, 128)
	root := tempRoot(t)

	require.NoError(t, cache.Refresh(root, nil, "t"))

	entry, ok := cache.Read()
	require.True(t, ok)
	assert.Empty(t, entry.IncludePaths)
}

func TestCache_RefreshTruncates(t *testing.T) {
	cache, log := newCache(t, 128)
	root := tempRoot(t)
	paths := make([]string, 200)
	for i := range paths {
		paths[i] = fmt.Sprintf("-I/inc/%03d", i)
	}
	log.EXPECT().Warn(gomockContains("keeping the first 128"))

	require.NoError(t, cache.Refresh(root, paths, domain.TargetTriple(strings.Repeat("t", domain.MaxTargetLength+1))))

	entry, ok := cache.Read()
	require.True(t, ok)
	assert.Equal(t, paths[:128], entry.IncludePaths)
	assert.Len(t, entry.Target, domain.MaxTargetLength)
}

func TestCache_ReadReturnsCopy(t *testing.T) {
	cache, _ := newCache(t, 128)
	root := tempRoot(t)
	require.NoError(t, cache.Refresh(root, []string{"-I/a"}, "t"))

	entry, _ := cache.Read()
	entry.IncludePaths[0] = "-I/mutated"

	again, _ := cache.Read()
	assert.Equal(t, []string{"-I/a"}, again.IncludePaths)
}

func TestCache_Lookup(t *testing.T) {
	cache, _ := newCache(t, 128)
	root := tempRoot(t)
	other := filepath.Join(root, "other")
	require.NoError(t, os.MkdirAll(other, 0o750))

	_, ok := cache.Lookup(root)
	assert.False(t, ok)

	require.NoError(t, cache.Refresh(root, []string{"-I/a"}, "t"))

	entry, ok := cache.Lookup(root)
	require.True(t, ok)
	assert.Equal(t, domain.ProjectDir(root), entry.ProjectDir)

	_, ok = cache.Lookup(other)
	assert.False(t, ok)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache, _ := newCache(t, 128)
	root := tempRoot(t)
	dirs := []string{filepath.Join(root, "a"), filepath.Join(root, "b")}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(d, 0o750))
	}

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dir := dirs[i%2]
			_ = cache.Refresh(dir, []string{"-I" + dir}, domain.TargetTriple(dir))
			if entry, ok := cache.Read(); ok {
				// A refresh replaces the value as a whole.
				assert.Equal(t, []string{"-I" + entry.ProjectDir.String()}, entry.IncludePaths)
				assert.Equal(t, entry.ProjectDir.String(), entry.Target.String())
			}
		}()
	}
	wg.Wait()
}
