package project

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.trai.ch/connector/internal/core/domain"
	"go.trai.ch/connector/internal/core/ports"
	"go.trai.ch/zerr"
)

// Cache remembers the include paths and target triple of one project at a time.
//
// A nil entry is the Invalid state. Refresh swaps the whole entry under the write
// lock, so readers observe either the previous or the new value.
type Cache struct {
	fs       ports.Filesystem
	logger   ports.Logger
	maxPaths int

	mu    sync.RWMutex
	entry *domain.CacheEntry
}

// NewCache creates an Invalid cache keeping at most maxPaths include paths.
func NewCache(fs ports.Filesystem, logger ports.Logger, maxPaths int) *Cache {
	return &Cache{
		fs:       fs,
		logger:   logger,
		maxPaths: maxPaths,
	}
}

// IsValidFor reports whether the cache holds the configuration of dir.
// A dir that cannot be canonicalized never matches.
func (c *Cache) IsValidFor(dir string) bool {
	canonical, err := c.fs.Canonicalize(dir)
	if err != nil {
		return false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entry != nil && c.entry.ProjectDir == domain.ProjectDir(canonical)
}

// Refresh replaces the cached value with the configuration of dir.
//
// The previous value is discarded first: if dir cannot be canonicalized or the
// target is empty, the cache is left Invalid and an error is returned.
func (c *Cache) Refresh(dir string, paths []string, target domain.TargetTriple) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entry = nil

	canonical, err := c.fs.Canonicalize(dir)
	if err != nil {
		return err
	}
	if target == "" {
		return errors.Join(domain.ErrTargetProbeFailed, zerr.With(zerr.New("empty target"), "dir", canonical))
	}

	kept := domain.Dedupe(paths)
	if len(kept) > c.maxPaths {
		c.logger.Warn(fmt.Sprintf("project %s has %d include paths, keeping the first %d", canonical, len(kept), c.maxPaths))
		kept = kept[:c.maxPaths]
	}

	c.entry = &domain.CacheEntry{
		ProjectDir:   domain.ProjectDir(canonical),
		IncludePaths: slices.Clip(kept),
		Target:       target.Truncate(),
	}
	return nil
}

// Read returns the cached value. ok is false while the cache is Invalid.
func (c *Cache) Read() (domain.CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot()
}

// Lookup returns the cached value if it belongs to dir, checking and reading under one lock.
func (c *Cache) Lookup(dir string) (domain.CacheEntry, bool) {
	canonical, err := c.fs.Canonicalize(dir)
	if err != nil {
		return domain.CacheEntry{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil || c.entry.ProjectDir != domain.ProjectDir(canonical) {
		return domain.CacheEntry{}, false
	}
	return c.snapshot()
}

// snapshot copies the entry so callers cannot mutate cached state. Callers hold mu.
func (c *Cache) snapshot() (domain.CacheEntry, bool) {
	if c.entry == nil {
		return domain.CacheEntry{}, false
	}
	entry := *c.entry
	entry.IncludePaths = slices.Clone(c.entry.IncludePaths)
	return entry, true
}
