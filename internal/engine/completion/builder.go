// Package completion builds compiler completion commands and formats their results.
package completion

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.trai.ch/connector/internal/core/domain"
	"go.trai.ch/connector/internal/core/ports"
	"go.trai.ch/connector/internal/engine/project"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Deps holds the collaborators of a Builder.
type Deps struct {
	Filesystem ports.Filesystem
	Locator    *project.Locator
	Extractor  *project.Extractor
	Probe      *project.TargetProbe
	Cache      *project.Cache
	Store      ports.CacheStore
	Hasher     ports.Hasher
	Telemetry  ports.Telemetry
	Logger     ports.Logger
}

// Builder assembles completion commands, resolving project configuration through the cache.
type Builder struct {
	Deps
	compiler string
	group    singleflight.Group
	now      func() time.Time
}

// NewBuilder creates a Builder invoking compiler.
func NewBuilder(deps Deps, compiler string) *Builder {
	return &Builder{
		Deps:     deps,
		compiler: compiler,
		now:      time.Now,
	}
}

// Build returns the completion command for a position in file.
//
// The project of the file is located first and the cache is consulted for that
// project only. Every failure matches domain.ErrBuild.
func (b *Builder) Build(ctx context.Context, file string, line, column int) (domain.CompletionCommand, error) {
	cmd, err := b.build(ctx, file, line, column)
	if err != nil {
		return domain.CompletionCommand{}, errors.Join(domain.ErrBuild, err)
	}
	return cmd, nil
}

func (b *Builder) build(ctx context.Context, file string, line, column int) (domain.CompletionCommand, error) {
	// 1. Validate the request
	req := domain.CompletionRequest{File: file, Line: line, Column: column}
	if err := req.Validate(); err != nil {
		return domain.CompletionCommand{}, err
	}

	// 2. Resolve the file
	if !b.Filesystem.Exists(file) {
		return domain.CompletionCommand{}, errors.Join(domain.ErrFileNotFound, zerr.With(zerr.New("no such file"), "file", file))
	}
	canonical, err := b.Filesystem.Canonicalize(file)
	if err != nil {
		return domain.CompletionCommand{}, errors.Join(domain.ErrFileNotFound, err)
	}
	req.File = canonical

	// 3. Locate the project of the file
	dir, err := b.Locator.Locate(b.Filesystem.Parent(canonical))
	if err != nil {
		return domain.CompletionCommand{}, errors.Join(domain.ErrConfigNotFound, err)
	}

	// 4. Resolve include paths and target
	entry, err := b.Resolve(ctx, dir)
	if err != nil {
		return domain.CompletionCommand{}, err
	}

	flags := slices.Clone(entry.IncludePaths)
	slices.Sort(flags)
	return domain.NewCompletionCommand(b.compiler, entry.Target, flags, req), nil
}

// Resolve returns the include paths and target of a project, from the in-memory cache,
// the persisted store, or a fresh probe and extraction. Concurrent misses for one
// project share a single refresh.
func (b *Builder) Resolve(ctx context.Context, dir domain.ProjectDir) (entry domain.CacheEntry, err error) {
	ctx, vertex := b.Telemetry.Record(ctx, "resolve "+dir.String())
	defer func() { vertex.Complete(err) }()

	if hit, ok := b.Cache.Lookup(dir.String()); ok && usable(hit) {
		vertex.Cached()
		return hit, nil
	}

	v, err, _ := b.group.Do(dir.String(), func() (any, error) {
		return b.refresh(ctx, dir, vertex)
	})
	if err != nil {
		return domain.CacheEntry{}, err
	}
	return v.(domain.CacheEntry), nil //nolint:forcetypeassert // refresh only returns CacheEntry
}

func (b *Builder) refresh(ctx context.Context, dir domain.ProjectDir, vertex ports.Vertex) (domain.CacheEntry, error) {
	flagsPath, markerPath := b.Locator.Files(dir)
	fingerprint := b.fingerprint(dir, flagsPath, markerPath)

	if entry, ok := b.fromStore(dir, fingerprint); ok {
		vertex.Cached()
		return entry, nil
	}

	vertex.Log(domain.LogLevelInfo, "probing "+b.compiler)
	target, err := b.Probe.Probe(ctx)
	if err != nil {
		return domain.CacheEntry{}, errors.Join(domain.ErrTargetProbeFailed, err)
	}

	set, err := b.Extractor.Extract(flagsPath, markerPath)
	if err != nil {
		return domain.CacheEntry{}, err
	}

	if err := b.Cache.Refresh(dir.String(), set.Ordered, target); err != nil {
		return domain.CacheEntry{}, err
	}
	entry, ok := b.Cache.Lookup(dir.String())
	if !ok {
		return domain.CacheEntry{}, errors.Join(domain.ErrIO, zerr.With(zerr.New("cache not valid after refresh"), "dir", dir.String()))
	}

	b.persist(entry, fingerprint)
	return entry, nil
}

// fingerprint digests the configuration files and, when it can be found on PATH, the compiler binary.
// An empty result disables the persisted store for this refresh.
func (b *Builder) fingerprint(dir domain.ProjectDir, flagsPath, markerPath string) string {
	files, err := b.Hasher.Fingerprint(flagsPath, markerPath)
	if err != nil {
		b.Logger.Warn(fmt.Sprintf("cannot fingerprint %s: %v", dir, err))
		return ""
	}
	compiler, err := b.Hasher.Executable(b.compiler)
	if err != nil {
		b.Logger.Debug(fmt.Sprintf("cannot identify %s: %v", b.compiler, err))
		return files
	}
	return files + compiler
}

// fromStore seeds the cache from a persisted record made from the same files by the same compiler.
func (b *Builder) fromStore(dir domain.ProjectDir, fingerprint string) (domain.CacheEntry, bool) {
	if fingerprint == "" {
		return domain.CacheEntry{}, false
	}

	record, err := b.Store.Get(dir)
	if err != nil {
		b.Logger.Warn(fmt.Sprintf("cannot read cache store: %v", err))
		return domain.CacheEntry{}, false
	}
	if record == nil || record.Compiler != b.compiler || record.Fingerprint != fingerprint {
		return domain.CacheEntry{}, false
	}
	if !usable(record.Entry()) {
		return domain.CacheEntry{}, false
	}

	if err := b.Cache.Refresh(record.ProjectDir, record.IncludePaths, domain.TargetTriple(record.Target)); err != nil {
		b.Logger.Warn(fmt.Sprintf("cannot restore cached project %s: %v", dir, err))
		return domain.CacheEntry{}, false
	}
	return b.Cache.Lookup(dir.String())
}

func (b *Builder) persist(entry domain.CacheEntry, fingerprint string) {
	if fingerprint == "" {
		return
	}
	record := domain.CacheRecord{
		ProjectDir:   entry.ProjectDir.String(),
		IncludePaths: entry.IncludePaths,
		Target:       entry.Target.String(),
		Compiler:     b.compiler,
		Fingerprint:  fingerprint,
		Timestamp:    b.now().UTC(),
	}
	if err := b.Store.Put(record); err != nil {
		b.Logger.Warn(fmt.Sprintf("cannot persist cache for %s: %v", entry.ProjectDir, err))
	}
}

// usable reports whether a cache entry can serve a request without a refresh.
func usable(entry domain.CacheEntry) bool {
	return len(entry.IncludePaths) > 0 && entry.Target != ""
}
