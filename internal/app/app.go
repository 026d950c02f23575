// Package app implements the application layer for connector.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/connector/internal/core/domain"
	"go.trai.ch/connector/internal/core/ports"
	"go.trai.ch/connector/internal/engine/completion"
	"go.trai.ch/connector/internal/engine/project"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	settings  domain.Settings
	fs        ports.Filesystem
	builder   *completion.Builder
	locator   *project.Locator
	executor  ports.Executor
	store     ports.CacheStore
	watcher   ports.Watcher
	handoff   ports.ResultWriter
	telemetry ports.Telemetry
	logger    ports.Logger
}

// New creates a new App instance.
func New(
	settings domain.Settings,
	filesystem ports.Filesystem,
	builder *completion.Builder,
	locator *project.Locator,
	executor ports.Executor,
	store ports.CacheStore,
	watcher ports.Watcher,
	handoff ports.ResultWriter,
	telemetry ports.Telemetry,
	log ports.Logger,
) *App {
	return &App{
		settings:  settings,
		fs:        filesystem,
		builder:   builder,
		locator:   locator,
		executor:  executor,
		store:     store,
		watcher:   watcher,
		handoff:   handoff,
		telemetry: telemetry,
		logger:    log,
	}
}

// Complete returns the source line at the position with the first completion
// candidate substituted into the call being typed.
func (a *App) Complete(ctx context.Context, file string, line, column int) (string, error) {
	// 1. Build the compiler invocation
	cmd, err := a.builder.Build(ctx, file, line, column)
	if err != nil {
		return "", err
	}
	source := cmd.Args[len(cmd.Args)-1]
	a.logger.Debug("running " + cmd.String())

	// 2. Ask the compiler for candidates
	runCtx, cancel := context.WithTimeout(ctx, a.settings.CompleteTimeout)
	defer cancel()

	out, err := a.executor.Output(runCtx, cmd.Name, cmd.Args...)
	if err != nil {
		if len(out) == 0 {
			return "", zerr.Wrap(err, "completion failed")
		}
		// Diagnostics in the edited file make clang exit non-zero while still printing candidates.
		a.logger.Warn(fmt.Sprintf("%s reported errors, using its output: %v", cmd.Name, err))
	}

	// 3. Keep the first candidate
	candidate, ok := completion.First(out)
	if !ok {
		err := zerr.With(zerr.New("compiler returned no function candidates"), "location", fmt.Sprintf("%s:%d:%d", source, line, column))
		return "", errors.Join(domain.ErrNoCompletion, err)
	}

	// 4. Substitute it into the source line
	sourceLine, err := a.readLine(source, line)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("cannot read line %d of %s: %v", line, source, err))
		return candidate, nil
	}
	return completion.Substitute(sourceLine, candidate), nil
}

// Handoff writes result to a fresh handoff file and returns its path.
func (a *App) Handoff(result string) (string, error) {
	path, err := a.handoff.Write(result)
	if err != nil {
		return "", zerr.Wrap(err, "failed to hand off result")
	}
	a.logger.Debug("wrote result to " + path)
	return path, nil
}

// readLine returns line n (1-based) of path without its line terminator.
func (a *App) readLine(path string, n int) (string, error) {
	rc, err := a.fs.Open(path)
	if err != nil {
		return "", err
	}
	defer rc.Close() //nolint:errcheck // Read-only file

	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for i := 1; scanner.Scan(); i++ {
		if i == n {
			return strings.TrimRight(scanner.Text(), "\r"), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", zerr.Wrap(err, "failed to read source")
	}
	return "", zerr.With(zerr.New("line out of range"), "line", n)
}

// IndexOptions configures Index.
type IndexOptions struct {
	// Watch keeps re-indexing the projects as their files change until the context is done.
	Watch bool
	// Stdout and Stderr receive the indexer output in addition to telemetry.
	Stdout io.Writer
	Stderr io.Writer
}

// Index builds the navigation index of the projects holding dirs, in parallel.
func (a *App) Index(ctx context.Context, dirs []string, opts IndexOptions) error {
	// 1. Resolve the projects
	projects, err := a.locateProjects(dirs)
	if err != nil {
		return err
	}

	// 2. Index them
	if err := a.indexAll(ctx, projects, opts); err != nil {
		return err
	}
	if !opts.Watch {
		return nil
	}

	// 3. Re-index on change
	roots := make([]string, 0, len(projects))
	for _, p := range projects {
		roots = append(roots, p.String())
	}
	a.logger.Info(fmt.Sprintf("watching %d project(s) for changes", len(projects)))

	return a.watcher.Watch(ctx, roots, func(paths []string) {
		changed := affected(projects, paths)
		if len(changed) == 0 {
			return
		}
		if err := a.indexAll(ctx, changed, opts); err != nil && ctx.Err() == nil {
			a.logger.Error(err)
		}
	})
}

func (a *App) locateProjects(dirs []string) ([]domain.ProjectDir, error) {
	projects := make([]domain.ProjectDir, 0, len(dirs))
	for _, dir := range dirs {
		p, err := a.locator.Locate(dir)
		if err != nil {
			return nil, errors.Join(domain.ErrConfigNotFound, zerr.With(err, "dir", dir))
		}
		if !slices.Contains(projects, p) {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

func (a *App) indexAll(ctx context.Context, projects []domain.ProjectDir, opts IndexOptions) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, p := range projects {
		g.Go(func() error {
			return a.indexProject(ctx, p, opts)
		})
	}
	return g.Wait()
}

func (a *App) indexProject(ctx context.Context, dir domain.ProjectDir, opts IndexOptions) (err error) {
	ctx, vertex := a.telemetry.Record(ctx, "index "+dir.String())
	defer func() { vertex.Complete(err) }()

	ctx, cancel := context.WithTimeout(ctx, a.settings.IndexTimeout)
	defer cancel()

	stdout := tee(vertex.Stdout(), opts.Stdout)
	stderr := tee(vertex.Stderr(), opts.Stderr)
	if err := a.executor.Run(ctx, stdout, stderr, a.settings.Indexer, "--index", dir.String()); err != nil {
		return zerr.With(zerr.Wrap(err, "indexing failed"), "project", dir.String())
	}

	a.logger.Info("indexed " + dir.String())
	return nil
}

// affected returns the projects containing any of paths.
func affected(projects []domain.ProjectDir, paths []string) []domain.ProjectDir {
	var out []domain.ProjectDir
	for _, p := range projects {
		root := strings.TrimSuffix(p.String(), string(filepath.Separator))
		for _, path := range paths {
			if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func tee(primary, extra io.Writer) io.Writer {
	if extra == nil {
		return primary
	}
	return io.MultiWriter(primary, extra)
}

// Init writes the default project files into dir and returns the paths written.
// Existing files are kept unless force is set.
func (a *App) Init(dir string, force bool) ([]string, error) {
	canonical, err := a.fs.Canonicalize(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve project directory")
	}

	files := []struct {
		name    string
		content string
	}{
		{name: a.settings.MarkerFile, content: domain.DefaultMarkerContent},
		{name: a.settings.FlagsFile, content: domain.DefaultFlagsContent},
	}

	var written []string
	for _, f := range files {
		path := a.fs.Join(canonical, f.name)
		if !force && a.fs.Exists(path) {
			a.logger.Info(fmt.Sprintf("%s already exists, skipping", path))
			continue
		}
		if err := a.fs.WriteFile(path, []byte(f.content)); err != nil {
			return written, errors.Join(domain.ErrIO, zerr.With(err, "path", path))
		}
		written = append(written, path)
	}
	return written, nil
}

// CacheFile returns the location of the persisted cache, empty when records stay in memory.
func (a *App) CacheFile() string {
	return a.settings.CacheFile
}

// CacheRecords returns the persisted project configurations.
func (a *App) CacheRecords() ([]domain.CacheRecord, error) {
	records, err := a.store.List()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read cache store")
	}
	return records, nil
}

// ClearCache removes every persisted project configuration.
func (a *App) ClearCache() error {
	if err := a.store.Clear(); err != nil {
		return zerr.Wrap(err, "failed to clear cache store")
	}
	a.logger.Info("cache cleared")
	return nil
}
