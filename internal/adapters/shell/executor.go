// Package shell provides the process executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/connector/internal/core/domain"
	"go.trai.ch/connector/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
	env    []string
}

// NewExecutor creates a new Executor. Entries of env ("KEY=value") are appended
// to the inherited environment of every child process.
func NewExecutor(logger ports.Logger, env ...string) *Executor {
	return &Executor{
		logger: logger,
		env:    env,
	}
}

func (e *Executor) command(ctx context.Context, name string, args []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // user configured command
	if len(e.env) > 0 {
		cmd.Env = append(os.Environ(), e.env...)
	}
	return cmd
}

// Output runs the command and returns what it wrote to stdout.
// Stderr is forwarded to the logger at debug level.
func (e *Executor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout bytes.Buffer
	cmd := e.command(ctx, name, args)
	cmd.Stdout = &stdout
	cmd.Stderr = &logWriter{logger: e.logger, level: domain.LogLevelDebug}

	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), e.wrap(ctx, err, name)
	}
	return stdout.Bytes(), nil
}

// Run runs the command, streaming its output. A nil writer sends that stream to the logger.
func (e *Executor) Run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) error {
	cmd := e.command(ctx, name, args)
	cmd.Stdout = stdout
	if stdout == nil {
		cmd.Stdout = &logWriter{logger: e.logger, level: domain.LogLevelInfo}
	}
	cmd.Stderr = stderr
	if stderr == nil {
		cmd.Stderr = &logWriter{logger: e.logger, level: domain.LogLevelWarn}
	}

	if err := cmd.Run(); err != nil {
		return e.wrap(ctx, err, name)
	}
	return nil
}

func (e *Executor) wrap(ctx context.Context, err error, name string) error {
	// Capture exit code if possible
	exitCode := -1 // Unknown, spawn failure or signal
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	wrapped := zerr.With(zerr.Wrap(err, "command failed"), "command", name)
	wrapped = zerr.With(wrapped, "exit_code", exitCode)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errors.Join(domain.ErrProcess, ctxErr, wrapped)
	}
	return errors.Join(domain.ErrProcess, wrapped)
}

type logWriter struct {
	logger ports.Logger
	level  domain.LogLevel
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	// Splitting by newline keeps one record per line.
	lines := strings.Split(strings.TrimSuffix(string(p), "\n"), "\n")
	for _, line := range lines {
		if line == "" {
			continue
		}
		switch w.level {
		case domain.LogLevelDebug:
			w.logger.Debug(line)
		case domain.LogLevelInfo:
			w.logger.Info(line)
		default:
			w.logger.Warn(line)
		}
	}
	return len(p), nil
}
