// Package logger implements a logging adapter using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"go.trai.ch/connector/internal/core/domain"
	"go.trai.ch/connector/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Logger = (*Logger)(nil)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
	closer io.Closer
}

// New creates a new Logger writing to stderr at info level.
func New() *Logger {
	return NewWithWriter(os.Stderr, domain.LogLevelInfo)
}

// NewWithWriter creates a Logger writing text records to w.
func NewWithWriter(w io.Writer, level domain.LogLevel) *Logger {
	return &Logger{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.Level(level)})),
	}
}

// NewFromSettings creates a Logger appending to the configured log file, or stderr when none is set.
func NewFromSettings(s domain.Settings) (*Logger, error) {
	level, err := domain.ParseLogLevel(s.LogLevel)
	if err != nil {
		return nil, err
	}
	if s.LogFile == "" {
		return NewWithWriter(os.Stderr, level), nil
	}

	if err := os.MkdirAll(filepath.Dir(s.LogFile), 0o750); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create log directory"), "path", s.LogFile)
	}
	//nolint:gosec // Log path comes from the user's settings
	f, err := os.OpenFile(s.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open log file"), "path", s.LogFile)
	}
	l := NewWithWriter(f, level)
	l.closer = f
	return l, nil
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) {
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.logger.Warn(msg)
}

// Error logs an error message.
func (l *Logger) Error(err error) {
	l.logger.Error("operation failed", "error", err)
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
