package domain

import "go.trai.ch/zerr"

var (
	// ErrNotFound is returned when a path or the project configuration cannot be located.
	ErrNotFound = zerr.New("not found")

	// ErrIO is returned when a required file cannot be opened or read.
	ErrIO = zerr.New("io failure")

	// ErrProcess is returned when a subprocess cannot be spawned or its output cannot be used.
	ErrProcess = zerr.New("process failure")

	// ErrBuild is returned for any failure while assembling a completion command.
	ErrBuild = zerr.New("failed to build completion command")

	// ErrFileNotFound is returned when the file of a completion request does not exist.
	ErrFileNotFound = zerr.New("file not found")

	// ErrConfigNotFound is returned when no ancestor directory holds both project files.
	ErrConfigNotFound = zerr.New("project configuration not found")

	// ErrTargetProbeFailed is returned when the compiler target triple cannot be determined.
	ErrTargetProbeFailed = zerr.New("failed to determine compiler target")

	// ErrInvalidPosition is returned when a completion request has a line or column below 1.
	ErrInvalidPosition = zerr.New("invalid source position")

	// ErrNoCompletion is returned when the compiler produced no usable completion candidate.
	ErrNoCompletion = zerr.New("no completion available")

	// ErrInvalidSettings is returned when the settings file holds an unusable value.
	ErrInvalidSettings = zerr.New("invalid settings")
)
