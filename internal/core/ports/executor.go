package ports

import (
	"context"
	"io"
)

// Executor defines the interface for running external programs.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Output runs name with args and returns its standard output.
	//
	// When the program exits with a non-zero status the captured output is
	// still returned together with an error matching domain.ErrProcess.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// Run runs name with args, streaming its output into stdout and stderr.
	Run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) error
}
