package project

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"go.trai.ch/connector/internal/core/domain"
	"go.trai.ch/connector/internal/core/ports"
	"go.trai.ch/zerr"
)

const targetPrefix = "Target:"

// TargetProbe asks the compiler for its default target triple.
type TargetProbe struct {
	executor ports.Executor
	compiler string
	timeout  time.Duration
}

// NewTargetProbe creates a probe running compiler --version within timeout.
func NewTargetProbe(executor ports.Executor, compiler string, timeout time.Duration) *TargetProbe {
	return &TargetProbe{
		executor: executor,
		compiler: compiler,
		timeout:  timeout,
	}
}

// Probe runs the compiler and returns the value of its "Target:" line.
func (p *TargetProbe) Probe(ctx context.Context) (domain.TargetTriple, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := p.executor.Output(ctx, p.compiler, "--version")
	if err != nil {
		return "", errors.Join(domain.ErrProcess, zerr.With(err, "compiler", p.compiler))
	}

	target, ok := ParseTarget(out)
	if !ok {
		err := zerr.With(zerr.New("compiler did not report a target"), "compiler", p.compiler)
		return "", errors.Join(domain.ErrProcess, err)
	}
	return target, nil
}

// ParseTarget extracts the triple from the first line starting with "Target:".
func ParseTarget(versionOutput []byte) (domain.TargetTriple, bool) {
	scanner := bufio.NewScanner(bytes.NewReader(versionOutput))
	for scanner.Scan() {
		line := scanner.Text()
		if rest, found := strings.CutPrefix(line, targetPrefix); found {
			target := strings.TrimSpace(rest)
			return domain.TargetTriple(target), target != ""
		}
	}
	return "", false
}
