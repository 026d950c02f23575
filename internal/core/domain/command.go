package domain

import (
	"errors"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"go.trai.ch/zerr"
)

// CompletionRequest is a source position for which completion candidates are wanted.
type CompletionRequest struct {
	File   string
	Line   int
	Column int
}

// Validate checks that the position is addressable.
func (r CompletionRequest) Validate() error {
	if r.File == "" {
		return errors.Join(ErrInvalidPosition, zerr.New("empty file name"))
	}
	if r.Line < 1 || r.Column < 1 {
		err := zerr.With(zerr.New("line and column must be positive"), "line", r.Line)
		return errors.Join(ErrInvalidPosition, zerr.With(err, "column", r.Column))
	}
	return nil
}

// Location renders the position as file:line:column.
func (r CompletionRequest) Location() string {
	return r.File + ":" + strconv.Itoa(r.Line) + ":" + strconv.Itoa(r.Column)
}

// CompletionCommand is a compiler invocation that asks for completions at a position.
type CompletionCommand struct {
	Name string
	Args []string
}

// NewCompletionCommand assembles the clang completion invocation.
// Each include flag line is split into argv words with shell rules.
func NewCompletionCommand(compiler string, target TargetTriple, includeFlags []string, req CompletionRequest) CompletionCommand {
	args := []string{
		"-target", target.String(),
		"-fsyntax-only",
		"-Xclang", "-code-completion-macros",
	}
	for _, flag := range includeFlags {
		args = append(args, SplitFlagLine(flag)...)
	}
	args = append(args,
		"-Xclang", "-code-completion-at="+req.Location(),
		req.File,
	)
	return CompletionCommand{
		Name: compiler,
		Args: args,
	}
}

// String renders the command as a shell-quoted line.
func (c CompletionCommand) String() string {
	return shellquote.Join(append([]string{c.Name}, c.Args...)...)
}

// SplitFlagLine splits one config file line into argv words.
// Lines with unbalanced quotes fall back to whitespace splitting.
func SplitFlagLine(line string) []string {
	words, err := shellquote.Split(line)
	if err != nil {
		return strings.Fields(line)
	}
	return words
}
