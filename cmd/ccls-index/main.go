// Package main is the entry point for the ccls-index tool.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/connector/cmd/ccls-index/commands"
	"go.trai.ch/connector/internal/app"
	"go.trai.ch/connector/internal/terminal"
	_ "go.trai.ch/connector/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		terminal.PrintError(os.Stderr, err)
		return 1
	}
	defer func() {
		_ = components.Close()
	}()

	if err := commands.New(components.App).Execute(ctx); err != nil {
		// Interrupting a watch is the normal way to stop it.
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return 0
		}
		if components.Settings.LogFile != "" {
			components.Logger.Error(err)
		}
		terminal.PrintError(os.Stderr, err)
		return 1
	}
	return 0
}
