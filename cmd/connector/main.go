// Package main is the entry point for the connector completion tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/connector/cmd/connector/commands"
	"go.trai.ch/connector/internal/app"
	"go.trai.ch/connector/internal/terminal"
	_ "go.trai.ch/connector/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		terminal.PrintError(os.Stderr, err)
		return 1
	}
	defer func() {
		_ = components.Close()
	}()

	// 2. Interface - CLI
	cli := commands.New(components.App)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		if components.Settings.LogFile != "" {
			components.Logger.Error(err)
		}
		terminal.PrintError(os.Stderr, err)
		return 1
	}
	return 0
}
