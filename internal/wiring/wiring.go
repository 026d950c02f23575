// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/connector/internal/adapters/cas"
	_ "go.trai.ch/connector/internal/adapters/config"
	_ "go.trai.ch/connector/internal/adapters/fs"
	_ "go.trai.ch/connector/internal/adapters/handoff"
	_ "go.trai.ch/connector/internal/adapters/logger"
	_ "go.trai.ch/connector/internal/adapters/shell"
	_ "go.trai.ch/connector/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/connector/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/connector/internal/app"
	_ "go.trai.ch/connector/internal/engine/completion"
	_ "go.trai.ch/connector/internal/engine/project"
)
