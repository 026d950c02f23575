package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/connector/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/connector/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/connector/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/connector/internal/adapters/handoff"            //nolint:depguard // Wired in app layer
	"go.trai.ch/connector/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/connector/internal/adapters/shell"              //nolint:depguard // Wired in app layer
	"go.trai.ch/connector/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/connector/internal/adapters/watcher"            //nolint:depguard // Wired in app layer
	"go.trai.ch/connector/internal/core/domain"
	"go.trai.ch/connector/internal/core/ports"
	"go.trai.ch/connector/internal/engine/completion"
	"go.trai.ch/connector/internal/engine/project"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			fs.FilesystemNodeID,
			completion.NodeID,
			project.LocatorNodeID,
			shell.NodeID,
			cas.NodeID,
			watcher.NodeID,
			handoff.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
			config.SettingsNodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	settings, err := graft.Dep[domain.Settings](ctx)
	if err != nil {
		return nil, err
	}

	filesystem, err := graft.Dep[ports.Filesystem](ctx)
	if err != nil {
		return nil, err
	}

	builder, err := graft.Dep[*completion.Builder](ctx)
	if err != nil {
		return nil, err
	}

	locator, err := graft.Dep[*project.Locator](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.CacheStore](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	writer, err := graft.Dep[ports.ResultWriter](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(settings, filesystem, builder, locator, executor, store, w, writer, telemetry, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[domain.Settings](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log, telemetry, settings), nil
}
