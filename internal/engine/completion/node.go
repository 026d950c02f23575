package completion

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/connector/internal/adapters/cas"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/connector/internal/adapters/config"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/connector/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/connector/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/connector/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/connector/internal/core/domain"
	"go.trai.ch/connector/internal/core/ports"
	"go.trai.ch/connector/internal/engine/project"
)

// NodeID is the unique identifier for the completion command builder Graft node.
const NodeID graft.ID = "engine.completion.builder"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.FilesystemNodeID,
			fs.HasherNodeID,
			project.LocatorNodeID,
			project.ExtractorNodeID,
			project.ProbeNodeID,
			project.CacheNodeID,
			cas.NodeID,
			progrock.NodeID,
			logger.NodeID,
			config.SettingsNodeID,
		},
		Run: runBuilderNode,
	})
}

func runBuilderNode(ctx context.Context) (*Builder, error) {
	var deps Deps
	var err error

	if deps.Filesystem, err = graft.Dep[ports.Filesystem](ctx); err != nil {
		return nil, err
	}
	if deps.Hasher, err = graft.Dep[ports.Hasher](ctx); err != nil {
		return nil, err
	}
	if deps.Locator, err = graft.Dep[*project.Locator](ctx); err != nil {
		return nil, err
	}
	if deps.Extractor, err = graft.Dep[*project.Extractor](ctx); err != nil {
		return nil, err
	}
	if deps.Probe, err = graft.Dep[*project.TargetProbe](ctx); err != nil {
		return nil, err
	}
	if deps.Cache, err = graft.Dep[*project.Cache](ctx); err != nil {
		return nil, err
	}
	if deps.Store, err = graft.Dep[ports.CacheStore](ctx); err != nil {
		return nil, err
	}
	if deps.Telemetry, err = graft.Dep[ports.Telemetry](ctx); err != nil {
		return nil, err
	}
	if deps.Logger, err = graft.Dep[ports.Logger](ctx); err != nil {
		return nil, err
	}
	settings, err := graft.Dep[domain.Settings](ctx)
	if err != nil {
		return nil, err
	}

	return NewBuilder(deps, settings.Compiler), nil
}
