package project

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/connector/internal/adapters/config" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/connector/internal/adapters/fs"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/connector/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/connector/internal/adapters/shell"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/connector/internal/core/domain"
	"go.trai.ch/connector/internal/core/ports"
)

const (
	// LocatorNodeID is the unique identifier for the project locator Graft node.
	LocatorNodeID graft.ID = "engine.project.locator"
	// ExtractorNodeID is the unique identifier for the include path extractor Graft node.
	ExtractorNodeID graft.ID = "engine.project.extractor"
	// ProbeNodeID is the unique identifier for the compiler target probe Graft node.
	ProbeNodeID graft.ID = "engine.project.probe"
	// CacheNodeID is the unique identifier for the completion cache Graft node.
	CacheNodeID graft.ID = "engine.project.cache"
)

func init() {
	graft.Register(graft.Node[*Locator]{
		ID:        LocatorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.FilesystemNodeID, config.SettingsNodeID},
		Run: func(ctx context.Context) (*Locator, error) {
			filesystem, err := graft.Dep[ports.Filesystem](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewLocator(filesystem, settings.MarkerFile, settings.FlagsFile), nil
		},
	})

	graft.Register(graft.Node[*Extractor]{
		ID:        ExtractorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.FilesystemNodeID},
		Run: func(ctx context.Context) (*Extractor, error) {
			filesystem, err := graft.Dep[ports.Filesystem](ctx)
			if err != nil {
				return nil, err
			}
			return NewExtractor(filesystem), nil
		},
	})

	graft.Register(graft.Node[*TargetProbe]{
		ID:        ProbeNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, config.SettingsNodeID},
		Run: func(ctx context.Context) (*TargetProbe, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewTargetProbe(executor, settings.Compiler, settings.ProbeTimeout), nil
		},
	})

	graft.Register(graft.Node[*Cache]{
		ID:        CacheNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.FilesystemNodeID, logger.NodeID, config.SettingsNodeID},
		Run: func(ctx context.Context) (*Cache, error) {
			filesystem, err := graft.Dep[ports.Filesystem](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewCache(filesystem, log, settings.MaxIncludePaths), nil
		},
	})
}
