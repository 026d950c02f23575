package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/connector/internal/adapters/config"
	"go.trai.ch/connector/internal/adapters/logger"
	"go.trai.ch/connector/internal/core/domain"
	"go.trai.ch/connector/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the cache store Graft node.
const NodeID graft.ID = "adapter.cache_store"

func init() {
	graft.Register(graft.Node[ports.CacheStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.CacheStore, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			store, err := NewStore(settings.CacheFile)
			if err != nil {
				// The store only saves work; a broken file is replaced on the next write.
				log.Error(zerr.Wrap(err, "ignoring unreadable cache store"))
				return Empty(settings.CacheFile), nil
			}
			return store, nil
		},
	})
}
