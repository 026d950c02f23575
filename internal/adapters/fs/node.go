package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/connector/internal/core/ports"
)

const (
	FilesystemNodeID graft.ID = "adapter.fs.filesystem"
	WalkerNodeID     graft.ID = "adapter.fs.walker"
	HasherNodeID     graft.ID = "adapter.fs.hasher"
)

func init() {
	graft.Register(graft.Node[ports.Filesystem]{
		ID:        FilesystemNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Filesystem, error) {
			return NewOS(), nil
		},
	})

	// Walker Node (concrete type, consumed by the watcher)
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})
}
