package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/connector/internal/adapters/logger"
	"go.trai.ch/connector/internal/core/ports"
)

// NodeID is the unique identifier for the executor Graft node.
const NodeID graft.ID = "adapter.executor"

// childEnv keeps compiler diagnostics, including the "Target:" line, untranslated.
var childEnv = []string{"LC_ALL=C"}

func init() {
	graft.Register(graft.Node[ports.Executor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run:       runExecutorNode,
	})
}

func runExecutorNode(ctx context.Context) (ports.Executor, error) {
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	return NewExecutor(log, childEnv...), nil
}
