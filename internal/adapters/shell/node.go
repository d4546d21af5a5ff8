package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/pakrat/pakr/internal/adapters/logger"
	"github.com/pakrat/pakr/internal/core/ports"
)

// NodeID is the unique identifier for the hook runner Graft node.
const NodeID graft.ID = "adapter.hooks"

func init() {
	graft.Register(graft.Node[ports.HookRunner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.HookRunner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(log), nil
		},
	})
}
