package git

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/pakrat/pakr/internal/adapters/logger"
	"github.com/pakrat/pakr/internal/core/ports"
)

// NodeID is the unique identifier for the git source Graft node.
const NodeID graft.ID = "adapter.source"

func init() {
	graft.Register(graft.Node[ports.Source]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Source, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewSource(log), nil
		},
	})
}
