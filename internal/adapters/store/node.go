package store

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/pakrat/pakr/internal/adapters/config"
	"github.com/pakrat/pakr/internal/core/domain"
	"github.com/pakrat/pakr/internal/core/ports"
)

// NodeID is the unique identifier for the generation store Graft node.
const NodeID graft.ID = "adapter.store"

func init() {
	graft.Register(graft.Node[ports.GenerationStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.GenerationStore, error) {
			settingsLoader, err := graft.Dep[ports.SettingsLoader](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := settingsLoader.Load()
			if err != nil {
				return nil, err
			}
			return NewStore(domain.GenerationsDir(settings.DataDir))
		},
	})
}
