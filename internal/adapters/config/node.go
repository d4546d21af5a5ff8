package config

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/pakrat/pakr/internal/core/ports"
)

// NodeID is the unique identifier for the settings loader Graft node.
const NodeID graft.ID = "adapter.config"

func init() {
	graft.Register(graft.Node[ports.SettingsLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.SettingsLoader, error) {
			return NewLoader(), nil
		},
	})
}
