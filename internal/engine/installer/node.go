package installer

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/pakrat/pakr/internal/adapters/git"       //nolint:depguard // Wired in engine wiring
	"github.com/pakrat/pakr/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"github.com/pakrat/pakr/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"github.com/pakrat/pakr/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"github.com/pakrat/pakr/internal/core/ports"
)

// NodeID is the unique identifier for the installer Graft node.
const NodeID graft.ID = "engine.installer"

func init() {
	graft.Register(graft.Node[*Installer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			git.NodeID,
			shell.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Installer, error) {
			source, err := graft.Dep[ports.Source](ctx)
			if err != nil {
				return nil, err
			}

			hooks, err := graft.Dep[ports.HookRunner](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(source, hooks, tel, log), nil
		},
	})
}
