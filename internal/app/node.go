package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/pakrat/pakr/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"github.com/pakrat/pakr/internal/adapters/lockfile"  //nolint:depguard // Wired in app layer
	"github.com/pakrat/pakr/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"github.com/pakrat/pakr/internal/adapters/store"     //nolint:depguard // Wired in app layer
	"github.com/pakrat/pakr/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"github.com/pakrat/pakr/internal/core/ports"
	"github.com/pakrat/pakr/internal/engine/installer"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			lockfile.NodeID,
			store.NodeID,
			installer.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			settings, err := graft.Dep[ports.SettingsLoader](ctx)
			if err != nil {
				return nil, err
			}

			lockfiles, err := graft.Dep[ports.LockfileLoader](ctx)
			if err != nil {
				return nil, err
			}

			generations, err := graft.Dep[ports.GenerationStore](ctx)
			if err != nil {
				return nil, err
			}

			ins, err := graft.Dep[*installer.Installer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(settings, lockfiles, generations, ins, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       application,
		Logger:    log,
		Telemetry: tel,
	}, nil
}
