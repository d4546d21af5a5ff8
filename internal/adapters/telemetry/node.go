package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/pakrat/pakr/internal/adapters/telemetry/progrock"
	"github.com/pakrat/pakr/internal/core/ports"
)

// NodeID is the unique identifier for the telemetry Graft node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			return progrock.New(), nil
		},
	})
}
