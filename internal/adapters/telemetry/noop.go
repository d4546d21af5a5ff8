// Package telemetry provides the telemetry Graft node and a no-op
// implementation for tests and quiet mode.
package telemetry

import (
	"context"
	"io"

	"github.com/pakrat/pakr/internal/core/ports"
)

// NoOp is a ports.Telemetry implementation that records nothing.
type NoOp struct{}

// NewNoOp creates a new no-op telemetry recorder.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns a vertex that discards everything.
func (t *NoOp) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, &NoOpVertex{}
}

// Close does nothing.
func (t *NoOp) Close() error { return nil }

// NoOpVertex is a ports.Vertex that discards everything.
type NoOpVertex struct{}

// Stdout returns a writer that discards all output.
func (v *NoOpVertex) Stdout() io.Writer { return io.Discard }

// Cached does nothing.
func (v *NoOpVertex) Cached() {}

// Complete does nothing.
func (v *NoOpVertex) Complete(error) {}
