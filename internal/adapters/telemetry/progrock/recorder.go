// Package progrock provides the Progrock implementation of the telemetry
// adapter. Each package operation gets its own vertex, so the install batch
// renders as independent per-package progress rather than one merged stream.
package progrock

import (
	"context"
	"os"

	"github.com/opencontainers/go-digest"
	"github.com/pakrat/pakr/internal/core/ports"
	"github.com/vito/progrock"
)

// Recorder implements ports.Telemetry using a progrock tape.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a new Recorder rendering to stderr, so progress and hook
// output stay visible while stdout carries command results.
func New() ports.Telemetry {
	return NewRecorder(NewConsoleWriter(os.Stderr))
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts recording a vertex for one package operation.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	d := digest.FromString(name)
	v := r.rec.Vertex(d, name)
	return ctx, &Vertex{vertex: v}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
