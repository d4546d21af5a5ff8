package progrock

import (
	"io"

	"github.com/vito/progrock"
)

// Vertex implements ports.Vertex wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

// Stdout returns a writer for output associated with the operation.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Cached marks the operation as requiring no work.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}

// Complete marks the operation as finished.
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}
