package ports

import (
	"context"
	"io"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records per-package progress during an install batch.
type Telemetry interface {
	// Record starts recording a vertex for one package operation.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one package operation in flight.
type Vertex interface {
	// Stdout returns a writer for output associated with the operation,
	// such as build hook output.
	Stdout() io.Writer
	// Cached marks the operation as requiring no work.
	Cached()
	// Complete marks the operation as finished, with err nil on success.
	Complete(err error)
}
