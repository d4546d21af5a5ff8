package progrock

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/vito/progrock"
)

// ConsoleWriter renders progrock status updates as plain lines on an output
// stream. It is the non-interactive renderer: one line per finished package
// operation, hook output indented under the package name. Updates may arrive
// from several goroutines at once.
type ConsoleWriter struct {
	mu    sync.Mutex
	out   io.Writer
	names map[string]string
	done  map[string]bool
}

// NewConsoleWriter creates a console renderer writing to out.
func NewConsoleWriter(out io.Writer) *ConsoleWriter {
	return &ConsoleWriter{
		out:   out,
		names: make(map[string]string),
		done:  make(map[string]bool),
	}
}

// WriteStatus renders one status update. Vertexes print once, when they
// complete; log data prints as it arrives.
func (w *ConsoleWriter) WriteStatus(update *progrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, v := range update.Vertexes {
		w.names[v.Id] = v.Name
		if v.Completed == nil || w.done[v.Id] {
			continue
		}
		w.done[v.Id] = true

		switch {
		case v.Error != nil:
			fmt.Fprintf(w.out, "✗ %s: %s\n", v.Name, *v.Error)
		case v.Cached:
			fmt.Fprintf(w.out, "• %s (unchanged)\n", v.Name)
		default:
			fmt.Fprintf(w.out, "✓ %s\n", v.Name)
		}
	}

	for _, l := range update.Logs {
		name := w.names[l.Vertex]
		if name == "" {
			name = l.Vertex
		}
		data := strings.TrimRight(string(l.Data), "\n")
		if data == "" {
			continue
		}
		for _, line := range strings.Split(data, "\n") {
			fmt.Fprintf(w.out, "  %s│ %s\n", name, line)
		}
	}
	return nil
}

// Close implements progrock.Writer. The underlying stream is not owned by
// the renderer and stays open.
func (w *ConsoleWriter) Close() error {
	return nil
}
