package progrock_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	pkgprogrock "github.com/pakrat/pakr/internal/adapters/telemetry/progrock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestConsoleWriter_RendersCompletions(t *testing.T) {
	var buf bytes.Buffer
	w := pkgprogrock.NewConsoleWriter(&buf)

	now := timestamppb.New(time.Now())
	cloneErr := "clone failed"
	require.NoError(t, w.WriteStatus(&progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{
			{Id: "1", Name: "telescope.nvim", Completed: now},
			{Id: "2", Name: "plenary.nvim", Completed: now, Cached: true},
			{Id: "3", Name: "broken.nvim", Completed: now, Error: &cloneErr},
			{Id: "4", Name: "still-running.nvim"},
		},
	}))

	out := buf.String()
	assert.Contains(t, out, "✓ telescope.nvim\n")
	assert.Contains(t, out, "• plenary.nvim (unchanged)\n")
	assert.Contains(t, out, "✗ broken.nvim: clone failed\n")
	assert.NotContains(t, out, "still-running.nvim")
}

func TestConsoleWriter_PrintsEachCompletionOnce(t *testing.T) {
	var buf bytes.Buffer
	w := pkgprogrock.NewConsoleWriter(&buf)

	update := &progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{
			{Id: "1", Name: "telescope.nvim", Completed: timestamppb.New(time.Now())},
		},
	}
	require.NoError(t, w.WriteStatus(update))
	require.NoError(t, w.WriteStatus(update))

	assert.Equal(t, 1, strings.Count(buf.String(), "telescope.nvim"))
}

func TestConsoleWriter_IndentsLogsUnderVertexName(t *testing.T) {
	var buf bytes.Buffer
	w := pkgprogrock.NewConsoleWriter(&buf)

	require.NoError(t, w.WriteStatus(&progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{
			{Id: "1", Name: "telescope.nvim"},
		},
		Logs: []*progrock.VertexLog{
			{Vertex: "1", Data: []byte("make: building\nmake: done\n")},
		},
	}))

	out := buf.String()
	assert.Contains(t, out, "  telescope.nvim│ make: building\n")
	assert.Contains(t, out, "  telescope.nvim│ make: done\n")
}

func TestRecorder_RendersThroughConsole(t *testing.T) {
	var buf bytes.Buffer
	rec := pkgprogrock.NewRecorder(pkgprogrock.NewConsoleWriter(&buf))

	_, vertex := rec.Record(context.Background(), "telescope.nvim")
	_, err := vertex.Stdout().Write([]byte("cloning\n"))
	require.NoError(t, err)
	vertex.Complete(nil)
	require.NoError(t, rec.Close())

	out := buf.String()
	assert.Contains(t, out, "cloning")
	assert.Contains(t, out, "✓ telescope.nvim")
}
