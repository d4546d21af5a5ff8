package ports

import (
	"context"
	"io"
)

// HookRunner executes a package's build hook inside its directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=hook_runner.go -destination=mocks/mock_hook_runner.go -package=mocks
type HookRunner interface {
	// Run executes command in dir, streaming combined output to out.
	Run(ctx context.Context, dir, command string, out io.Writer) error
}
