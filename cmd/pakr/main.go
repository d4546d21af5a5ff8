// Package main is the entry point for the pakr package manager.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/pakrat/pakr/cmd/pakr/commands"
	"github.com/pakrat/pakr/internal/app"
	"github.com/pakrat/pakr/internal/core/domain"
	_ "github.com/pakrat/pakr/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = components.Telemetry.Close() }()

	cli := commands.New(components.App)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrApplyFailed) {
			// The per-package summary was already printed.
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
