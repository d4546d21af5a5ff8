// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/pakrat/pakr/internal/adapters/config"
	_ "github.com/pakrat/pakr/internal/adapters/git"
	_ "github.com/pakrat/pakr/internal/adapters/lockfile"
	_ "github.com/pakrat/pakr/internal/adapters/logger"
	_ "github.com/pakrat/pakr/internal/adapters/shell"
	_ "github.com/pakrat/pakr/internal/adapters/store"
	_ "github.com/pakrat/pakr/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "github.com/pakrat/pakr/internal/app"
	_ "github.com/pakrat/pakr/internal/engine/installer"
)
