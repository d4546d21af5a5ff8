package ports

import "github.com/pakrat/pakr/internal/core/domain"

// SettingsLoader loads the optional pakr settings file.
//
//go:generate go run go.uber.org/mock/mockgen -source=settings_loader.go -destination=mocks/mock_settings_loader.go -package=mocks
type SettingsLoader interface {
	// Load reads the settings file if present and returns settings with
	// defaults applied. A missing file is not an error.
	Load() (domain.Settings, error)
}
