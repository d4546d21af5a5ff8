// Package config provides the settings loader for pakr.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pakrat/pakr/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// settingsFile represents the structure of the pakr.yaml settings file.
type settingsFile struct {
	DataDir     string `yaml:"data_dir"`
	Parallelism int    `yaml:"parallelism"`
}

// FileSettingsLoader implements ports.SettingsLoader using a YAML file under
// the platform configuration directory. A missing file is not an error; pakr
// runs on defaults.
type FileSettingsLoader struct {
	// Path overrides the settings file location. Empty means the default
	// location under the platform configuration directory.
	Path string
}

// NewLoader creates a settings loader reading from the default location.
func NewLoader() *FileSettingsLoader {
	return &FileSettingsLoader{}
}

// Load reads the settings file and fills unset fields with defaults.
func (l *FileSettingsLoader) Load() (domain.Settings, error) {
	path := l.Path
	if path == "" {
		dataDir, err := domain.DefaultDataDir()
		if err != nil {
			return domain.Settings{}, zerr.Wrap(err, domain.ErrSettingsReadFailed.Error())
		}
		path = filepath.Join(dataDir, domain.SettingsFileName)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Settings{}.WithDefaults()
		}
		return domain.Settings{}, zerr.With(zerr.Wrap(err, domain.ErrSettingsReadFailed.Error()), "path", path)
	}

	var file settingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Settings{}, zerr.With(zerr.Wrap(err, domain.ErrSettingsParseFailed.Error()), "path", path)
	}

	settings := domain.Settings{
		DataDir:     file.DataDir,
		Parallelism: file.Parallelism,
	}
	return settings.WithDefaults()
}
