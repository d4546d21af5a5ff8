package domain

import "runtime"

// Settings are the operator-tunable knobs read from the settings file.
// Zero values mean "use the default".
type Settings struct {
	// DataDir overrides the platform data directory.
	DataDir string

	// Parallelism bounds the installer worker pool. Defaults to the
	// available hardware parallelism.
	Parallelism int
}

// WithDefaults returns a copy with unset fields resolved to their defaults.
func (s Settings) WithDefaults() (Settings, error) {
	out := s
	if out.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return Settings{}, err
		}
		out.DataDir = dir
	}
	if out.Parallelism <= 0 {
		out.Parallelism = runtime.NumCPU()
	}
	return out, nil
}
