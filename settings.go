package pomomo

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type yamlSettings struct {
	WorkSeconds  int `yaml:"work_seconds"`
	BreakSeconds int `yaml:"break_seconds"`
}

// LoadDurations reads timer durations from a YAML file.
// An empty path or a missing file yields the defaults.
func LoadDurations(path string) (Durations, error) {
	durations := DefaultDurations()
	if path == "" {
		return durations, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return durations, nil
		}
		return durations, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(raw, &fileData); err != nil {
		return durations, fmt.Errorf("parse settings yaml: %w", err)
	}

	if fileData.WorkSeconds > 0 {
		durations.Work = fileData.WorkSeconds
	}
	if fileData.BreakSeconds > 0 {
		durations.Break = fileData.BreakSeconds
	}
	return durations, nil
}
