package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// appDir is the per-user directory holding settings, save data and logs.
const appDir = ".flappy-lite"

// UserDir returns ~/.flappy-lite, or ".flappy-lite" in the working
// directory if the home directory is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return appDir
	}
	return filepath.Join(home, appDir)
}

// UserPath joins name onto UserDir.
func UserPath(name string) string {
	return filepath.Join(UserDir(), name)
}

// LoadTuning loads the game constants.
// Search order: customPath -> ~/.flappy-lite/configs/tuning.yaml -> ./configs/tuning.yaml -> embedded default
func LoadTuning(customPath string) (Tuning, error) {
	var cfg Tuning

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg = DefaultTuning()
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if data, err := os.ReadFile(UserPath(filepath.Join("configs", "tuning.yaml"))); err == nil {
		cfg = DefaultTuning()
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/tuning.yaml"); err == nil {
		cfg = DefaultTuning()
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg = Tuning{}
	if err := yaml.Unmarshal(defaultTuningYAML, &cfg); err != nil {
		return DefaultTuning(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadSettings reads the settings file at path. JSON and YAML are both
// accepted. If the file is missing or unreadable the defaults are returned
// and written to path; the returned error then only reports a failed write,
// and the settings are still usable.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		s := DefaultSettings()
		if err = yaml.Unmarshal(data, &s); err == nil {
			s.fillEmpty()
			return s, nil
		}
	}

	s := DefaultSettings()
	if werr := SaveSettings(path, s); werr != nil {
		return s, werr
	}
	return s, nil
}

// SaveSettings writes s to path, as indented JSON for a .json file and as
// YAML otherwise. Missing directories are created.
func SaveSettings(path string, s Settings) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(s, "", "  ")
	} else {
		data, err = yaml.Marshal(s)
	}
	if err != nil {
		return fmt.Errorf("config: encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create settings dir: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("config: write settings %s: %w", path, err)
	}
	return nil
}
