package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Load loads the boxpush configuration.
// Search order: customPath -> ~/.boxpush/config.yaml -> ./configs/config.yaml -> embedded default
//
// Only an explicit customPath reports read or parse errors; the other
// locations are skipped when missing or unreadable.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		return LoadFile(customPath)
	}

	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if cfg, err := LoadFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := LoadFile(filepath.Join("configs", "config.yaml")); err == nil {
		return cfg, nil
	}

	cfg, err := Parse(defaultYAML)
	if err != nil {
		return Default(), nil
	}
	return cfg, nil
}

// LoadFile reads and validates a single config file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".boxpush", filename)
}
