package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Load loads the simulation configuration.
// Search order: customPath -> ~/.railrush/configs/railrush.yaml ->
// ./configs/railrush.yaml -> embedded default.
// Whatever source wins, the result is validated before it is returned.
func Load(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first; a custom path must exist and parse.
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	// Try user config directory. An unparseable file is skipped with a
	// warning so the search can fall through; an invalid one still aborts.
	if userCfgPath := userConfigPath("railrush.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if parseErr := yaml.Unmarshal(data, &cfg); parseErr != nil {
				log.Warn("ignoring unparseable config", "path", userCfgPath, "error", parseErr)
				cfg = Default()
			} else {
				if err := cfg.Validate(); err != nil {
					return cfg, err
				}
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	localCfgPath := filepath.Join("configs", "railrush.yaml")
	if data, err := os.ReadFile(localCfgPath); err == nil {
		if parseErr := yaml.Unmarshal(data, &cfg); parseErr != nil {
			log.Warn("ignoring unparseable config", "path", localCfgPath, "error", parseErr)
			cfg = Default()
		} else {
			if err := cfg.Validate(); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is
// unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".railrush", "configs", filename)
}
