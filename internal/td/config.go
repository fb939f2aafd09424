// ABOUTME: Workspace configuration stored as YAML in .taskdep/config.yml.
// ABOUTME: Holds the default actor identity and the default team scope.

package td

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "config.yml"

type Config struct {
	Actor       string `yaml:"actor,omitempty"`
	DefaultTeam string `yaml:"default_team,omitempty"`
}

func configPath(dir string) string {
	return filepath.Join(dir, configFileName)
}

// loadConfig reads the workspace config. A missing file is not an error;
// it just yields the zero config.
func loadConfig(dir string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(configPath(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", configPath(dir), err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", configPath(dir), err)
	}
	return cfg, nil
}

func saveConfig(dir string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(configPath(dir), data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", configPath(dir), err)
	}
	return nil
}
