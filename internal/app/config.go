package app

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GraphPath string `yaml:"graph"` // the .hcl graph document
	TypesPath string `yaml:"types"` // node type manifests (.hcl files)

	LogFormat string `yaml:"logFormat"`
	LogLevel  string `yaml:"logLevel"`
}

// NewConfig validates a configuration. GraphPath is the only required
// field.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.GraphPath == "" {
		return nil, errors.New("GraphPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}

// MergeFile overlays values from a YAML config file onto cfg. Fields the
// file leaves empty keep their current values, so CLI flags win over the
// file only when explicitly set after merging.
func MergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.GraphPath == "" {
		cfg.GraphPath = fileCfg.GraphPath
	}
	if cfg.TypesPath == "" {
		cfg.TypesPath = fileCfg.TypesPath
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = fileCfg.LogFormat
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	return nil
}
