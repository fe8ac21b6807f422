// Package config loads optional project configuration for fgaudit.
//
// Configuration is layered: command-line flags override fgaudit.yaml, which
// overrides environment defaults (optionally loaded from a .env file).
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ProjectConfig mirrors fgaudit.yaml.
type ProjectConfig struct {
	// Roots are the module directories to scan.
	Roots []string `yaml:"roots"`

	// Exclude holds doublestar glob patterns; matching files are skipped.
	Exclude []string `yaml:"exclude"`

	// Out is the export path. A .parquet/.pq suffix selects Parquet,
	// anything else CSV.
	Out string `yaml:"out,omitempty"`

	// NoGit disables repository-status resolution.
	NoGit bool `yaml:"no_git,omitempty"`
}

const ConfigFileName = "fgaudit.yaml"

// Load reads fgaudit.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Environment variables consulted when neither flags nor fgaudit.yaml
// provide a value. A .env file in the working directory is honored when
// the caller loads it first (godotenv).
const (
	EnvRoots = "FGAUDIT_ROOTS"
	EnvOut   = "FGAUDIT_OUT"
)

// RootsFromEnv returns scan roots from FGAUDIT_ROOTS, a comma-separated
// list. Empty entries are dropped.
func RootsFromEnv() []string {
	raw := os.Getenv(EnvRoots)
	if raw == "" {
		return nil
	}
	var roots []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			roots = append(roots, trimmed)
		}
	}
	return roots
}

// OutFromEnv returns the export path from FGAUDIT_OUT, or "".
func OutFromEnv() string {
	return strings.TrimSpace(os.Getenv(EnvOut))
}
