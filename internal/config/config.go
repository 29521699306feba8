// Package config handles reading and writing .bowl/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for .bowl/config.yaml.
type Config struct {
	Version int           `yaml:"version"`
	Game    GameConfig    `yaml:"game"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Cleanup CleanupConfig `yaml:"cleanup"`
}

// GameConfig holds the defaults applied to new games.
type GameConfig struct {
	TurnSeconds int      `yaml:"turn_seconds"`
	MinCards    int      `yaml:"min_cards"`
	TeamNames   []string `yaml:"team_names"`
}

// StorageConfig locates the session database.
type StorageConfig struct {
	Path string `yaml:"path"` // relative to the project root unless absolute
}

// LogConfig controls diagnostics and the game event log.
type LogConfig struct {
	Level  string `yaml:"level"` // zerolog level name
	Events bool   `yaml:"events"`
}

// CleanupConfig controls pruning of old sessions.
type CleanupConfig struct {
	MaxAgeDays int `yaml:"max_age_days"`
}

// Dir is the per-project state directory.
const Dir = ".bowl"

const configFile = "config.yaml"

// Environment variables that override the file.
const (
	EnvTurnSeconds = "BOWL_TURN_SECONDS"
	EnvDB          = "BOWL_DB"
	EnvLogLevel    = "BOWL_LOG_LEVEL"
)

// ReadConfig reads .bowl/config.yaml from the given project directory.
// dir is the project root (not .bowl/ itself).
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, Dir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Load reads the project config, falling back to defaults when the file does
// not exist, then applies environment overrides and validates the result.
func Load(dir string) (*Config, error) {
	cfg, err := ReadConfig(dir)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteConfig writes cfg to .bowl/config.yaml in the given project directory.
// Creates the .bowl/ directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	dirPath := filepath.Join(dir, Dir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dirPath, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Game: GameConfig{
			TurnSeconds: 60,
			MinCards:    10,
			TeamNames:   []string{"Team A", "Team B"},
		},
		Storage: StorageConfig{
			Path: filepath.Join(Dir, "bowl.db"),
		},
		Log: LogConfig{
			Level:  "info",
			Events: true,
		},
		Cleanup: CleanupConfig{
			MaxAgeDays: 30,
		},
	}
}

// ApplyEnv overrides cfg with any BOWL_* variables set in the environment.
func ApplyEnv(cfg *Config) error {
	if v := getenv(EnvTurnSeconds, ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvTurnSeconds, err)
		}
		cfg.Game.TurnSeconds = n
	}
	cfg.Storage.Path = getenv(EnvDB, cfg.Storage.Path)
	cfg.Log.Level = getenv(EnvLogLevel, cfg.Log.Level)
	return nil
}

// Validate rejects settings no game can be played with.
func (c *Config) Validate() error {
	if c.Game.TurnSeconds <= 0 {
		return fmt.Errorf("invalid turn_seconds %d: must be positive", c.Game.TurnSeconds)
	}
	if c.Game.MinCards < 1 {
		return fmt.Errorf("invalid min_cards %d: must be at least 1", c.Game.MinCards)
	}
	if c.Storage.Path == "" {
		return errors.New("storage path is empty")
	}
	return nil
}

// DBPath resolves the storage path against the project root.
func (c *Config) DBPath(dir string) string {
	if filepath.IsAbs(c.Storage.Path) {
		return c.Storage.Path
	}
	return filepath.Join(dir, c.Storage.Path)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
