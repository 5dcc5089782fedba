package common

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the player configuration file.
type Config struct {
	MusicDir     string        `yaml:"music_dir"`
	Volume       float64       `yaml:"volume"`
	SeekForward  time.Duration `yaml:"seek_forward"`
	SeekBackward time.Duration `yaml:"seek_backward"`
	Shuffle      bool          `yaml:"shuffle"`
	FPS          int           `yaml:"fps"`
	Notify       bool          `yaml:"notify"`
	Watch        bool          `yaml:"watch"`
	Log          LogConfig     `yaml:"log"`
}

// LogConfig controls the rotated log file.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() Config {
	return Config{
		MusicDir:     ".",
		Volume:       1,
		SeekForward:  10 * time.Second,
		SeekBackward: 5 * time.Second,
		FPS:          60,
		Log: LogConfig{
			Level:      "info",
			File:       filepath.Join(StateDir(), "tunes.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// LoadConfigFile loads configuration from a YAML file over the defaults.
// If path is empty, standard locations are searched and a missing file is
// not an error. An explicitly given path must exist.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = FindConfigFile()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.MusicDir = ExpandHome(cfg.MusicDir)
	cfg.Log.File = ExpandHome(cfg.Log.File)

	return cfg, nil
}

// FindConfigFile returns the first existing config file, or "".
func FindConfigFile() string {
	locations := []string{
		"./tunes.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
		filepath.Join(homeDir(), ".tunes.yaml"),
	}

	for _, path := range locations {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" {
		return homeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.MusicDir == "" {
		return fmt.Errorf("music_dir cannot be empty")
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("volume must be between 0.0 and 1.0, got %.2f", c.Volume)
	}
	if c.SeekForward <= 0 {
		return fmt.Errorf("seek_forward must be positive, got %s", c.SeekForward)
	}
	if c.SeekBackward <= 0 {
		return fmt.Errorf("seek_backward must be positive, got %s", c.SeekBackward)
	}
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("fps must be between 1 and 240, got %d", c.FPS)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("log rotation limits cannot be negative")
	}
	return nil
}

// ParseLevel parses debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("unknown log level %q, valid levels: debug, info, warn, error", s)
	}
	return level, nil
}
