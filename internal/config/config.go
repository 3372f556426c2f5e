// Package config loads config.toml. A missing file yields defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"

	"github.com/sadopc/studytrackr/internal/store"
	"github.com/sadopc/studytrackr/internal/streak"
)

const (
	EnvConfigPath = "STUDYTRACKR_CONFIG"
	EnvDBPath     = "STUDYTRACKR_DB"
)

type Config struct {
	Database Database `toml:"database"`
	Log      Log      `toml:"log"`
	Streak   Streak   `toml:"streak"`
}

type Database struct {
	Path string `toml:"path"`
}

type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type Streak struct {
	WindowDays int    `toml:"window_days"`
	WeekStart  string `toml:"week_start"`
}

// DefaultPath returns ~/.config/studytrackr/config.toml, or the value of
// STUDYTRACKR_CONFIG when set.
func DefaultPath() (string, error) {
	if p, ok := os.LookupEnv(EnvConfigPath); ok && strings.TrimSpace(p) != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "studytrackr", "config.toml"), nil
}

// Load reads the file at path. A missing file is not an error.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if p, ok := os.LookupEnv(EnvDBPath); ok && strings.TrimSpace(p) != "" {
		cfg.Database.Path = p
	}
}

func applyDefaults(cfg *Config) error {
	if strings.TrimSpace(cfg.Database.Path) == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("default db path: %w", err)
		}
		cfg.Database.Path = p
	}
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = "info"
	}
	if strings.TrimSpace(cfg.Log.File) == "" {
		cfg.Log.File = filepath.Join(filepath.Dir(cfg.Database.Path), "studytrackr.log")
	}
	if cfg.Streak.WindowDays == 0 {
		cfg.Streak.WindowDays = streak.DefaultWindowDays
	}
	if strings.TrimSpace(cfg.Streak.WeekStart) == "" {
		cfg.Streak.WeekStart = "monday"
	}
	cfg.Streak.WeekStart = strings.ToLower(cfg.Streak.WeekStart)
	return nil
}

func validate(cfg *Config) error {
	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if cfg.Streak.WindowDays < 1 || cfg.Streak.WindowDays > 3660 {
		return fmt.Errorf("streak.window_days must be between 1 and 3660, got %d", cfg.Streak.WindowDays)
	}
	if _, err := ParseWeekStart(cfg.Streak.WeekStart); err != nil {
		return fmt.Errorf("streak.week_start: %w", err)
	}
	return nil
}

// ParseWeekStart accepts "monday" or "sunday".
func ParseWeekStart(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monday":
		return time.Monday, nil
	case "sunday":
		return time.Sunday, nil
	default:
		return time.Monday, fmt.Errorf("want monday or sunday, got %q", s)
	}
}

// WeekStart returns the configured first day of the week.
func (c *Config) WeekStart() time.Weekday {
	d, _ := ParseWeekStart(c.Streak.WeekStart)
	return d
}
