package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// PageSizes holds the fixed page size of each table family.
type PageSizes struct {
	Dashboard int
	Incidents int
	Taxes     int
}

// Config is the opsboard runtime configuration.
type Config struct {
	DatasetPath string
	LogPath     string
	LogLevel    string
	Locale      string
	SubmitDelay time.Duration
	PageSize    PageSizes
}

const (
	defaultConfigPath  = "~/.config/opsboard/config.toml"
	defaultLogPath     = "~/.local/state/opsboard/opsboard.log"
	defaultLogLevel    = "info"
	defaultLocale      = "en"
	defaultSubmitDelay = 600 * time.Millisecond
)

// DefaultPath returns the config path used when none is given.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogPath:     mustExpand(defaultLogPath),
		LogLevel:    defaultLogLevel,
		Locale:      defaultLocale,
		SubmitDelay: defaultSubmitDelay,
		PageSize:    PageSizes{Dashboard: 5, Incidents: 5, Taxes: 10},
	}
}

// Load parses the config at path (or the default path), falling back to
// defaults when the file is missing. Blank or non-positive values keep their
// defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		DatasetPath   string `toml:"dataset_path"`
		LogPath       string `toml:"log_path"`
		LogLevel      string `toml:"log_level"`
		Locale        string `toml:"locale"`
		SubmitDelayMS int    `toml:"submit_delay_ms"`
		PageSize      struct {
			Dashboard int `toml:"dashboard"`
			Incidents int `toml:"incidents"`
			Taxes     int `toml:"taxes"`
		} `toml:"page_size"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if p := strings.TrimSpace(raw.DatasetPath); p != "" {
		cfg.DatasetPath = mustExpand(p)
	}
	if p := strings.TrimSpace(raw.LogPath); p != "" {
		cfg.LogPath = mustExpand(p)
	}
	if s := strings.TrimSpace(raw.LogLevel); s != "" {
		cfg.LogLevel = strings.ToLower(s)
	}
	if s := strings.TrimSpace(raw.Locale); s != "" {
		cfg.Locale = s
	}
	if raw.SubmitDelayMS > 0 {
		cfg.SubmitDelay = time.Duration(raw.SubmitDelayMS) * time.Millisecond
	}
	cfg.PageSize.Dashboard = positiveOr(raw.PageSize.Dashboard, cfg.PageSize.Dashboard)
	cfg.PageSize.Incidents = positiveOr(raw.PageSize.Incidents, cfg.PageSize.Incidents)
	cfg.PageSize.Taxes = positiveOr(raw.PageSize.Taxes, cfg.PageSize.Taxes)

	return cfg, nil
}

func positiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading "~" and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
