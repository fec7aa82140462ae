// Package prefs persists the opsboard UI preferences that survive restarts:
// the theme and whether the sidebar is collapsed. They live in
// ~/.config/opsboard/prefs.toml, next to the config file.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/opsboard/internal/config"
)

// Prefs holds the persisted UI preferences.
type Prefs struct {
	Theme            string `toml:"theme"`
	SidebarCollapsed bool   `toml:"sidebar_collapsed"`
}

const (
	defaultPrefsPath = "~/.config/opsboard/prefs.toml"
	// DefaultTheme is used when no theme has been saved.
	DefaultTheme = "Slate"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Default returns the preferences of a first run.
func Default() Prefs {
	return Prefs{Theme: DefaultTheme}
}

// Load reads preferences from path (or the default path). Preferences are a
// convenience, so a missing, unreadable or malformed file yields defaults.
func Load(path string) Prefs {
	resolved, err := resolvePath(path)
	if err != nil {
		return Default()
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return Default()
	}

	p := Default()
	if err := toml.Unmarshal(data, &p); err != nil {
		return Default()
	}
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = DefaultTheme
	}
	return p
}

// Save writes p to path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve prefs path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	return config.ExpandPath(path)
}
