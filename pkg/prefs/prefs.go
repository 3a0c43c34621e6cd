// Package prefs persists display preferences between sessions.
//
// Preferences live in a small TOML file (the CLI keeps it at
// ~/.config/repodash/prefs.toml):
//
//	theme = "dark"
//
// A missing file means "no preference"; callers fall back to detecting the
// terminal background.
package prefs

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Theme is the dark/light display choice.
type Theme string

const (
	ThemeUnset Theme = ""
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Prefs is the preference file content.
type Prefs struct {
	Theme Theme `toml:"theme,omitempty"`
}

// Dark resolves the theme, using fallback when no theme is stored.
func (p Prefs) Dark(fallback bool) bool {
	switch p.Theme {
	case ThemeDark:
		return true
	case ThemeLight:
		return false
	default:
		return fallback
	}
}

// Toggle flips the theme. An unset theme flips away from current.
func (p *Prefs) Toggle(current bool) {
	if current {
		p.Theme = ThemeLight
	} else {
		p.Theme = ThemeDark
	}
}

// Load reads preferences from path. A missing file yields zero Prefs.
func Load(path string) (Prefs, error) {
	var p Prefs
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, err
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return Prefs{}, fmt.Errorf("parse %s: %w", path, err)
	}
	switch p.Theme {
	case ThemeUnset, ThemeDark, ThemeLight:
	default:
		return Prefs{}, fmt.Errorf("parse %s: unknown theme %q", path, p.Theme)
	}
	return p, nil
}

// Save writes p to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(p); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
