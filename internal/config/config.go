// Package config handles loading and saving the MMAccel settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileName is the settings file inside the config directory.
const FileName = "settings.json"

// EnvDir overrides the config directory.
const EnvDir = "MMACCEL_DIR"

// Config holds the application settings.
type Config struct {
	mu   sync.RWMutex `json:"-"`
	path string

	RaiseTimerResolution bool         `json:"raise_timer_resolution"`
	KillFocusWithClick   bool         `json:"kill_focus_with_click"`
	SuspendHotkey        HotkeyConfig `json:"suspend_hotkey"`
	AutoStart            bool         `json:"auto_start"`
	LogLevel             string       `json:"log_level"`
	APIEnabled           bool         `json:"api_enabled"`
}

// HotkeyConfig defines a global hotkey binding.
type HotkeyConfig struct {
	Modifiers []string `json:"modifiers"` // "ctrl", "shift", "alt", "super"
	Key       string   `json:"key"`       // "m", "space", "f5", etc.
}

// String returns a human-readable representation like "Ctrl+Alt+M".
func (h HotkeyConfig) String() string {
	var b strings.Builder
	for _, m := range h.Modifiers {
		switch strings.ToLower(m) {
		case "ctrl":
			b.WriteString("Ctrl+")
		case "shift":
			b.WriteString("Shift+")
		case "alt":
			b.WriteString("Alt+")
		case "super":
			b.WriteString("Super+")
		}
	}
	if len(h.Key) == 1 {
		b.WriteString(strings.ToUpper(h.Key))
	} else {
		b.WriteString(h.Key)
	}
	return b.String()
}

// Clone returns a deep copy of h.
func (h HotkeyConfig) Clone() HotkeyConfig {
	mods := make([]string, len(h.Modifiers))
	copy(mods, h.Modifiers)
	return HotkeyConfig{Modifiers: mods, Key: h.Key}
}

// DefaultConfig returns the default settings.
func DefaultConfig() *Config {
	return &Config{
		RaiseTimerResolution: true,
		KillFocusWithClick:   true,
		SuspendHotkey: HotkeyConfig{
			Modifiers: []string{"ctrl", "alt"},
			Key:       "m",
		},
		LogLevel:   "info",
		APIEnabled: true,
	}
}

// Dir returns the config directory: $MMACCEL_DIR if set, else mmaccel
// under the OS user config directory.
func Dir() (string, error) {
	if d := os.Getenv(EnvDir); d != "" {
		return d, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(base, "mmaccel"), nil
}

// Load reads settings.json from dir. If the file doesn't exist, it
// creates a default one.
func Load(dir string) (*Config, error) {
	p := filepath.Join(dir, FileName)

	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.path = p
		if saveErr := cfg.Save(); saveErr != nil {
			return nil, fmt.Errorf("create default config: %w", saveErr)
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig() // start with defaults so new fields get populated
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.path = p
	return cfg, nil
}

// Path returns the file the config is saved to.
func (c *Config) Path() string {
	return c.path
}

// Save writes the config to disk atomically (write temp, rename).
func (c *Config) Save() error {
	c.mu.RLock()
	data, err := json.MarshalIndent(c, "", "  ")
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

// GetRaiseTimerResolution returns whether the system timer resolution
// is raised while running.
func (c *Config) GetRaiseTimerResolution() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.RaiseTimerResolution
}

// SetRaiseTimerResolution updates the timer resolution setting and saves
// to disk.
func (c *Config) SetRaiseTimerResolution(enabled bool) error {
	c.mu.Lock()
	c.RaiseTimerResolution = enabled
	c.mu.Unlock()
	return c.Save()
}

// GetKillFocusWithClick returns the kill-focus-with-click setting.
func (c *Config) GetKillFocusWithClick() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.KillFocusWithClick
}

// SetKillFocusWithClick updates the kill-focus-with-click setting and
// saves to disk.
func (c *Config) SetKillFocusWithClick(enabled bool) error {
	c.mu.Lock()
	c.KillFocusWithClick = enabled
	c.mu.Unlock()
	return c.Save()
}

// GetSuspendHotkey returns a copy of the suspend hotkey.
func (c *Config) GetSuspendHotkey() HotkeyConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.SuspendHotkey.Clone()
}

// SetSuspendHotkey updates the suspend hotkey and saves to disk.
func (c *Config) SetSuspendHotkey(mods []string, key string) error {
	c.mu.Lock()
	c.SuspendHotkey = HotkeyConfig{Modifiers: mods, Key: key}.Clone()
	c.mu.Unlock()
	return c.Save()
}

// GetAutoStart returns the current auto-start setting.
func (c *Config) GetAutoStart() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AutoStart
}

// SetAutoStart updates the auto-start setting and saves to disk.
func (c *Config) SetAutoStart(enabled bool) error {
	c.mu.Lock()
	c.AutoStart = enabled
	c.mu.Unlock()
	return c.Save()
}

// GetLogLevel returns the configured log level name.
func (c *Config) GetLogLevel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LogLevel
}

// GetAPIEnabled returns whether the local API server is started.
func (c *Config) GetAPIEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.APIEnabled
}
