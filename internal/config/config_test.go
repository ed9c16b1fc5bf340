package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CreatesDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "mmaccel")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, cfg.GetRaiseTimerResolution())
	assert.True(t, cfg.GetKillFocusWithClick())
	assert.False(t, cfg.GetAutoStart())
	assert.True(t, cfg.GetAPIEnabled())
	assert.Equal(t, "info", cfg.GetLogLevel())
	assert.Equal(t, "Ctrl+Alt+M", cfg.GetSuspendHotkey().String())

	_, err = os.Stat(filepath.Join(dir, FileName))
	assert.NoError(t, err)
}

func TestLoad_MergesDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"kill_focus_with_click": false}`), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.False(t, cfg.GetKillFocusWithClick())
	assert.True(t, cfg.GetRaiseTimerResolution())
	assert.Equal(t, "m", cfg.GetSuspendHotkey().Key)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{`), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestSettersPersist(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)

	require.NoError(t, cfg.SetRaiseTimerResolution(false))
	require.NoError(t, cfg.SetKillFocusWithClick(false))
	require.NoError(t, cfg.SetAutoStart(true))
	require.NoError(t, cfg.SetSuspendHotkey([]string{"shift", "alt"}, "f9"))

	again, err := Load(dir)
	require.NoError(t, err)
	assert.False(t, again.GetRaiseTimerResolution())
	assert.False(t, again.GetKillFocusWithClick())
	assert.True(t, again.GetAutoStart())
	assert.Equal(t, "Shift+Alt+f9", again.GetSuspendHotkey().String())

	_, err = os.Stat(filepath.Join(dir, FileName+".tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestGetSuspendHotkey_ReturnsCopy(t *testing.T) {
	cfg := DefaultConfig()
	hk := cfg.GetSuspendHotkey()
	hk.Modifiers[0] = "super"
	assert.Equal(t, "ctrl", cfg.GetSuspendHotkey().Modifiers[0])
}

func TestSaveOmitsPath(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.Path())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "suspend_hotkey")
	assert.NotContains(t, raw, "path")
}

func TestDir_Env(t *testing.T) {
	t.Setenv(EnvDir, "/tmp/mmaccel-test")
	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/mmaccel-test", dir)
}

func TestHotkeyConfig_String(t *testing.T) {
	tests := []struct {
		hk   HotkeyConfig
		want string
	}{
		{HotkeyConfig{Modifiers: []string{"ctrl", "alt"}, Key: "m"}, "Ctrl+Alt+M"},
		{HotkeyConfig{Modifiers: []string{"Super"}, Key: "space"}, "Super+space"},
		{HotkeyConfig{Key: "f5"}, "f5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.hk.String())
	}
}
