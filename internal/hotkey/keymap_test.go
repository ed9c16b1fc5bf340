package hotkey

import (
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HopIT-Hub/mmaccel/internal/config"
)

func TestParse(t *testing.T) {
	c, err := Parse(config.HotkeyConfig{Modifiers: []string{"Ctrl", "alt"}, Key: "M"})
	require.NoError(t, err)
	assert.Equal(t, []uint8{ModCtrl, ModAlt}, c.Mods)
	assert.Equal(t, uint16('M'), c.Key)
}

func TestParseKey(t *testing.T) {
	tests := map[string]uint16{
		"a":      'A',
		"z":      'Z',
		"0":      '0',
		"9":      '9',
		"f1":     0x70,
		"F12":    0x7B,
		"f20":    0x83,
		"space":  0x20,
		"escape": 0x1B,
		"left":   0x25,
	}
	for name, want := range tests {
		got, err := ParseKey(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseKey("f21")
	assert.Error(t, err)
	_, err = ParseKey("")
	assert.Error(t, err)
}

func TestParseModifiers_Unknown(t *testing.T) {
	_, err := ParseModifiers([]string{"ctrl", "hyper"})
	assert.ErrorContains(t, err, "hyper")

	_, err = Parse(config.HotkeyConfig{Modifiers: []string{"meta"}, Key: "m"})
	assert.Error(t, err)
}

func TestManager_UnsupportedPlatform(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("registers a real hotkey")
	}
	m := NewManager(func() {}, zerolog.Nop())
	err := m.Register(config.HotkeyConfig{Modifiers: []string{"ctrl"}, Key: "m"})
	assert.ErrorIs(t, err, ErrUnsupported)

	_, ok := m.Registered()
	assert.False(t, ok)
	m.Unregister()
}

func TestManager_RejectsBadConfig(t *testing.T) {
	m := NewManager(nil, zerolog.Nop())
	assert.Error(t, m.Register(config.HotkeyConfig{Key: "nope"}))
}
