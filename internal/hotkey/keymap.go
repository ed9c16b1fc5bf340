// Package hotkey registers the global hotkey that suspends and resumes
// remapping.
package hotkey

import (
	"errors"
	"fmt"
	"strings"

	"github.com/HopIT-Hub/mmaccel/internal/config"
)

// ErrUnsupported is returned by Register on platforms without global
// hotkey support.
var ErrUnsupported = errors.New("global hotkeys not supported on this platform")

// Modifier flags, matching the Windows MOD_* values.
const (
	ModAlt   uint8 = 0x1
	ModCtrl  uint8 = 0x2
	ModShift uint8 = 0x4
	ModSuper uint8 = 0x8
)

// Combo is a parsed hotkey: modifier flags plus a virtual-key code.
type Combo struct {
	Mods []uint8
	Key  uint16
}

// Parse converts a hotkey from the settings file.
func Parse(hk config.HotkeyConfig) (Combo, error) {
	mods, err := ParseModifiers(hk.Modifiers)
	if err != nil {
		return Combo{}, fmt.Errorf("parse modifiers: %w", err)
	}
	key, err := ParseKey(hk.Key)
	if err != nil {
		return Combo{}, fmt.Errorf("parse key: %w", err)
	}
	return Combo{Mods: mods, Key: key}, nil
}

// ParseModifiers converts modifier names to flags.
func ParseModifiers(names []string) ([]uint8, error) {
	var mods []uint8
	for _, name := range names {
		m, ok := modMap[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown modifier: %q (available: ctrl, shift, alt, super)", name)
		}
		mods = append(mods, m)
	}
	return mods, nil
}

// ParseKey converts a key name to a virtual-key code.
func ParseKey(name string) (uint16, error) {
	k, ok := keyMap[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown key: %q", name)
	}
	return k, nil
}

var modMap = map[string]uint8{
	"ctrl":  ModCtrl,
	"shift": ModShift,
	"alt":   ModAlt,
	"super": ModSuper,
}

var keyMap = map[string]uint16{
	"space":  0x20,
	"return": 0x0D,
	"escape": 0x1B,
	"delete": 0x2E,
	"tab":    0x09,
	"left":   0x25,
	"up":     0x26,
	"right":  0x27,
	"down":   0x28,
}

func init() {
	for c := 'a'; c <= 'z'; c++ {
		keyMap[string(c)] = uint16('A' + (c - 'a'))
	}
	for c := '0'; c <= '9'; c++ {
		keyMap[string(c)] = uint16(c)
	}
	for i := 1; i <= 20; i++ {
		keyMap[fmt.Sprintf("f%d", i)] = uint16(0x70 + i - 1)
	}
}
