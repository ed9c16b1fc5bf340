package win32

import (
	"github.com/HopIT-Hub/mmaccel/internal/keys"
)

// Keyboard tracks the physical key state from hook events. Left and
// right modifiers are folded into the generic Shift, Ctrl and Alt codes
// and mouse buttons are never recorded, so snapshots match chords
// written with the generic names.
type Keyboard struct {
	raw [256]bool
}

// Generic maps a left/right modifier to its generic code.
func Generic(k keys.Key) keys.Key {
	switch k {
	case keys.LShift, keys.RShift:
		return keys.Shift
	case keys.LControl, keys.RControl:
		return keys.Control
	case keys.LMenu, keys.RMenu:
		return keys.Menu
	default:
		return k
	}
}

// Down records a key press.
func (kb *Keyboard) Down(k keys.Key) {
	if k < 256 {
		kb.raw[k] = true
	}
}

// Up records a key release.
func (kb *Keyboard) Up(k keys.Key) {
	if k < 256 {
		kb.raw[k] = false
	}
}

// Reset marks every key as up.
func (kb *Keyboard) Reset() {
	kb.raw = [256]bool{}
}

// Held returns the raw codes currently down.
func (kb *Keyboard) Held() []keys.Key {
	var held []keys.Key
	for i, down := range kb.raw {
		if down {
			held = append(held, keys.Key(i))
		}
	}
	return held
}

// Snapshot fills s with the generic key state.
func (kb *Keyboard) Snapshot(s *keys.Snapshot) {
	s.Reset()
	for i, down := range kb.raw {
		k := keys.Key(i)
		if !down || k < keys.ReservedBelow {
			continue
		}
		s.Press(Generic(k))
	}
}
