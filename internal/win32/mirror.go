package win32

import (
	"github.com/HopIT-Hub/mmaccel/internal/keys"
	"github.com/HopIT-Hub/mmaccel/internal/remap"
)

// Overlay is the virtual key state the mirror replays.
type Overlay interface {
	Tracked() []keys.Key
	IsPressed(k keys.Key) remap.State
}

// Mirror turns overlay changes into synthetic key events. Tab is never
// replayed: its overlay state only exists to keep a Tab press out of a
// text field.
type Mirror struct {
	send func(k keys.Key, down bool)
	sent map[keys.Key]bool
}

// NewMirror returns a mirror that emits events through send.
func NewMirror(send func(k keys.Key, down bool)) *Mirror {
	return &Mirror{send: send, sent: make(map[keys.Key]bool)}
}

// Sync emits a key-down for every tracked key the overlay newly reports
// pressed and a key-up for every key it no longer does.
func (m *Mirror) Sync(o Overlay) {
	tracked := make(map[keys.Key]bool)
	for _, k := range o.Tracked() {
		if k == keys.Tab {
			continue
		}
		tracked[k] = true
		want := o.IsPressed(k) == remap.Pressed
		if want != m.sent[k] {
			m.send(k, want)
			m.sent[k] = want
		}
	}
	// Keys dropped by a key map reload.
	for k, down := range m.sent {
		if down && !tracked[k] {
			m.send(k, false)
			delete(m.sent, k)
		}
	}
}

// ReleaseAll emits a key-up for every key still held down.
func (m *Mirror) ReleaseAll() {
	for k, down := range m.sent {
		if down {
			m.send(k, false)
		}
	}
	clear(m.sent)
}
