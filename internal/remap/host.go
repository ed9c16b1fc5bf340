package remap

import "github.com/HopIT-Hub/mmaccel/internal/keys"

// Window is an OS window handle. Zero means no window.
type Window uintptr

// Host is the engine's view of the host application's UI. Implementations
// must tolerate stale or zero handles; every method is called from the
// event-processing thread only.
type Host interface {
	// KeyboardState fills s with the current keyboard state.
	KeyboardState(s *keys.Snapshot)
	// IsTextEntry reports whether w is a text-entry control.
	IsTextEntry(w Window) bool
	// Control returns the child of parent with the given control id.
	Control(parent Window, id uint32) Window
	IsVisible(w Window) bool
	IsEnabled(w Window) bool
	// Click posts a button-activated notification to w.
	Click(w Window)
	SetFocus(w Window)
	// ComboSelection returns the selected index (-1 for none) and item count.
	ComboSelection(w Window) (index, count int)
	// SelectCombo sets the selected index of w and notifies owner that the
	// selection of control id changed.
	SelectCombo(w Window, index int, owner Window, id uint32)
	// MenuCommand resolves item of top-level menu index of w to its command
	// id. ok is false when the item does not exist.
	MenuCommand(w Window, index, item uint32) (cmd uint32, enabled, ok bool)
	// PostCommand posts a menu command to w.
	PostCommand(w Window, cmd uint32)
}
