// Package remaptest provides an in-memory Host that records every action
// the engine performs.
package remaptest

import (
	"github.com/HopIT-Hub/mmaccel/internal/keys"
	"github.com/HopIT-Hub/mmaccel/internal/remap"
)

// Window is a fake window or control.
type Window struct {
	Handle    remap.Window
	Parent    remap.Window
	ID        uint32
	Class     string
	Visible   bool
	Enabled   bool
	TextEntry bool

	// Combo state.
	Index int
	Count int
}

// MenuItem is a fake menu entry.
type MenuItem struct {
	Cmd     uint32
	Enabled bool
}

// Selection records a SelectCombo call.
type Selection struct {
	Combo remap.Window
	Index int
	Owner remap.Window
	ID    uint32
}

// Command records a PostCommand call.
type Command struct {
	Window remap.Window
	Cmd    uint32
}

// Host is a fake remap.Host.
type Host struct {
	Keys    keys.Snapshot
	Windows map[remap.Window]*Window
	Menus   map[[2]uint32]MenuItem
	Focused remap.Window

	Clicks     []remap.Window
	Focuses    []remap.Window
	Selections []Selection
	Commands   []Command
}

// New returns an empty fake host.
func New() *Host {
	return &Host{
		Windows: make(map[remap.Window]*Window),
		Menus:   make(map[[2]uint32]MenuItem),
	}
}

// AddWindow registers a visible, enabled window.
func (h *Host) AddWindow(handle, parent remap.Window, id uint32) *Window {
	w := &Window{Handle: handle, Parent: parent, ID: id, Visible: true, Enabled: true}
	h.Windows[handle] = w
	return w
}

// AddEdit registers a visible, enabled text-entry control.
func (h *Host) AddEdit(handle, parent remap.Window, id uint32) *Window {
	w := h.AddWindow(handle, parent, id)
	w.Class = "Edit"
	w.TextEntry = true
	return w
}

// Press marks ks as held.
func (h *Host) Press(ks ...keys.Key) {
	for _, k := range ks {
		h.Keys.Press(k)
	}
}

// Release marks ks as up.
func (h *Host) Release(ks ...keys.Key) {
	for _, k := range ks {
		h.Keys.Release(k)
	}
}

// Reset clears every recorded call.
func (h *Host) Reset() {
	h.Clicks = nil
	h.Focuses = nil
	h.Selections = nil
	h.Commands = nil
}

func (h *Host) KeyboardState(s *keys.Snapshot) {
	*s = h.Keys
}

func (h *Host) IsTextEntry(w remap.Window) bool {
	if fw, ok := h.Windows[w]; ok {
		return fw.TextEntry
	}
	return false
}

func (h *Host) Control(parent remap.Window, id uint32) remap.Window {
	for _, w := range h.Windows {
		if w.Parent == parent && w.ID == id {
			return w.Handle
		}
	}
	return 0
}

func (h *Host) IsVisible(w remap.Window) bool {
	fw, ok := h.Windows[w]
	return ok && fw.Visible
}

func (h *Host) IsEnabled(w remap.Window) bool {
	fw, ok := h.Windows[w]
	return ok && fw.Enabled
}

func (h *Host) Click(w remap.Window) {
	h.Clicks = append(h.Clicks, w)
}

func (h *Host) SetFocus(w remap.Window) {
	h.Focused = w
	h.Focuses = append(h.Focuses, w)
}

func (h *Host) ComboSelection(w remap.Window) (int, int) {
	if fw, ok := h.Windows[w]; ok {
		return fw.Index, fw.Count
	}
	return -1, 0
}

func (h *Host) SelectCombo(w remap.Window, index int, owner remap.Window, id uint32) {
	if fw, ok := h.Windows[w]; ok {
		fw.Index = index
	}
	h.Selections = append(h.Selections, Selection{Combo: w, Index: index, Owner: owner, ID: id})
}

func (h *Host) MenuCommand(_ remap.Window, index, item uint32) (uint32, bool, bool) {
	m, ok := h.Menus[[2]uint32{index, item}]
	return m.Cmd, m.Enabled, ok
}

func (h *Host) PostCommand(w remap.Window, cmd uint32) {
	h.Commands = append(h.Commands, Command{Window: w, Cmd: cmd})
}

// Parent returns the parent of w.
func (h *Host) Parent(w remap.Window) remap.Window {
	if fw, ok := h.Windows[w]; ok {
		return fw.Parent
	}
	return 0
}

// Focus returns the window holding input focus.
func (h *Host) Focus() remap.Window {
	return h.Focused
}
