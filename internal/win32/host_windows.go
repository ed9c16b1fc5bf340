//go:build windows

package win32

import (
	"strings"

	"golang.org/x/sys/windows"

	"github.com/HopIT-Hub/mmaccel/internal/keys"
	"github.com/HopIT-Hub/mmaccel/internal/remap"
)

// Host drives MikuMikuDance's controls from another process. It
// implements session.Host.
type Host struct {
	kb *Keyboard
}

func hwnd(w remap.Window) windows.HWND { return windows.HWND(w) }

// KeyboardState fills s from the hook-tracked physical key state.
func (h *Host) KeyboardState(s *keys.Snapshot) {
	h.kb.Snapshot(s)
}

// IsTextEntry reports whether w is an Edit control.
func (h *Host) IsTextEntry(w remap.Window) bool {
	return w != 0 && strings.EqualFold(className(hwnd(w)), "Edit")
}

// Control returns the child of parent with the given control id, or zero.
func (h *Host) Control(parent remap.Window, id uint32) remap.Window {
	if parent == 0 {
		return 0
	}
	r, _, _ := procGetDlgItem.Call(uintptr(parent), uintptr(id))
	return remap.Window(r)
}

// IsVisible reports whether w is shown.
func (h *Host) IsVisible(w remap.Window) bool {
	return w != 0 && windows.IsWindowVisible(hwnd(w))
}

// IsEnabled reports whether w accepts input.
func (h *Host) IsEnabled(w remap.Window) bool {
	if w == 0 {
		return false
	}
	r, _, _ := procIsWindowEnabled.Call(uintptr(w))
	return r != 0
}

// Click posts a button click to w.
func (h *Host) Click(w remap.Window) {
	postMessage(hwnd(w), bmClick, 0, 0)
}

// SetFocus moves keyboard focus to w. Focus belongs to the input state
// of w's thread, so the calling thread joins it for the duration.
func (h *Host) SetFocus(w remap.Window) {
	self := windows.GetCurrentThreadId()
	target := windowThread(hwnd(w))
	if target != 0 && target != self {
		procAttachThreadInput.Call(uintptr(self), uintptr(target), 1)
		defer procAttachThreadInput.Call(uintptr(self), uintptr(target), 0)
	}
	procSetFocus.Call(uintptr(w))
}

// ComboSelection returns the selected index and item count of combo box
// w, or -1 when w does not answer.
func (h *Host) ComboSelection(w remap.Window) (index, count int) {
	cur, ok := sendMessage(hwnd(w), cbGetCurSel, 0, 0)
	if !ok {
		return -1, 0
	}
	n, ok := sendMessage(hwnd(w), cbGetCount, 0, 0)
	if !ok {
		return -1, 0
	}
	return int(int32(cur)), int(int32(n))
}

// SelectCombo selects index in combo box w and notifies owner as if the
// user had picked it.
func (h *Host) SelectCombo(w remap.Window, index int, owner remap.Window, id uint32) {
	postMessage(hwnd(w), cbSetCurSel, uintptr(index), 0)
	postMessage(hwnd(owner), wmCommand, uintptr(id&0xFFFF|cbnSelChange<<16), uintptr(w))
}

// MenuCommand resolves item of submenu index in w's menu bar to its
// command id.
func (h *Host) MenuCommand(w remap.Window, index, item uint32) (cmd uint32, enabled, ok bool) {
	menu, _, _ := procGetMenu.Call(uintptr(w))
	if menu == 0 {
		return 0, false, false
	}
	sub, _, _ := procGetSubMenu.Call(menu, uintptr(index))
	if sub == 0 {
		return 0, false, false
	}
	state, _, _ := procGetMenuState.Call(sub, uintptr(item), mfByPosition)
	if uint32(state) == menuNotFound {
		return 0, false, false
	}
	id, _, _ := procGetMenuItemID.Call(sub, uintptr(item))
	if uint32(id) == menuNotFound {
		return 0, false, false
	}
	return uint32(id), uint32(state)&mfsDisabled == 0, true
}

// PostCommand posts a WM_COMMAND with cmd to w.
func (h *Host) PostCommand(w remap.Window, cmd uint32) {
	postMessage(hwnd(w), wmCommand, uintptr(cmd), 0)
}

// Parent returns the parent of w, or zero.
func (h *Host) Parent(w remap.Window) remap.Window {
	r, _, _ := procGetParent.Call(uintptr(w))
	return remap.Window(r)
}

// Focus returns the focused window of the foreground thread.
func (h *Host) Focus() remap.Window {
	fg := windows.GetForegroundWindow()
	if fg == 0 {
		return 0
	}
	return remap.Window(threadFocus(fg))
}
