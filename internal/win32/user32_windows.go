//go:build windows

package win32

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procAttachThreadInput   = user32.NewProc("AttachThreadInput")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procFindWindowW         = user32.NewProc("FindWindowW")
	procGetAsyncKeyState    = user32.NewProc("GetAsyncKeyState")
	procGetDlgItem          = user32.NewProc("GetDlgItem")
	procGetMenu             = user32.NewProc("GetMenu")
	procGetMenuItemID       = user32.NewProc("GetMenuItemID")
	procGetMenuState        = user32.NewProc("GetMenuState")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procGetParent           = user32.NewProc("GetParent")
	procGetSubMenu          = user32.NewProc("GetSubMenu")
	procIsWindowEnabled     = user32.NewProc("IsWindowEnabled")
	procKillTimer           = user32.NewProc("KillTimer")
	procPostMessageW        = user32.NewProc("PostMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
	procSendInput           = user32.NewProc("SendInput")
	procSendMessageTimeoutW = user32.NewProc("SendMessageTimeoutW")
	procSetFocus            = user32.NewProc("SetFocus")
	procSetTimer            = user32.NewProc("SetTimer")
	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
)

const (
	whKeyboardLL = 13
	whMouseLL    = 14

	wmQuit        = 0x0012
	wmKeyDown     = 0x0100
	wmKeyUp       = 0x0101
	wmSysKeyDown  = 0x0104
	wmSysKeyUp    = 0x0105
	wmCommand     = 0x0111
	wmTimer       = 0x0113
	wmLButtonDown = 0x0201
	wmApp         = 0x8000

	bmClick       = 0x00F5
	cbGetCount    = 0x0146
	cbGetCurSel   = 0x0147
	cbSetCurSel   = 0x014E
	cbnSelChange  = 1
	mfByPosition  = 0x0400
	mfsDisabled   = 0x0003
	menuNotFound  = 0xFFFFFFFF
	smtoAbortHung = 0x0002

	inputKeyboard      = 1
	keyeventfExtended  = 0x0001
	keyeventfKeyUp     = 0x0002
	sendMessageTimeout = 100 // ms
)

type point struct {
	x, y int32
}

type msg struct {
	hwnd    windows.HWND
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      point
	private uint32
}

type kbdllHookStruct struct {
	vkCode    uint32
	scanCode  uint32
	flags     uint32
	time      uint32
	extraInfo uintptr
}

type keybdInput struct {
	vk        uint16
	scan      uint16
	flags     uint32
	time      uint32
	extraInfo uintptr
}

// keyboardInput is INPUT with the union padded to the size of
// MOUSEINPUT.
type keyboardInput struct {
	typ uint32
	ki  keybdInput
	_   [8]byte
}

func findWindow(class string) windows.HWND {
	p, err := windows.UTF16PtrFromString(class)
	if err != nil {
		return 0
	}
	r, _, _ := procFindWindowW.Call(uintptr(unsafe.Pointer(p)), 0)
	return windows.HWND(r)
}

func className(w windows.HWND) string {
	var buf [256]uint16
	n, err := windows.GetClassName(w, &buf[0], int32(len(buf)))
	if err != nil {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

func windowThread(w windows.HWND) uint32 {
	tid, _ := windows.GetWindowThreadProcessId(w, nil)
	return tid
}

// threadFocus returns the focused window of the thread owning w, or w.
func threadFocus(w windows.HWND) windows.HWND {
	info := windows.GUIThreadInfo{}
	info.Size = uint32(unsafe.Sizeof(info))
	if err := windows.GetGUIThreadInfo(windowThread(w), &info); err != nil || info.Focus == 0 {
		return w
	}
	return info.Focus
}

func postMessage(w windows.HWND, m uint32, wParam, lParam uintptr) {
	procPostMessageW.Call(uintptr(w), uintptr(m), wParam, lParam)
}

func sendMessage(w windows.HWND, m uint32, wParam, lParam uintptr) (uintptr, bool) {
	var result uintptr
	r, _, _ := procSendMessageTimeoutW.Call(uintptr(w), uintptr(m), wParam, lParam,
		smtoAbortHung, sendMessageTimeout, uintptr(unsafe.Pointer(&result)))
	return result, r != 0
}

func asyncKeyDown(vk uint32) bool {
	r, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
	return r&0x8000 != 0
}

func extendedKey(vk uint16) bool {
	switch {
	case vk >= 0x21 && vk <= 0x2E: // PageUp..Delete, arrows
		return true
	case vk == 0xA3 || vk == 0xA5: // right Ctrl, right Alt
		return true
	}
	return false
}

func sendKey(vk uint16, down bool) {
	in := keyboardInput{typ: inputKeyboard}
	in.ki.vk = vk
	in.ki.extraInfo = injectedTag
	if extendedKey(vk) {
		in.ki.flags |= keyeventfExtended
	}
	if !down {
		in.ki.flags |= keyeventfKeyUp
	}
	procSendInput.Call(1, uintptr(unsafe.Pointer(&in)), unsafe.Sizeof(in))
}
