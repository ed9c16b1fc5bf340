// Package win32 connects the session controller to MikuMikuDance on
// Windows.
//
// A Pump owns one locked OS thread. It installs low-level keyboard and
// mouse hooks, finds the MikuMikuDance windows by class name, feeds hook
// events to the controller and replays the controller's virtual key
// overlay into the host with synthetic input. Every controller call
// happens on that thread.
package win32

import "errors"

// ErrUnsupported is returned on platforms other than Windows.
var ErrUnsupported = errors.New("win32: not supported on this platform")

// Window classes of the MikuMikuDance main and secondary windows.
const (
	MainWindowClass = "Polygon Movie Maker"
	SubWindowClass  = "MicWindow"
)

// injectedTag marks synthetic input sent by the overlay mirror so the
// hooks can pass it through untouched.
const injectedTag uintptr = 0x4D4D4143
