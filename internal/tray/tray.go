// Package tray manages the system tray icon and menu.
package tray

import (
	"strings"

	"fyne.io/systray"
)

// State is what the tray icon shows.
type State int

const (
	// Waiting means no MikuMikuDance window is attached.
	Waiting State = iota
	Active
	Suspended
)

func (s State) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Active:
		return "active"
	case Suspended:
		return "suspended"
	default:
		return "unknown"
	}
}

// RunOpts configures the system tray.
type RunOpts struct {
	Version string // app version string (e.g., "1.0.0")

	// Initial checkbox states.
	RaiseTimerResolution bool
	KillFocusWithClick   bool
	Suspended            bool
	AutoStartEnabled     bool

	OnReady                func()
	OnKeyConfig            func()
	OnReload               func()
	OnRaiseTimerResolution func(enabled bool)
	OnKillFocusWithClick   func(enabled bool)
	OnSuspend              func(suspended bool)
	OnAutoStart            func(enabled bool) // called when user toggles auto-start
	OnQuit                 func()
}

var (
	statusItem  *systray.MenuItem
	suspendItem *systray.MenuItem
)

// Run starts the system tray. It blocks until Quit is called.
func Run(opts RunOpts) {
	systray.Run(func() {
		systray.SetTitle("")
		systray.SetIcon(IconWaiting)
		systray.SetTooltip(tooltip(Waiting))

		mVersion := systray.AddMenuItem(versionLabel(opts.Version), "")
		mVersion.Disable()
		mStatus := systray.AddMenuItem(statusLabel(Waiting), "")
		mStatus.Disable()

		systray.AddSeparator()

		mKeyConfig := systray.AddMenuItem("Key Config...", "Open key_map.json in the editor")
		mReload := systray.AddMenuItem("Reload Key Map", "Re-read key_map.json")

		systray.AddSeparator()

		mTimer := systray.AddMenuItemCheckbox("Raise Timer Resolution", "Request a 1 ms system timer while running", opts.RaiseTimerResolution)
		mKillFocus := systray.AddMenuItemCheckbox("Kill Focus With Click", "Clicking the main window leaves text fields", opts.KillFocusWithClick)
		mSuspend := systray.AddMenuItemCheckbox("Suspend Remapping", "Pass every key through unchanged", opts.Suspended)
		mAutoStart := systray.AddMenuItemCheckbox("Start on Login", "Launch automatically on login", opts.AutoStartEnabled)

		systray.AddSeparator()

		mQuit := systray.AddMenuItem("Quit", "Exit MMAccel")

		statusItem = mStatus
		suspendItem = mSuspend

		if opts.OnReady != nil {
			opts.OnReady()
		}

		go func() {
			for {
				select {
				case <-mKeyConfig.ClickedCh:
					call(opts.OnKeyConfig)
				case <-mReload.ClickedCh:
					call(opts.OnReload)
				case <-mTimer.ClickedCh:
					toggle(mTimer, opts.OnRaiseTimerResolution)
				case <-mKillFocus.ClickedCh:
					toggle(mKillFocus, opts.OnKillFocusWithClick)
				case <-mSuspend.ClickedCh:
					toggle(mSuspend, opts.OnSuspend)
				case <-mAutoStart.ClickedCh:
					toggle(mAutoStart, opts.OnAutoStart)
				case <-mQuit.ClickedCh:
					call(opts.OnQuit)
					systray.Quit()
					return
				}
			}
		}()
	}, func() {})
}

// SetState updates the tray icon, tooltip and status line.
func SetState(state State) {
	switch state {
	case Active:
		systray.SetIcon(IconActive)
	case Suspended:
		systray.SetIcon(IconSuspended)
	default:
		systray.SetIcon(IconWaiting)
	}
	systray.SetTooltip(tooltip(state))
	if statusItem != nil {
		statusItem.SetTitle(statusLabel(state))
	}
	if suspendItem != nil {
		if state == Suspended {
			suspendItem.Check()
		} else {
			suspendItem.Uncheck()
		}
	}
}

// Quit stops the system tray.
func Quit() {
	systray.Quit()
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// toggle flips a checkbox item and reports the new state to fn.
func toggle(item *systray.MenuItem, fn func(bool)) {
	enabled := !item.Checked()
	if enabled {
		item.Check()
	} else {
		item.Uncheck()
	}
	if fn != nil {
		fn(enabled)
	}
}

func versionLabel(version string) string {
	label := "MMAccel"
	if version != "" && version != "dev" {
		label += " v" + strings.TrimPrefix(version, "v")
	}
	return label
}

func tooltip(state State) string {
	switch state {
	case Active:
		return "MMAccel: remapping"
	case Suspended:
		return "MMAccel: suspended"
	default:
		return "MMAccel: waiting for MikuMikuDance"
	}
}

func statusLabel(state State) string {
	switch state {
	case Active:
		return "Status: Attached"
	case Suspended:
		return "Status: Suspended"
	default:
		return "Status: Waiting"
	}
}
