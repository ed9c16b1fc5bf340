//go:build windows

package win32

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"unsafe"

	"github.com/rs/zerolog"
	"golang.org/x/sys/windows"

	"github.com/HopIT-Hub/mmaccel/internal/keys"
	"github.com/HopIT-Hub/mmaccel/internal/remap"
	"github.com/HopIT-Hub/mmaccel/internal/session"
)

// Supported reports whether the pump can run on this platform.
const Supported = true

// pollInterval is how often the pump looks for the MikuMikuDance
// windows and reconciles missed key releases, in milliseconds.
const pollInterval = 250

// Pump runs the hook thread.
type Pump struct {
	log      zerolog.Logger
	onAttach func(bool)

	kb     Keyboard
	host   *Host
	mirror *Mirror
	ctrl   *session.Controller
	tid    atomic.Uint32
}

// NewPump creates a pump. Run starts it.
func NewPump(opts Options) *Pump {
	p := &Pump{log: opts.Logger, onAttach: opts.OnAttach}
	p.host = &Host{kb: &p.kb}
	p.mirror = NewMirror(func(k keys.Key, down bool) {
		sendKey(uint16(k), down)
	})
	return p
}

// Host returns the host the controller must be built with.
func (p *Pump) Host() session.Host {
	return p.host
}

// Wake asks the pump thread to call the controller's Wake. It is safe
// to call from any goroutine.
func (p *Pump) Wake() {
	if tid := p.tid.Load(); tid != 0 {
		procPostThreadMessageW.Call(uintptr(tid), wmApp, 0, 0)
	}
}

// Run installs the hooks and processes events until ctx is done.
func (p *Pump) Run(ctx context.Context, ctrl *session.Controller) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	p.ctrl = ctrl

	var mod windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &mod); err != nil {
		return fmt.Errorf("module handle: %w", err)
	}

	kbHook, _, err := procSetWindowsHookExW.Call(whKeyboardLL, windows.NewCallback(p.keyboardProc), uintptr(mod), 0)
	if kbHook == 0 {
		return fmt.Errorf("install keyboard hook: %w", err)
	}
	defer procUnhookWindowsHookEx.Call(kbHook)

	msHook, _, err := procSetWindowsHookExW.Call(whMouseLL, windows.NewCallback(p.mouseProc), uintptr(mod), 0)
	if msHook == 0 {
		return fmt.Errorf("install mouse hook: %w", err)
	}
	defer procUnhookWindowsHookEx.Call(msHook)

	// SetTimer also creates the thread's message queue, so thread
	// messages can be posted from here on.
	timer, _, err := procSetTimer.Call(0, 0, pollInterval, 0)
	if timer == 0 {
		return fmt.Errorf("set timer: %w", err)
	}
	defer procKillTimer.Call(0, timer)

	tid := windows.GetCurrentThreadId()
	p.tid.Store(tid)
	defer p.tid.Store(0)

	stop := context.AfterFunc(ctx, func() {
		procPostThreadMessageW.Call(uintptr(tid), wmQuit, 0, 0)
	})
	defer stop()

	p.log.Info().Uint32("thread", tid).Msg("hooks installed")
	p.poll()

	var m msg
	for {
		r, _, err := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(r) {
		case -1:
			p.shutdown()
			return fmt.Errorf("get message: %w", err)
		case 0:
			p.shutdown()
			return nil
		}

		switch m.message {
		case wmApp:
			ctrl.Wake()
			p.sync()
		case wmTimer:
			p.poll()
		}
	}
}

func (p *Pump) shutdown() {
	p.mirror.ReleaseAll()
	if p.ctrl.Attached() {
		p.ctrl.Detach()
	}
	p.log.Info().Msg("hooks removed")
}

func (p *Pump) sync() {
	p.mirror.Sync(p.ctrl)
}

// poll attaches to or detaches from the MikuMikuDance windows and
// releases keys whose key-up the hook missed.
func (p *Pump) poll() {
	main := remap.Window(findWindow(MainWindowClass))
	if cur := p.ctrl.Main(); main != cur {
		if cur != 0 {
			p.mirror.ReleaseAll()
			p.ctrl.Detach()
			p.log.Info().Msg("MikuMikuDance closed")
			p.notify(false)
		}
		if main != 0 {
			p.ctrl.Attach(main)
			p.log.Info().Uint64("hwnd", uint64(main)).Msg("MikuMikuDance found")
			p.notify(true)
		}
	}

	if main != 0 {
		sub := remap.Window(findWindow(SubWindowClass))
		if cur := p.ctrl.Sub(); sub != cur {
			if cur != 0 {
				p.ctrl.DetachSub(cur)
			}
			if sub != 0 {
				p.ctrl.AttachSub(sub)
			}
		}
	}

	released := false
	for _, k := range p.kb.Held() {
		if !asyncKeyDown(uint32(k)) {
			p.kb.Up(k)
			released = true
		}
	}
	if released && main != 0 {
		p.ctrl.KeyUp(0, main)
		p.sync()
	}
}

func (p *Pump) notify(attached bool) {
	if p.onAttach != nil {
		p.onAttach(attached)
	}
}

// target returns the window a keyboard event is delivered to: the focus
// of the foreground thread.
func (p *Pump) target() remap.Window {
	fg := windows.GetForegroundWindow()
	if fg == 0 {
		return 0
	}
	return remap.Window(threadFocus(fg))
}

func (p *Pump) keyboardProc(nCode, wParam, lParam uintptr) uintptr {
	if int32(nCode) < 0 {
		return callNext(nCode, wParam, lParam)
	}
	ev := (*kbdllHookStruct)(unsafe.Pointer(lParam))
	if ev.extraInfo == injectedTag {
		return callNext(nCode, wParam, lParam)
	}

	raw := keys.Key(ev.vkCode)
	k := Generic(raw)
	consumed := false
	switch wParam {
	case wmKeyDown, wmSysKeyDown:
		p.kb.Down(raw)
		consumed = p.ctrl.KeyDown(k, p.target())
	case wmKeyUp, wmSysKeyUp:
		p.kb.Up(raw)
		consumed = p.ctrl.KeyUp(k, p.target())
	}
	p.sync()

	if consumed {
		return 1
	}
	return callNext(nCode, wParam, lParam)
}

func (p *Pump) mouseProc(nCode, wParam, lParam uintptr) uintptr {
	if int32(nCode) >= 0 && wParam == wmLButtonDown {
		fg := remap.Window(windows.GetForegroundWindow())
		if main := p.ctrl.Main(); main != 0 && (fg == main || fg == p.ctrl.Sub()) {
			p.ctrl.MouseDown()
		}
	}
	return callNext(nCode, wParam, lParam)
}

func callNext(nCode, wParam, lParam uintptr) uintptr {
	r, _, _ := procCallNextHookEx.Call(0, nCode, wParam, lParam)
	return r
}

var _ Overlay = (*session.Controller)(nil)
