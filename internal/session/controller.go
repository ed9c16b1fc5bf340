// Package session owns the lifetime of the host's windows and of the
// remap engine serving them.
//
// A Controller receives raw key and mouse events from the event thread,
// routes the ones aimed at the host's windows into the current engine,
// and answers the host's key-state queries from the engine's overlay.
// The key map is hot-reloaded: a file watcher marks the engine stale and
// wakes the event thread, which rebuilds the engine and swaps it in.
package session

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/HopIT-Hub/mmaccel/internal/binding"
	"github.com/HopIT-Hub/mmaccel/internal/catalog"
	"github.com/HopIT-Hub/mmaccel/internal/keys"
	"github.com/HopIT-Hub/mmaccel/internal/remap"
	"github.com/HopIT-Hub/mmaccel/internal/watcher"
)

// CatalogFileName is the action catalog inside the config directory.
const CatalogFileName = "mmd_map.json"

// Key-state query results.
const (
	StatePressed  uint16 = 0xff80
	StateReleased uint16 = 0x0000
)

// Host is the remap host plus the window queries the controller needs
// for routing.
type Host interface {
	remap.Host
	// Parent returns the parent of w, or zero.
	Parent(w remap.Window) remap.Window
	// Focus returns the window holding keyboard focus.
	Focus() remap.Window
}

// Waker schedules a call to Controller.Wake on the event thread.
// Wake must be safe to call from any goroutine.
type Waker interface {
	Wake()
}

// WakeFunc adapts a function to Waker.
type WakeFunc func()

// Wake calls f.
func (f WakeFunc) Wake() { f() }

// Options configures a Controller.
type Options struct {
	// Dir holds mmd_map.json and key_map.json.
	Dir    string
	Host   Host
	Waker  Waker
	Logger zerolog.Logger

	KillFocusWithClick bool
}

// Status is a snapshot of the controller state safe to read from any
// goroutine.
type Status struct {
	Attached  bool     `json:"attached"`
	Sub       bool     `json:"sub_attached"`
	Suspended bool     `json:"suspended"`
	Bindings  int      `json:"bindings"`
	Warnings  []string `json:"warnings"`
}

// Controller routes host events into the remap engine.
type Controller struct {
	host       Host
	waker      Waker
	log        zerolog.Logger
	cat        *catalog.Catalog
	keyMapPath string

	engine    atomic.Pointer[remap.Engine]
	stale     atomic.Bool
	suspended atomic.Bool
	killFocus atomic.Bool
	main      atomic.Uintptr
	sub       atomic.Uintptr

	mu      sync.Mutex
	watcher *watcher.Watcher
}

// New loads the catalog and builds the first engine. A missing or
// invalid catalog is an error; a missing or invalid key map falls back
// to the defaults.
func New(opts Options) (*Controller, error) {
	if opts.Host == nil {
		return nil, errors.New("session: nil host")
	}
	if opts.Waker == nil {
		opts.Waker = WakeFunc(func() {})
	}

	cat, err := catalog.Load(filepath.Join(opts.Dir, CatalogFileName))
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	opts.Logger.Info().Int("actions", cat.Len()).Msg("catalog loaded")

	c := &Controller{
		host:       opts.Host,
		waker:      opts.Waker,
		log:        opts.Logger,
		cat:        cat,
		keyMapPath: filepath.Join(opts.Dir, binding.FileName),
	}
	c.killFocus.Store(opts.KillFocusWithClick)
	c.rebuild()
	return c, nil
}

// Catalog returns the action catalog.
func (c *Controller) Catalog() *catalog.Catalog {
	return c.cat
}

// KeyMapPath returns the path of the key map file.
func (c *Controller) KeyMapPath() string {
	return c.keyMapPath
}

// Attach records main as the host's main window and starts watching the
// key map. A watcher failure disables hot reload but is not fatal.
func (c *Controller) Attach(main remap.Window) {
	c.main.Store(uintptr(main))
	c.sub.Store(0)
	c.log.Debug().Uint64("hwnd", uint64(main)).Msg("main window attached")

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.watcher == nil {
		c.watcher = watcher.New(c.keyMapPath, c.onKeyMapChange,
			watcher.WithLogger(c.log.With().Str("component", "watcher").Logger()))
	}
	if err := c.watcher.Start(); err != nil {
		c.log.Warn().Err(err).Msg("key map hot reload unavailable")
	}
}

// Detach forgets the main and sub windows and stops the watcher. It
// returns once the watcher goroutine has exited.
func (c *Controller) Detach() {
	c.mu.Lock()
	w := c.watcher
	c.mu.Unlock()
	if w != nil {
		w.Stop()
	}

	c.main.Store(0)
	c.sub.Store(0)
	c.log.Debug().Msg("main window detached")
}

// AttachSub records w as the host's secondary window.
func (c *Controller) AttachSub(w remap.Window) {
	if c.mainWindow() == 0 {
		return
	}
	c.sub.Store(uintptr(w))
	c.log.Debug().Uint64("hwnd", uint64(w)).Msg("sub window attached")
}

// DetachSub forgets the secondary window if it is w.
func (c *Controller) DetachSub(w remap.Window) {
	if c.sub.CompareAndSwap(uintptr(w), 0) {
		c.log.Debug().Msg("sub window detached")
	}
}

// Main returns the attached main window, or zero.
func (c *Controller) Main() remap.Window {
	return c.mainWindow()
}

// Sub returns the attached secondary window, or zero.
func (c *Controller) Sub() remap.Window {
	return remap.Window(c.sub.Load())
}

// Attached reports whether a main window is attached.
func (c *Controller) Attached() bool {
	return c.mainWindow() != 0
}

// KeyDown handles a key press delivered to target and reports whether
// it was consumed.
func (c *Controller) KeyDown(k keys.Key, target remap.Window) bool {
	main := c.mainWindow()
	if main == 0 || c.suspended.Load() || !c.routes(target, main) {
		return false
	}
	return c.engine.Load().KeyDown(k, main, c.Sub(), target)
}

// KeyUp handles a key release delivered to target. The engine re-scans
// on every release while a main window is attached, wherever focus is,
// so no overlay flag outlives the physical key. It reports whether the
// release ends a consumed Tab press inside the host's windows.
func (c *Controller) KeyUp(k keys.Key, target remap.Window) bool {
	main := c.mainWindow()
	if main == 0 {
		return false
	}
	e := c.engine.Load()
	tabstop := e.TabStop()
	e.KeyUp(k)
	return k == keys.Tab && tabstop && !e.TabStop() && c.routes(target, main)
}

// MouseDown handles a left button press. With kill-focus-with-click
// enabled, a click while a text field of the main window has focus
// hands focus back to the main window.
func (c *Controller) MouseDown() {
	main := c.mainWindow()
	if main == 0 || !c.killFocus.Load() {
		return
	}
	focus := c.host.Focus()
	if focus == 0 || c.host.Parent(focus) != main || !c.host.IsTextEntry(focus) {
		return
	}
	c.host.SetFocus(main)
	c.log.Debug().Msg("kill focus with click")
}

// Wake rebuilds the engine if the key map changed since the last
// rebuild. It must be called on the event thread.
func (c *Controller) Wake() {
	if c.stale.Swap(false) {
		c.rebuild()
	}
}

// Reload schedules a rebuild of the engine on the event thread.
func (c *Controller) Reload() {
	c.stale.Store(true)
	c.waker.Wake()
}

// KeyState answers a host key-state query. ok is false when the engine
// does not override k and the raw state should be used.
func (c *Controller) KeyState(k keys.Key) (state uint16, ok bool) {
	switch c.IsPressed(k) {
	case remap.Pressed:
		return StatePressed, true
	case remap.Released:
		return StateReleased, true
	default:
		return 0, false
	}
}

// IsPressed returns the virtual press state of k.
func (c *Controller) IsPressed(k keys.Key) remap.State {
	if c.suspended.Load() {
		return remap.NotOverridden
	}
	return c.engine.Load().IsPressed(k)
}

// Tracked returns the keys whose press state the engine overrides.
func (c *Controller) Tracked() []keys.Key {
	return c.engine.Load().Tracked()
}

// Suspended reports whether remapping is suspended.
func (c *Controller) Suspended() bool {
	return c.suspended.Load()
}

// SetSuspended turns remapping off or on.
func (c *Controller) SetSuspended(v bool) {
	if c.suspended.Swap(v) != v {
		c.log.Info().Bool("suspended", v).Msg("remapping toggled")
	}
}

// ToggleSuspended flips the suspended state and returns the new value.
func (c *Controller) ToggleSuspended() bool {
	for {
		old := c.suspended.Load()
		if c.suspended.CompareAndSwap(old, !old) {
			c.log.Info().Bool("suspended", !old).Msg("remapping toggled")
			return !old
		}
	}
}

// SetKillFocusWithClick enables or disables kill-focus-with-click.
func (c *Controller) SetKillFocusWithClick(v bool) {
	c.killFocus.Store(v)
}

// Status returns the current state.
func (c *Controller) Status() Status {
	e := c.engine.Load()
	warnings := make([]string, 0, len(e.Warnings()))
	for _, w := range e.Warnings() {
		warnings = append(warnings, w.Error())
	}
	return Status{
		Attached:  c.Attached(),
		Sub:       c.Sub() != 0,
		Suspended: c.Suspended(),
		Bindings:  e.Bindings(),
		Warnings:  warnings,
	}
}

// Close stops the watcher.
func (c *Controller) Close() {
	c.Detach()
}

func (c *Controller) mainWindow() remap.Window {
	return remap.Window(c.main.Load())
}

// routes reports whether an event for target belongs to the host: the
// main or sub window itself, or one of their direct children.
func (c *Controller) routes(target, main remap.Window) bool {
	if target == 0 {
		return false
	}
	sub := c.Sub()
	if target == main || (sub != 0 && target == sub) {
		return true
	}
	parent := c.host.Parent(target)
	return parent == main || (sub != 0 && parent == sub)
}

func (c *Controller) onKeyMapChange(ev fsnotify.Event) {
	c.stale.Store(true)
	c.waker.Wake()
	c.log.Debug().Str("file", ev.Name).Msg("key map changed")
}

func (c *Controller) rebuild() {
	table := binding.LoadOrDefault(c.keyMapPath, c.log)
	e := remap.New(c.cat, table, c.host,
		remap.WithLogger(c.log.With().Str("component", "remap").Logger()))
	c.engine.Store(e)
	c.log.Info().Int("bindings", e.Bindings()).Int("warnings", len(e.Warnings())).Msg("key map loaded")
}
