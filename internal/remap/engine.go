// Package remap turns raw key events into UI actions against the host
// application and keeps the virtual press-state overlay that the host's
// key-state queries see.
//
// An Engine is built from a catalog and a key map and is never patched:
// reloading the key map means building a new Engine. All methods must be
// called from the single event-processing thread.
package remap

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/HopIT-Hub/mmaccel/internal/binding"
	"github.com/HopIT-Hub/mmaccel/internal/catalog"
	"github.com/HopIT-Hub/mmaccel/internal/keys"
)

// State is the virtual press state of a key.
type State int8

const (
	// NotOverridden means the engine has no opinion; use the raw state.
	NotOverridden State = iota
	Released
	Pressed
)

func (s State) String() string {
	switch s {
	case NotOverridden:
		return "not_overridden"
	case Released:
		return "released"
	case Pressed:
		return "pressed"
	default:
		return "unknown"
	}
}

var tabChord = keys.Of(keys.Tab)

// Engine matches chords and dispatches actions.
type Engine struct {
	host     Host
	log      zerolog.Logger
	handlers DispatchMap
	states   map[keys.Key]bool
	folds    []uint32
	unfolds  []uint32
	warnings []error

	tabstop bool
	snap    keys.Snapshot
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// New builds an engine for table resolved through cat. Unknown action
// names are logged and skipped.
func New(cat *catalog.Catalog, table *binding.Table, host Host, opts ...Option) *Engine {
	e := &Engine{
		host:    host,
		log:     zerolog.Nop(),
		states:  make(map[keys.Key]bool),
		folds:   cat.Folds(),
		unfolds: cat.Unfolds(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.handlers, e.warnings = Resolve(cat, table)
	for _, w := range e.warnings {
		e.log.Warn().Err(w).Msg("skipping binding")
	}

	for _, k := range cat.PassKeys() {
		e.states[k] = false
	}
	for _, k := range Modifiers {
		e.states[k] = false
	}
	return e
}

// Warnings returns the bindings skipped while building the engine.
func (e *Engine) Warnings() []error {
	return e.warnings
}

// Bindings returns the number of entries in the dispatch map.
func (e *Engine) Bindings() int {
	return len(e.handlers)
}

// Lookup returns the action bound to c.
func (e *Engine) Lookup(c keys.Chord) (catalog.Action, bool) {
	a, ok := e.handlers[c]
	return a, ok
}

// KeyDown handles a key press delivered to focus. main and sub are the
// host's main and secondary windows; sub may be zero. It reports whether
// the event was consumed and default processing must be suppressed.
func (e *Engine) KeyDown(k keys.Key, main, sub, focus Window) bool {
	e.host.KeyboardState(&e.snap)
	chord := keys.FromSnapshot(&e.snap)
	textEntry := e.host.IsTextEntry(focus)
	e.log.Debug().Stringer("chord", chord).Stringer("key", k).Msg("key_down")

	if textEntry && chord == tabChord {
		e.tabstop = true
		return true
	}

	a, ok := e.handlers[chord]
	if !ok {
		// The snapshot can lag the event that produced it.
		chord = chord.WithExtra(k)
		a, ok = e.handlers[chord]
	}
	if !ok {
		return false
	}

	if textEntry {
		if _, kill := a.(catalog.KillFocus); kill {
			e.host.SetFocus(main)
			e.log.Debug().Msg("KillFocus")
			return true
		}
		return false
	}
	e.dispatch(a, main, sub)
	return true
}

// KeyUp re-scans the keyboard and releases every pass-through key whose
// chord is no longer fully held.
func (e *Engine) KeyUp(k keys.Key) {
	e.host.KeyboardState(&e.snap)
	chord := keys.FromSnapshot(&e.snap)
	e.log.Debug().Stringer("chord", chord).Stringer("key", k).Msg("key_up")

	for c, a := range e.handlers {
		pk, ok := a.(catalog.Key)
		if !ok || c.SubsetOf(chord) {
			continue
		}
		if _, tracked := e.states[pk.Key]; tracked {
			e.states[pk.Key] = false
		}
	}
	if k == keys.Tab && e.tabstop {
		e.tabstop = false
	}
}

// IsPressed returns the virtual press state of k.
func (e *Engine) IsPressed(k keys.Key) State {
	if k < keys.ReservedBelow {
		return NotOverridden
	}
	if k == keys.Tab && e.tabstop {
		return Pressed
	}
	pressed, tracked := e.states[k]
	switch {
	case !tracked:
		return NotOverridden
	case pressed:
		return Pressed
	default:
		return Released
	}
}

// Tracked returns every key with an overlay flag, in ascending order.
func (e *Engine) Tracked() []keys.Key {
	ks := make([]keys.Key, 0, len(e.states))
	for k := range e.states {
		ks = append(ks, k)
	}
	slices.Sort(ks)
	return ks
}

// TabStop reports whether Tab is held inside a text-entry control.
func (e *Engine) TabStop() bool {
	return e.tabstop
}
