package remap

import (
	"github.com/HopIT-Hub/mmaccel/internal/catalog"
	"github.com/HopIT-Hub/mmaccel/internal/keys"
)

func (e *Engine) dispatch(a catalog.Action, main, sub Window) {
	switch a := a.(type) {
	case catalog.Key:
		e.press(a.Key)
	case catalog.Button:
		if w, _ := e.control(main, sub, a.ID); w != 0 {
			e.host.Click(w)
			e.log.Debug().Uint32("id", a.ID).Msg("Button")
		}
	case catalog.Edit:
		if w, _ := e.control(main, sub, a.ID); w != 0 {
			e.host.SetFocus(w)
			e.log.Debug().Uint32("id", a.ID).Msg("Edit")
		}
	case catalog.Combo:
		e.stepCombo(a, main, sub)
	case catalog.Menu:
		cmd, enabled, ok := e.host.MenuCommand(main, a.Index, a.Item)
		if ok && enabled {
			e.host.PostCommand(main, cmd)
			e.log.Debug().Uint32("menu", a.Index).Uint32("item", a.Item).Msg("Menu")
		}
	case catalog.Fold:
		e.toggleFold(a, main)
	case catalog.KillFocus:
		e.host.SetFocus(main)
		e.log.Debug().Msg("KillFocus")
	case catalog.FoldAll:
		e.clickVisible(main, e.folds)
		e.log.Debug().Msg("FoldAll")
	case catalog.UnfoldAll:
		e.clickVisible(main, e.unfolds)
		e.log.Debug().Msg("UnfoldAll")
	}
}

// press sets the overlay flag of k. Pressing any key other than a
// modifier first drops both modifier flags so that a modifier released
// during an earlier chord does not leak into this one.
func (e *Engine) press(k keys.Key) {
	if _, tracked := e.states[k]; !tracked {
		return
	}
	if k != keys.Shift && k != keys.Control {
		for _, m := range Modifiers {
			e.states[m] = false
		}
	}
	e.states[k] = true
	e.log.Debug().Stringer("key", k).Msg("Key")
}

// control finds control id under main, falling back to sub when it is
// missing or hidden there. It returns zero unless the control is visible
// and enabled, together with the window that owns it.
func (e *Engine) control(main, sub Window, id uint32) (w, owner Window) {
	w, owner = e.host.Control(main, id), main
	if (w == 0 || !e.host.IsVisible(w)) && sub != 0 {
		if sw := e.host.Control(sub, id); sw != 0 {
			w, owner = sw, sub
		}
	}
	if w == 0 || !e.host.IsVisible(w) || !e.host.IsEnabled(w) {
		return 0, 0
	}
	return w, owner
}

func (e *Engine) stepCombo(a catalog.Combo, main, sub Window) {
	w, owner := e.control(main, sub, a.ID)
	if w == 0 {
		return
	}
	index, count := e.host.ComboSelection(w)
	switch {
	case a.Dir == catalog.Prev && index >= 1:
		index--
	case a.Dir == catalog.Next && index < count-1:
		index++
	default:
		return
	}
	e.host.SelectCombo(w, index, owner, a.ID)
	e.log.Debug().Uint32("id", a.ID).Int("index", index).Msg("Combo")
}

func (e *Engine) toggleFold(a catalog.Fold, main Window) {
	if hide := e.host.Control(main, a.Hide); hide != 0 && e.host.IsVisible(hide) {
		e.host.Click(hide)
		e.log.Debug().Uint32("id", a.Hide).Msg("Fold")
		return
	}
	if show := e.host.Control(main, a.Show); show != 0 {
		e.host.Click(show)
		e.log.Debug().Uint32("id", a.Show).Msg("Fold")
	}
}

func (e *Engine) clickVisible(main Window, ids []uint32) {
	for _, id := range ids {
		if w := e.host.Control(main, id); w != 0 && e.host.IsVisible(w) {
			e.host.Click(w)
		}
	}
}
