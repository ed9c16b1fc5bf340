package catalog

import (
	"fmt"

	"github.com/HopIT-Hub/mmaccel/internal/keys"
)

// Action is a UI action the engine can perform against the host. The set
// of implementations is closed: Key, Button, Edit, Combo, Menu, Fold,
// KillFocus, FoldAll and UnfoldAll. All of them are comparable values.
type Action interface {
	Kind() Kind
	String() string
	sealed()
}

// Kind names an Action variant as written in the catalog source.
type Kind string

const (
	KindKey       Kind = "key"
	KindButton    Kind = "button"
	KindEdit      Kind = "edit"
	KindCombo     Kind = "combo"
	KindMenu      Kind = "menu"
	KindFold      Kind = "fold"
	KindKillFocus Kind = "kill_focus"
	KindFoldAll   Kind = "fold_all"
	KindUnfoldAll Kind = "unfold_all"
)

// Direction is the step direction of a Combo action.
type Direction int

const (
	Prev Direction = iota
	Next
)

func (d Direction) String() string {
	switch d {
	case Prev:
		return "prev"
	case Next:
		return "next"
	default:
		return "unknown"
	}
}

// Key exposes Key as virtually pressed to the host's key-state queries.
type Key struct{ Key keys.Key }

// Button clicks the control with the given id.
type Button struct{ ID uint32 }

// Edit moves input focus to the control with the given id.
type Edit struct{ ID uint32 }

// Combo steps the selection of a combo box by one item.
type Combo struct {
	Dir Direction
	ID  uint32
}

// Menu invokes item Item of top-level menu Index.
type Menu struct{ Index, Item uint32 }

// Fold toggles a collapsible panel: Hide collapses it, Show expands it.
type Fold struct{ Hide, Show uint32 }

// KillFocus returns input focus to the main window.
type KillFocus struct{}

// FoldAll collapses every known panel.
type FoldAll struct{}

// UnfoldAll expands every known panel.
type UnfoldAll struct{}

func (Key) Kind() Kind       { return KindKey }
func (Button) Kind() Kind    { return KindButton }
func (Edit) Kind() Kind      { return KindEdit }
func (Combo) Kind() Kind     { return KindCombo }
func (Menu) Kind() Kind      { return KindMenu }
func (Fold) Kind() Kind      { return KindFold }
func (KillFocus) Kind() Kind { return KindKillFocus }
func (FoldAll) Kind() Kind   { return KindFoldAll }
func (UnfoldAll) Kind() Kind { return KindUnfoldAll }

func (a Key) String() string     { return fmt.Sprintf("key(%s)", a.Key) }
func (a Button) String() string  { return fmt.Sprintf("button(0x%x)", a.ID) }
func (a Edit) String() string    { return fmt.Sprintf("edit(0x%x)", a.ID) }
func (a Combo) String() string   { return fmt.Sprintf("combo(%s, 0x%x)", a.Dir, a.ID) }
func (a Menu) String() string    { return fmt.Sprintf("menu(%d, %d)", a.Index, a.Item) }
func (a Fold) String() string    { return fmt.Sprintf("fold(0x%x, 0x%x)", a.Hide, a.Show) }
func (KillFocus) String() string { return "kill_focus" }
func (FoldAll) String() string   { return "fold_all" }
func (UnfoldAll) String() string { return "unfold_all" }

func (Key) sealed()       {}
func (Button) sealed()    {}
func (Edit) sealed()      {}
func (Combo) sealed()     {}
func (Menu) sealed()      {}
func (Fold) sealed()      {}
func (KillFocus) sealed() {}
func (FoldAll) sealed()   {}
func (UnfoldAll) sealed() {}
