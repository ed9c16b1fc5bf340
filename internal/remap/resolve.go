package remap

import (
	"fmt"

	"github.com/HopIT-Hub/mmaccel/internal/binding"
	"github.com/HopIT-Hub/mmaccel/internal/catalog"
	"github.com/HopIT-Hub/mmaccel/internal/keys"
)

// DispatchMap resolves a chord to the action it triggers.
type DispatchMap map[keys.Chord]catalog.Action

// Modifiers are always tracked as pass-through keys, whatever the key map
// says.
var Modifiers = [...]keys.Key{keys.Shift, keys.Control}

// UnknownActionError reports a key map entry naming an action the catalog
// does not define.
type UnknownActionError struct {
	Action string
	Keys   keys.Chord
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action %q bound to %s", e.Action, e.Keys)
}

// Resolve joins table through cat. Entries naming unknown actions are
// skipped and reported. A later entry for the same chord replaces an
// earlier one. The Shift and Ctrl pass-through entries are added last and
// override any user binding on those chords.
func Resolve(cat *catalog.Catalog, table *binding.Table) (DispatchMap, []error) {
	m := make(DispatchMap, len(table.Entries)+len(Modifiers))
	var warnings []error
	for _, e := range table.Entries {
		a, ok := cat.Lookup(e.Action)
		if !ok {
			warnings = append(warnings, &UnknownActionError{Action: e.Action, Keys: e.Keys})
			continue
		}
		m[e.Keys] = a
	}
	for _, k := range Modifiers {
		m[keys.Of(k)] = catalog.Key{Key: k}
	}
	return m, warnings
}
