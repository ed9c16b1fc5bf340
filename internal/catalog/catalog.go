// Package catalog describes the host application's controls: which
// symbolic action names exist and what UI action each one performs.
//
// A catalog is loaded once at startup and never changes afterwards. There
// is no fallback when the source is missing or malformed, so callers must
// treat a load error as fatal.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/HopIT-Hub/mmaccel/internal/keys"
)

//go:embed stock.json
var stock []byte

// Stock returns the bundled catalog source for MikuMikuDance.
func Stock() []byte {
	return slices.Clone(stock)
}

// Catalog maps action names to actions.
type Catalog struct {
	items    map[string]Action
	names    []string
	folds    []uint32
	unfolds  []uint32
	passKeys []keys.Key
}

// New builds a catalog from already-decoded actions.
func New(items map[string]Action) *Catalog {
	c := &Catalog{items: make(map[string]Action, len(items))}
	for name, a := range items {
		c.items[name] = a
		c.names = append(c.names, name)
	}
	sort.Strings(c.names)

	for _, name := range c.names {
		switch a := c.items[name].(type) {
		case Fold:
			c.folds = append(c.folds, a.Hide)
			c.unfolds = append(c.unfolds, a.Show)
		case Key:
			if !slices.Contains(c.passKeys, a.Key) {
				c.passKeys = append(c.passKeys, a.Key)
			}
		}
	}
	return c
}

// Load reads and parses the catalog file at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a catalog source: a JSON object from action name to an
// item description.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string]item
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("parse catalog: no items")
	}
	items := make(map[string]Action, len(raw))
	for name, it := range raw {
		if name == "" {
			return nil, &ParseError{Name: name, Reason: "empty action name"}
		}
		a, err := it.action()
		if err != nil {
			return nil, &ParseError{Name: name, Reason: err.Error()}
		}
		items[name] = a
	}
	return New(items), nil
}

// ParseError reports an invalid catalog entry.
type ParseError struct {
	Name   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("item %q: %s", e.Name, e.Reason)
}

// Lookup returns the action registered under name.
func (c *Catalog) Lookup(name string) (Action, bool) {
	a, ok := c.items[name]
	return a, ok
}

// Names returns every action name in sorted order.
func (c *Catalog) Names() []string {
	return slices.Clone(c.names)
}

// Len returns the number of actions.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Folds returns the hide-control id of every fold pair.
func (c *Catalog) Folds() []uint32 {
	return slices.Clone(c.folds)
}

// Unfolds returns the show-control id of every fold pair.
func (c *Catalog) Unfolds() []uint32 {
	return slices.Clone(c.unfolds)
}

// PassKeys returns every key exposed by a Key action.
func (c *Catalog) PassKeys() []keys.Key {
	return slices.Clone(c.passKeys)
}

// item is the on-disk form of one catalog entry.
type item struct {
	Kind Kind      `json:"kind"`
	Key  *keys.Key `json:"key,omitempty"`
	ID   *uint32   `json:"id,omitempty"`
	Dir  string    `json:"dir,omitempty"`
	Menu *uint32   `json:"menu,omitempty"`
	Item *uint32   `json:"item,omitempty"`
	Hide *uint32   `json:"hide,omitempty"`
	Show *uint32   `json:"show,omitempty"`
}

func (it item) action() (Action, error) {
	switch it.Kind {
	case KindKey:
		if it.Key == nil {
			return nil, fmt.Errorf("kind %q requires \"key\"", it.Kind)
		}
		return Key{Key: *it.Key}, nil
	case KindButton:
		if it.ID == nil {
			return nil, fmt.Errorf("kind %q requires \"id\"", it.Kind)
		}
		return Button{ID: *it.ID}, nil
	case KindEdit:
		if it.ID == nil {
			return nil, fmt.Errorf("kind %q requires \"id\"", it.Kind)
		}
		return Edit{ID: *it.ID}, nil
	case KindCombo:
		if it.ID == nil {
			return nil, fmt.Errorf("kind %q requires \"id\"", it.Kind)
		}
		var dir Direction
		switch it.Dir {
		case "prev":
			dir = Prev
		case "next":
			dir = Next
		default:
			return nil, fmt.Errorf("combo dir must be \"prev\" or \"next\", got %q", it.Dir)
		}
		return Combo{Dir: dir, ID: *it.ID}, nil
	case KindMenu:
		if it.Menu == nil || it.Item == nil {
			return nil, fmt.Errorf("kind %q requires \"menu\" and \"item\"", it.Kind)
		}
		return Menu{Index: *it.Menu, Item: *it.Item}, nil
	case KindFold:
		if it.Hide == nil || it.Show == nil {
			return nil, fmt.Errorf("kind %q requires \"hide\" and \"show\"", it.Kind)
		}
		return Fold{Hide: *it.Hide, Show: *it.Show}, nil
	case KindKillFocus:
		return KillFocus{}, nil
	case KindFoldAll:
		return FoldAll{}, nil
	case KindUnfoldAll:
		return UnfoldAll{}, nil
	case "":
		return nil, fmt.Errorf("missing kind")
	default:
		return nil, fmt.Errorf("unknown kind %q", it.Kind)
	}
}
