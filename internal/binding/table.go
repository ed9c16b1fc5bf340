// Package binding loads and saves the user's key map: which chord
// triggers which catalog action.
package binding

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/HopIT-Hub/mmaccel/internal/keys"
)

// FileName is the name of the key map file inside the config directory.
const FileName = "key_map.json"

// Entry binds one action name to a chord.
type Entry struct {
	Action string     `json:"action" jsonschema:"required,minLength=1,description=Action name from the catalog"`
	Keys   keys.Chord `json:"keys" jsonschema:"required,description=One to three keys held together"`
}

// Table is an ordered list of bindings.
type Table struct {
	Entries []Entry
}

// MarshalJSON writes the table as a bare JSON array.
func (t *Table) MarshalJSON() ([]byte, error) {
	if t.Entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t.Entries)
}

// UnmarshalJSON reads a bare JSON array of entries.
func (t *Table) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	t.Entries = entries
	return nil
}

// Validate checks that every entry names an action and holds at least
// one key.
func (t *Table) Validate() error {
	for i, e := range t.Entries {
		if e.Action == "" {
			return fmt.Errorf("entry %d: empty action name", i)
		}
		if e.Keys.Empty() {
			return fmt.Errorf("entry %d (%s): no keys", i, e.Action)
		}
	}
	return nil
}

// Parse decodes and validates a key map.
func Parse(data []byte) (*Table, error) {
	t := &Table{}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse key map: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid key map: %w", err)
	}
	return t, nil
}

// Load reads the key map at path.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key map: %w", err)
	}
	return Parse(data)
}

// Save writes the table to path atomically (write temp, rename).
func (t *Table) Save(path string) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal key map: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create key map dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp key map: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename key map: %w", err)
	}
	return nil
}

// LoadOrDefault reads the key map at path. When the file is missing or
// invalid the default table is returned instead and written back to path.
// A failed write is logged and otherwise ignored.
func LoadOrDefault(path string, log zerolog.Logger) *Table {
	t, err := Load(path)
	if err == nil {
		return t
	}
	log.Warn().Err(err).Str("path", path).Msg("using default key map")

	t = Default()
	if err := t.Save(path); err != nil {
		log.Error().Err(err).Str("path", path).Msg("write default key map")
	} else {
		log.Debug().Str("path", path).Msg("written default key map")
	}
	return t
}

// Default returns the stock key map. It only references actions of the
// stock catalog.
func Default() *Table {
	c := keys.Control
	s := keys.Shift
	return &Table{Entries: []Entry{
		{"camera.rotate_left", keys.Of('A')},
		{"camera.rotate_right", keys.Of('D')},
		{"camera.rotate_up", keys.Of('W')},
		{"camera.rotate_down", keys.Of('S')},
		{"frame.prev", keys.Of(keys.Left)},
		{"frame.next", keys.Of(keys.Right)},
		{"play", keys.Of(keys.Space)},
		{"register", keys.Of(keys.Return)},
		{"frame.input", keys.Of('F')},
		{"model.prev", keys.Of(c, keys.Up)},
		{"model.next", keys.Of(c, keys.Down)},
		{"file.save", keys.Of(c, 'S')},
		{"edit.undo", keys.Of(c, 'Z')},
		{"edit.redo", keys.Of(c, 'Y')},
		{"kill_focus", keys.Of(keys.Escape)},
		{"fold_all", keys.Of(c, s, 'F')},
		{"unfold_all", keys.Of(c, s, 'U')},
	}}
}
