package binding

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/HopIT-Hub/mmaccel/internal/keys"
)

// SchemaFileName is written next to the key map so editors can validate it.
const SchemaFileName = "key_map.schema.json"

// Schema returns the JSON schema of the key map file.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		Mapper:         chordSchema,
	}
	schema := r.Reflect([]Entry{})
	schema.ID = "https://github.com/HopIT-Hub/mmaccel/key_map.schema.json"
	schema.Title = "MMAccel key map"
	schema.Description = "Chords bound to MikuMikuDance actions"
	return schema
}

// WriteSchema writes Schema to path.
func WriteSchema(path string) error {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	return nil
}

func chordSchema(t reflect.Type) *jsonschema.Schema {
	if t != reflect.TypeOf(keys.Chord{}) {
		return nil
	}
	minItems, maxItems := uint64(1), uint64(keys.MaxChordKeys)
	return &jsonschema.Schema{
		Type:     "array",
		MinItems: &minItems,
		MaxItems: &maxItems,
		Items: &jsonschema.Schema{
			OneOf: []*jsonschema.Schema{
				{Type: "string", Description: "Key name such as \"Ctrl\", \"S\" or \"F5\""},
				{Type: "integer", Minimum: json.Number("0"), Maximum: json.Number("255")},
			},
		},
	}
}
