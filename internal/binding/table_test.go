package binding

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HopIT-Hub/mmaccel/internal/catalog"
	"github.com/HopIT-Hub/mmaccel/internal/keys"
)

func TestParse(t *testing.T) {
	src := `[
		{"action": "jump", "keys": ["J"]},
		{"action": "save", "keys": ["S", "Ctrl"]}
	]`

	table, err := Parse([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		{Action: "jump", Keys: keys.Of('J')},
		{Action: "save", Keys: keys.Of(keys.Control, 'S')},
	}, table.Entries)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"not json":     `[`,
		"object":       `{"jump": ["J"]}`,
		"empty action": `[{"action": "", "keys": ["J"]}]`,
		"no keys":      `[{"action": "jump"}]`,
		"empty keys":   `[{"action": "jump", "keys": []}]`,
		"too many":     `[{"action": "jump", "keys": ["A", "B", "C", "D"]}]`,
	}

	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", FileName)
	table := &Table{Entries: []Entry{{Action: "jump", Keys: keys.Of('J')}}}

	require.NoError(t, table.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, table.Entries, got.Entries)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file must be renamed away")
}

func TestMarshal_Empty(t *testing.T) {
	data, err := json.Marshal(&Table{})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestLoadOrDefault_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	var buf bytes.Buffer

	table := LoadOrDefault(path, zerolog.New(&buf))

	assert.Equal(t, Default().Entries, table.Entries)
	assert.Contains(t, buf.String(), "using default key map")

	persisted, err := Load(path)
	require.NoError(t, err, "defaults must be written back")
	assert.Equal(t, Default().Entries, persisted.Entries)
}

func TestLoadOrDefault_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`[{"action": "jump", "keys": ["Nope"]}]`), 0o644))

	table := LoadOrDefault(path, zerolog.Nop())

	assert.Equal(t, Default().Entries, table.Entries)
}

func TestLoadOrDefault_PersistFailureIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	path := filepath.Join(blocker, FileName) // parent is a regular file
	var buf bytes.Buffer

	table := LoadOrDefault(path, zerolog.New(&buf))

	assert.Equal(t, Default().Entries, table.Entries)
	assert.Contains(t, buf.String(), "write default key map")
}

func TestLoadOrDefault_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`[{"action": "jump", "keys": [74]}]`), 0o644))

	table := LoadOrDefault(path, zerolog.Nop())

	assert.Equal(t, []Entry{{Action: "jump", Keys: keys.Of('J')}}, table.Entries)
}

func TestDefault_ReferencesStockCatalog(t *testing.T) {
	cat, err := catalog.Parse(catalog.Stock())
	require.NoError(t, err)

	for _, e := range Default().Entries {
		_, ok := cat.Lookup(e.Action)
		assert.True(t, ok, "default binding %q is not in the stock catalog", e.Action)
	}
	assert.NoError(t, Default().Validate())
}

func TestSchema(t *testing.T) {
	data, err := json.Marshal(Schema())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "array", doc["type"])

	items := doc["items"].(map[string]any)
	props := items["properties"].(map[string]any)
	chord := props["keys"].(map[string]any)
	assert.Equal(t, "array", chord["type"])
	assert.EqualValues(t, 3, chord["maxItems"])
}

func TestWriteSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), SchemaFileName)
	require.NoError(t, WriteSchema(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "MMAccel key map")
}
