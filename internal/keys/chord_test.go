package keys

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotOf(ks ...Key) *Snapshot {
	var s Snapshot
	for _, k := range ks {
		s.Press(k)
	}
	return &s
}

func TestFromSnapshot(t *testing.T) {
	tests := []struct {
		name string
		down []Key
		want []Key
	}{
		{"empty", nil, []Key{}},
		{"single", []Key{'J'}, []Key{'J'}},
		{"ascending order", []Key{'J', Control}, []Key{Control, 'J'}},
		{"capped at three", []Key{'Z', 'A', Shift, Control}, []Key{Shift, Control, 'A'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := FromSnapshot(snapshotOf(tt.down...))
			assert.Equal(t, tt.want, c.Keys())
		})
	}
}

func TestFromSnapshot_IgnoresLowBits(t *testing.T) {
	var s Snapshot
	s[Capital] = 0x01 // toggled, not held
	s['K'] = 0x81

	assert.Equal(t, Of('K'), FromSnapshot(&s))
}

func TestChordEquality(t *testing.T) {
	a := Of(Left, Control)
	b := Of(Right, Control)
	c := Of(Control, Left)

	assert.True(t, a == a)
	assert.False(t, a == b)
	assert.True(t, a == c)
	assert.True(t, c == a)
	assert.Equal(t, FromSnapshot(snapshotOf(Left, Control)), a)
}

func TestFromSlice_Duplicates(t *testing.T) {
	assert.Equal(t, Of('A', Shift), FromSlice([]Key{'A', Shift, 'A'}))
	assert.Equal(t, 2, FromSlice([]Key{'A', Shift, 'A'}).Len())
}

func TestFromSlice_CapIsOrderIndependent(t *testing.T) {
	a := FromSlice([]Key{'A', 'B', 'C', 'D'})
	b := FromSlice([]Key{'D', 'C', 'B', 'A'})

	assert.Equal(t, a, b)
	assert.Equal(t, []Key{'A', 'B', 'C'}, a.Keys())
}

func TestWithExtra(t *testing.T) {
	c := Of(Control)

	got := c.WithExtra('S')
	assert.Equal(t, Of(Control, 'S'), got)
	assert.Equal(t, Of(Control), c, "receiver must not change")

	assert.Equal(t, got, got.WithExtra(Control), "present key is a no-op")

	full := Of(Shift, Control, 'A')
	assert.Equal(t, full, full.WithExtra('B'), "full chord is a no-op")

	assert.Equal(t, Of(Shift, Control, 'A'), Of(Control, 'A').WithExtra(Shift))
}

func TestSubsetOf(t *testing.T) {
	held := Of(Control, Shift, 'F')

	assert.True(t, Of(Control).SubsetOf(held))
	assert.True(t, Of('F', Shift).SubsetOf(held))
	assert.False(t, Of('G').SubsetOf(held))
	assert.True(t, Chord{}.SubsetOf(held))
}

func TestChordString(t *testing.T) {
	assert.Equal(t, "Shift+Ctrl+F", Of('F', Control, Shift).String())
	assert.Equal(t, "", Chord{}.String())
}

func TestChordJSON(t *testing.T) {
	var c Chord
	require.NoError(t, json.Unmarshal([]byte(`["S", "ctrl"]`), &c))
	assert.Equal(t, Of(Control, 'S'), c)

	require.NoError(t, json.Unmarshal([]byte(`[74]`), &c))
	assert.Equal(t, Of('J'), c)

	data, err := json.Marshal(Of('S', Control))
	require.NoError(t, err)
	assert.JSONEq(t, `["Ctrl", "S"]`, string(data))
}

func TestChordJSON_Invalid(t *testing.T) {
	var c Chord
	assert.Error(t, json.Unmarshal([]byte(`[]`), &c))
	assert.Error(t, json.Unmarshal([]byte(`["A","B","C","D"]`), &c))
	assert.Error(t, json.Unmarshal([]byte(`["Nope"]`), &c))
	assert.Error(t, json.Unmarshal([]byte(`[300]`), &c))
}
