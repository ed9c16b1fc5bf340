package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Key
	}{
		{"J", 'J'},
		{"j", 'J'},
		{"ctrl", Control},
		{"Control", Control},
		{"Shift", Shift},
		{"F5", 0x74},
		{"f24", 0x87},
		{"PageUp", Prior},
		{"esc", Escape},
		{"0x4A", 'J'},
		{"74", 'J'},
		{"7", '7'},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{"", "  ", "hyper", "0x1FF"} {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "Ctrl", Control.String())
	assert.Equal(t, "A", Key('A').String())
	assert.Equal(t, "F12", Key(0x7B).String())
	assert.Equal(t, "0xFF", Key(0xFF).String())
}

func TestSided(t *testing.T) {
	assert.True(t, LShift.Sided())
	assert.True(t, RMenu.Sided())
	assert.False(t, Shift.Sided())
	assert.False(t, Key('A').Sided())
}
