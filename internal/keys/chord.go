package keys

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// MaxChordKeys caps the number of keys a Chord can hold.
const MaxChordKeys = 3

// Snapshot is a full keyboard state, one byte per key code. A key is
// down when the high bit of its byte is set.
type Snapshot [256]byte

// Down reports whether k is down in s.
func (s *Snapshot) Down(k Key) bool {
	return k < 256 && s[k]&0x80 != 0
}

// Press marks k as down.
func (s *Snapshot) Press(k Key) {
	if k < 256 {
		s[k] |= 0x80
	}
}

// Release marks k as up.
func (s *Snapshot) Release(k Key) {
	if k < 256 {
		s[k] &^= 0x80
	}
}

// Reset marks every key as up.
func (s *Snapshot) Reset() {
	clear(s[:])
}

// Chord is an immutable set of at most MaxChordKeys keys. Keys are kept
// sorted so that == compares set membership and a Chord can key a map.
type Chord struct {
	keys [MaxChordKeys]Key
	n    uint8
}

// FromSnapshot collects the first MaxChordKeys down keys of s in
// ascending code order.
func FromSnapshot(s *Snapshot) Chord {
	var c Chord
	for i := range s {
		if s[i]&0x80 == 0 {
			continue
		}
		c.keys[c.n] = Key(i)
		c.n++
		if c.n == MaxChordKeys {
			break
		}
	}
	return c
}

// FromSlice builds a Chord from keys in any order. Duplicates are
// collapsed and only the lowest MaxChordKeys codes are kept.
func FromSlice(ks []Key) Chord {
	sorted := slices.Clone(ks)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	var c Chord
	for _, k := range sorted {
		if c.n == MaxChordKeys {
			break
		}
		c.keys[c.n] = k
		c.n++
	}
	return c
}

// Of is FromSlice for literal key lists.
func Of(ks ...Key) Chord {
	return FromSlice(ks)
}

// WithExtra returns c plus k. c is returned unchanged when k is already
// present or the chord is full.
func (c Chord) WithExtra(k Key) Chord {
	if c.n == MaxChordKeys || c.Contains(k) {
		return c
	}
	i := 0
	for i < int(c.n) && c.keys[i] < k {
		i++
	}
	copy(c.keys[i+1:c.n+1], c.keys[i:c.n])
	c.keys[i] = k
	c.n++
	return c
}

// Len returns the number of keys in c.
func (c Chord) Len() int {
	return int(c.n)
}

// Empty reports whether c holds no keys.
func (c Chord) Empty() bool {
	return c.n == 0
}

// Keys returns the keys of c in ascending order.
func (c Chord) Keys() []Key {
	out := make([]Key, c.n)
	copy(out, c.keys[:c.n])
	return out
}

// Contains reports whether k is in c.
func (c Chord) Contains(k Key) bool {
	return slices.Contains(c.keys[:c.n], k)
}

// SubsetOf reports whether every key of c is also in other.
func (c Chord) SubsetOf(other Chord) bool {
	for _, k := range c.keys[:c.n] {
		if !other.Contains(k) {
			return false
		}
	}
	return true
}

// String renders c as "Ctrl+Shift+F".
func (c Chord) String() string {
	names := make([]string, c.n)
	for i, k := range c.keys[:c.n] {
		names[i] = k.String()
	}
	return strings.Join(names, "+")
}

// MarshalJSON writes c as an array of key names.
func (c Chord) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.keys[:c.n])
}

// UnmarshalJSON reads an array of one to MaxChordKeys keys.
func (c *Chord) UnmarshalJSON(data []byte) error {
	var ks []Key
	if err := json.Unmarshal(data, &ks); err != nil {
		return err
	}
	if len(ks) == 0 || len(ks) > MaxChordKeys {
		return fmt.Errorf("chord must have 1 to %d keys, got %d", MaxChordKeys, len(ks))
	}
	*c = FromSlice(ks)
	return nil
}
