// Package keys provides virtual-key codes, their names, and the Chord
// value type used to match simultaneously held keys.
package keys

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Key is a virtual-key code from the OS key-code space.
type Key uint32

// Virtual-key codes referenced by the engine and the stock tables.
const (
	LButton  Key = 0x01
	RButton  Key = 0x02
	MButton  Key = 0x04
	XButton2 Key = 0x06
	Back     Key = 0x08
	Tab      Key = 0x09
	Return   Key = 0x0D
	Shift    Key = 0x10
	Control  Key = 0x11
	Menu     Key = 0x12 // Alt
	Pause    Key = 0x13
	Capital  Key = 0x14
	Escape   Key = 0x1B
	Space    Key = 0x20
	Prior    Key = 0x21 // Page Up
	Next     Key = 0x22 // Page Down
	End      Key = 0x23
	Home     Key = 0x24
	Left     Key = 0x25
	Up       Key = 0x26
	Right    Key = 0x27
	Down     Key = 0x28
	Insert   Key = 0x2D
	Delete   Key = 0x2E
	F1       Key = 0x70
	LShift   Key = 0xA0
	RShift   Key = 0xA1
	LControl Key = 0xA2
	RControl Key = 0xA3
	LMenu    Key = 0xA4
	RMenu    Key = 0xA5
)

// ReservedBelow is the first code that may be virtualized. Codes below it
// are mouse buttons.
const ReservedBelow Key = 0x07

// Sided reports whether k is one of the left/right variants of Shift,
// Control or Alt.
func (k Key) Sided() bool {
	return k >= LShift && k <= RMenu
}

// String returns the key name, or a hex code for unnamed keys.
func (k Key) String() string {
	if name, ok := keyToName[k]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", uint32(k))
}

// Parse converts a key name ("J", "ctrl", "F5", "PageUp") or a numeric
// code ("0x4A", "74") to a Key.
func Parse(name string) (Key, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return 0, fmt.Errorf("empty key name")
	}
	if k, ok := nameToKey[strings.ToLower(s)]; ok {
		return k, nil
	}
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown key: %q", name)
	}
	return Key(n), nil
}

// MarshalJSON writes the key by name.
func (k Key) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON accepts either a key name or a numeric code.
func (k *Key) UnmarshalJSON(data []byte) error {
	var n uint8
	if err := json.Unmarshal(data, &n); err == nil {
		*k = Key(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("key must be a name or a code between 0 and 255: %s", data)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

var keyToName = map[Key]string{
	LButton: "LButton", RButton: "RButton", 0x03: "Cancel", MButton: "MButton",
	0x05: "XButton1", XButton2: "XButton2",
	Back: "Backspace", Tab: "Tab", Return: "Enter",
	Shift: "Shift", Control: "Ctrl", Menu: "Alt", Pause: "Pause", Capital: "CapsLock",
	0x1C: "Convert", 0x1D: "NonConvert", Escape: "Escape", Space: "Space",
	Prior: "PageUp", Next: "PageDown", End: "End", Home: "Home",
	Left: "Left", Up: "Up", Right: "Right", Down: "Down",
	Insert: "Insert", Delete: "Delete",
	0x60: "Num0", 0x61: "Num1", 0x62: "Num2", 0x63: "Num3", 0x64: "Num4",
	0x65: "Num5", 0x66: "Num6", 0x67: "Num7", 0x68: "Num8", 0x69: "Num9",
	0x6A: "NumMultiply", 0x6B: "NumAdd", 0x6D: "NumSubtract", 0x6E: "NumDecimal", 0x6F: "NumDivide",
	LShift: "LShift", RShift: "RShift", LControl: "LCtrl", RControl: "RCtrl", LMenu: "LAlt", RMenu: "RAlt",
	0xBA: "Semicolon", 0xBB: "Plus", 0xBC: "Comma", 0xBD: "Minus", 0xBE: "Period",
	0xBF: "Slash", 0xC0: "Backquote", 0xDB: "LBracket", 0xDC: "Backslash", 0xDD: "RBracket",
	0xDE: "Quote", 0xE2: "Backslash102",
}

var nameToKey = map[string]Key{}

func init() {
	for c := '0'; c <= '9'; c++ {
		keyToName[Key(c)] = string(c)
	}
	for c := 'A'; c <= 'Z'; c++ {
		keyToName[Key(c)] = string(c)
	}
	for i := 0; i < 24; i++ {
		keyToName[F1+Key(i)] = fmt.Sprintf("F%d", i+1)
	}
	for k, name := range keyToName {
		nameToKey[strings.ToLower(name)] = k
	}
	// Aliases accepted on input only.
	aliases := map[string]Key{
		"control": Control, "menu": Menu, "return": Return, "esc": Escape,
		"back": Back, "del": Delete, "ins": Insert, "prior": Prior, "next": Next,
		"pgup": Prior, "pgdn": Next, "capital": Capital,
	}
	for name, k := range aliases {
		nameToKey[name] = k
	}
}
