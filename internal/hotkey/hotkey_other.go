//go:build !windows

package hotkey

func register(Combo, func()) (registration, error) {
	return nil, ErrUnsupported
}
