//go:build !windows

package autostart

// Registered always reports no entry.
func Registered() (string, bool) { return "", false }

// IsEnabled always reports false.
func IsEnabled() bool { return false }

// Enable is not supported.
func Enable(...string) error { return ErrUnsupported }

// Disable is a no-op.
func Disable() error { return nil }
