//go:build windows

package autostart

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const (
	runKey    = `Software\Microsoft\Windows\CurrentVersion\Run`
	valueName = "MMAccel"
)

func openRunKey(access uint32) (registry.Key, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKey, access)
	if err != nil {
		return 0, fmt.Errorf("open run key: %w", err)
	}
	return k, nil
}

// Registered returns the command line stored for start on login.
func Registered() (string, bool) {
	k, err := openRunKey(registry.QUERY_VALUE)
	if err != nil {
		return "", false
	}
	defer k.Close()

	cmd, _, err := k.GetStringValue(valueName)
	return cmd, err == nil
}

// IsEnabled reports whether a start-on-login entry exists.
func IsEnabled() bool {
	_, ok := Registered()
	return ok
}

// Enable registers the running executable with args. An entry already
// holding the same command line is left untouched.
func Enable(args ...string) error {
	cmd, err := Command(args...)
	if err != nil {
		return err
	}
	if cur, ok := Registered(); ok && cur == cmd {
		return nil
	}

	k, err := openRunKey(registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer k.Close()

	if err := k.SetStringValue(valueName, cmd); err != nil {
		return fmt.Errorf("register %s: %w", valueName, err)
	}
	return nil
}

// Disable removes the start-on-login entry. A missing entry is not an
// error.
func Disable() error {
	k, err := openRunKey(registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer k.Close()

	if err := k.DeleteValue(valueName); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("unregister %s: %w", valueName, err)
	}
	return nil
}
