// Package autostart manages registering the app to start on login.
package autostart

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrUnsupported is returned on platforms without a start-on-login
// mechanism.
var ErrUnsupported = errors.New("autostart not supported on this platform")

// Command returns the command line that starts the running executable
// with args.
func Command(args ...string) (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("get executable path: %w", err)
	}
	return commandLine(exe, args...), nil
}

// commandLine joins exe and args into a Windows command line, quoting
// any part that contains spaces.
func commandLine(exe string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	for _, p := range append([]string{exe}, args...) {
		if strings.ContainsAny(p, " \t") {
			p = `"` + p + `"`
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}
