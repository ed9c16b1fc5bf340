// MMAccel: keyboard chords for MikuMikuDance.
//
// Tray application that remaps chords to MikuMikuDance UI actions while
// its windows have focus.
//
// Suspend hotkey (default: Ctrl+Alt+M):
//   - Each press turns remapping off or on
package main

import "github.com/HopIT-Hub/mmaccel/internal/cli"

var version = "dev"

func main() {
	cli.Execute(version)
}
