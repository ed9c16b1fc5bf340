// Package cli provides the Cobra commands of the mmaccel binary.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/HopIT-Hub/mmaccel/internal/config"
)

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	var dir string

	root := &cobra.Command{
		Use:   "mmaccel",
		Short: "Keyboard chords for MikuMikuDance",
		Long: `MMAccel binds keyboard chords to MikuMikuDance buttons, edit fields,
combo boxes, menus and panel folding.

It runs in the system tray, waits for MikuMikuDance to start and remaps
keys while its windows have focus. The key map (key_map.json) is reloaded
as soon as it is saved.

Use 'mmaccel init' once to write the stock action catalog and key map,
then 'mmaccel run' to start.`,
		SilenceUsage: true,
		Version:      version,
	}
	root.PersistentFlags().StringVar(&dir, "dir", "", "config directory (default $"+config.EnvDir+" or the user config dir)")

	resolve := func() (string, error) {
		if dir != "" {
			return dir, nil
		}
		return config.Dir()
	}

	root.AddCommand(
		newRunCmd(version, resolve),
		newCheckCmd(resolve),
		newBindingsCmd(resolve),
		newInitCmd(resolve),
		newSchemaCmd(),
		newVersionCmd(version),
	)
	return root
}

// dirFunc returns the config directory selected by --dir.
type dirFunc func() (string, error)

// Execute runs the root command. An interrupt cancels the command's
// context.
func Execute(version string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCmd(version).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
