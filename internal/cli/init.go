package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/HopIT-Hub/mmaccel/internal/binding"
	"github.com/HopIT-Hub/mmaccel/internal/catalog"
	"github.com/HopIT-Hub/mmaccel/internal/config"
	"github.com/HopIT-Hub/mmaccel/internal/session"
)

func newInitCmd(dir dirFunc) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the stock catalog, key map and settings",
		Long: `Init populates the config directory with the stock action catalog
(mmd_map.json), the default key map (key_map.json), its JSON schema and
settings.json.

Existing files are kept unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := dir()
			if err != nil {
				return err
			}
			written, err := initDir(d, force)
			if err != nil {
				return err
			}
			th := newTheme()
			for _, name := range written {
				fmt.Fprintln(cmd.OutOrStdout(), th.ok.Render("wrote")+" "+filepath.Join(d, name))
			}
			if len(written) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), th.muted.Render("nothing to do in "+d))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	return cmd
}

// initDir writes the stock files into dir and returns the names of the
// files it wrote.
func initDir(dir string, force bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	var written []string
	write := func(name string, fn func(path string) error) error {
		path := filepath.Join(dir, name)
		if !force {
			if _, err := os.Stat(path); err == nil {
				return nil
			} else if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}
		if err := fn(path); err != nil {
			return err
		}
		written = append(written, name)
		return nil
	}

	steps := []struct {
		name string
		fn   func(string) error
	}{
		{session.CatalogFileName, func(p string) error {
			if err := os.WriteFile(p, catalog.Stock(), 0o644); err != nil {
				return fmt.Errorf("write catalog: %w", err)
			}
			return nil
		}},
		{binding.FileName, binding.Default().Save},
		{binding.SchemaFileName, binding.WriteSchema},
		{config.FileName, func(p string) error {
			// Load writes the defaults when the file is missing.
			if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("remove config: %w", err)
			}
			_, err := config.Load(dir)
			return err
		}},
	}
	for _, s := range steps {
		if err := write(s.name, s.fn); err != nil {
			return written, err
		}
	}
	return written, nil
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of key_map.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(binding.Schema())
		},
	}
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "mmaccel", version)
		},
	}
}
