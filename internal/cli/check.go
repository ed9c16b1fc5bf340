package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/HopIT-Hub/mmaccel/internal/binding"
	"github.com/HopIT-Hub/mmaccel/internal/catalog"
	"github.com/HopIT-Hub/mmaccel/internal/keys"
	"github.com/HopIT-Hub/mmaccel/internal/remap"
	"github.com/HopIT-Hub/mmaccel/internal/session"
)

type checkReport struct {
	Dir        string
	Actions    int
	CatalogErr error

	Entries       int
	Bindings      int
	KeyMapMissing bool
	KeyMapErr     error
	Warnings      []string
}

// failed reports whether run would refuse to start or fall back to the
// default key map.
func (r checkReport) failed() bool {
	return r.CatalogErr != nil || (r.KeyMapErr != nil && !r.KeyMapMissing)
}

// inspect loads the catalog and key map of dir the way run does.
func inspect(dir string) checkReport {
	r := checkReport{Dir: dir}

	cat, err := catalog.Load(filepath.Join(dir, session.CatalogFileName))
	if err != nil {
		r.CatalogErr = err
	} else {
		r.Actions = cat.Len()
	}

	table, err := binding.Load(filepath.Join(dir, binding.FileName))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		r.KeyMapMissing = true
		r.KeyMapErr = err
		return r
	case err != nil:
		r.KeyMapErr = err
		return r
	}
	r.Entries = len(table.Entries)

	if cat != nil {
		m, warnings := remap.Resolve(cat, table)
		r.Bindings = len(m)
		for _, w := range warnings {
			r.Warnings = append(r.Warnings, w.Error())
		}
	}
	return r
}

func newCheckCmd(dir dirFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the catalog and key map",
		Long: `Check loads mmd_map.json and key_map.json from the config directory
and reports errors and key map entries naming unknown actions.

It exits non-zero when the catalog cannot be loaded or the key map is
invalid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := dir()
			if err != nil {
				return err
			}
			r := inspect(d)
			fmt.Fprintln(cmd.OutOrStdout(), newTheme().renderCheck(r))
			if r.failed() {
				return errors.New("check failed")
			}
			return nil
		},
	}
}

type bindingRow struct {
	Chord  string
	Action string
	Target string
	Note   string
}

// bindingRows lists the entries of table in file order, noting the ones
// that have no effect.
func bindingRows(cat *catalog.Catalog, table *binding.Table) []bindingRow {
	last := make(map[keys.Chord]int, len(table.Entries))
	for i, e := range table.Entries {
		last[e.Keys] = i
	}
	reserved := make(map[keys.Chord]bool, len(remap.Modifiers))
	for _, k := range remap.Modifiers {
		reserved[keys.Of(k)] = true
	}

	rows := make([]bindingRow, 0, len(table.Entries))
	for i, e := range table.Entries {
		row := bindingRow{Chord: e.Keys.String(), Action: e.Action}
		a, ok := cat.Lookup(e.Action)
		switch {
		case !ok:
			row.Note = "unknown action"
		case reserved[e.Keys]:
			row.Target = fmt.Sprint(a)
			row.Note = "reserved chord"
		case last[e.Keys] != i:
			row.Target = fmt.Sprint(a)
			row.Note = "overridden"
		default:
			row.Target = fmt.Sprint(a)
		}
		rows = append(rows, row)
	}
	return rows
}

func newBindingsCmd(dir dirFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "bindings",
		Short: "List the key map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := dir()
			if err != nil {
				return err
			}
			cat, err := catalog.Load(filepath.Join(d, session.CatalogFileName))
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			table, err := binding.Load(filepath.Join(d, binding.FileName))
			if err != nil {
				return fmt.Errorf("load key map: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), newTheme().renderBindings(bindingRows(cat, table)))
			return nil
		},
	}
}
