package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const (
	colorAccent  = lipgloss.Color("#4ade80")
	colorMuted   = lipgloss.Color("#909090")
	colorBorder  = lipgloss.Color("#333333")
	colorWarning = lipgloss.Color("#fbbf24")
	colorError   = lipgloss.Color("#f87171")
)

type theme struct {
	title lipgloss.Style
	label lipgloss.Style
	muted lipgloss.Style
	ok    lipgloss.Style
	warn  lipgloss.Style
	err   lipgloss.Style
}

func newTheme() theme {
	return theme{
		title: lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		label: lipgloss.NewStyle().Width(10),
		muted: lipgloss.NewStyle().Foreground(colorMuted),
		ok:    lipgloss.NewStyle().Foreground(colorAccent),
		warn:  lipgloss.NewStyle().Foreground(colorWarning),
		err:   lipgloss.NewStyle().Foreground(colorError).Bold(true),
	}
}

func (t theme) renderCheck(r checkReport) string {
	lines := []string{t.title.Render("MMAccel check") + " " + t.muted.Render(r.Dir), ""}

	switch {
	case r.CatalogErr != nil:
		lines = append(lines, t.label.Render("catalog")+t.err.Render("error: "+r.CatalogErr.Error()))
	default:
		lines = append(lines, t.label.Render("catalog")+t.ok.Render(fmt.Sprintf("%d actions", r.Actions)))
	}

	switch {
	case r.KeyMapMissing:
		lines = append(lines, t.label.Render("key map")+t.warn.Render("missing, defaults will be written"))
	case r.KeyMapErr != nil:
		lines = append(lines, t.label.Render("key map")+t.err.Render("error: "+r.KeyMapErr.Error()))
	default:
		lines = append(lines, t.label.Render("key map")+t.ok.Render(fmt.Sprintf("%d entries, %d chords", r.Entries, r.Bindings)))
	}

	for _, w := range r.Warnings {
		lines = append(lines, t.label.Render("")+t.warn.Render("warning: "+w))
	}
	return strings.Join(lines, "\n")
}

func (t theme) renderBindings(rows []bindingRow) string {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers("CHORD", "ACTION", "TARGET", "NOTE").
		StyleFunc(func(row, _ int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Foreground(colorAccent).Bold(true)
			}
			if rows[row].Note != "" {
				return s.Foreground(colorMuted)
			}
			return s
		})
	for _, r := range rows {
		tbl.Row(r.Chord, r.Action, r.Target, r.Note)
	}
	return tbl.String()
}
