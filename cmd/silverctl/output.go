package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rkaran/silverdash/internal/format"
	"github.com/rkaran/silverdash/internal/model"
)

var (
	silver = lipgloss.Color("#C0C0C0")
	warn   = lipgloss.Color("#E5A50A")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(silver)
	labelStyle = lipgloss.NewStyle().Faint(true)
	warnStyle  = lipgloss.NewStyle().Foreground(warn)
)

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, titleStyle.Render(title))
}

func printMetrics(w io.Writer, metrics []model.Metric) {
	for _, m := range metrics {
		line := labelStyle.Render(m.Label+":") + " " + m.Value
		if m.Delta != "" {
			line += " (" + m.Delta + ")"
		}
		fmt.Fprintln(w, line)
	}
}

func printWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintln(w, warnStyle.Render("! "+msg))
	}
}

func printTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(w, t.String())
}

func stateRows(rows []model.StatePurchase) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.State, format.Number(r.QuantityKg, 0)})
	}
	return out
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
