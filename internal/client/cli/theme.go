package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/jobtracker/internal/client/models"
)

// theme holds the styles of the terminal UI. Styles are bound to the
// output writer's renderer, so plain writers get plain text.
type theme struct {
	title   lipgloss.Style
	faint   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	info    lipgloss.Style
	label   lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	border  lipgloss.Style
	bar     lipgloss.Style
	status  map[string]lipgloss.Style
}

func newTheme(w io.Writer) *theme {
	r := lipgloss.NewRenderer(w)
	statusColors := map[string]lipgloss.Color{
		models.StatusApplied:     lipgloss.Color("33"),
		models.StatusInterviewed: lipgloss.Color("99"),
		models.StatusOffered:     lipgloss.Color("35"),
		models.StatusRejected:    lipgloss.Color("196"),
		models.StatusHired:       lipgloss.Color("214"),
	}
	status := make(map[string]lipgloss.Style, len(statusColors))
	for s, c := range statusColors {
		status[s] = r.NewStyle().Foreground(c)
	}

	return &theme{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		faint:   r.NewStyle().Foreground(lipgloss.Color("243")),
		success: r.NewStyle().Foreground(lipgloss.Color("35")),
		failure: r.NewStyle().Foreground(lipgloss.Color("196")),
		info:    r.NewStyle().Foreground(lipgloss.Color("33")),
		label:   r.NewStyle().Bold(true).Width(18),
		header:  r.NewStyle().Bold(true).Padding(0, 1),
		cell:    r.NewStyle().Padding(0, 1),
		border:  r.NewStyle().Foreground(lipgloss.Color("240")),
		bar:     r.NewStyle().Foreground(lipgloss.Color("99")),
		status:  status,
	}
}

// Status renders an application status in its color.
func (t *theme) Status(s string) string {
	if st, ok := t.status[s]; ok {
		return st.Render(s)
	}
	return s
}

// Table renders rows under headers.
func (t *theme) Table(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return t.faint.Render("(none)")
	}
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(t.border).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.header
			}
			return t.cell
		}).
		Headers(headers...).
		Rows(rows...)
	return tbl.String()
}

// Fields renders label/value pairs, skipping empty values.
func (t *theme) Fields(pairs ...[2]string) string {
	var b strings.Builder
	for _, p := range pairs {
		if p[1] == "" {
			continue
		}
		fmt.Fprintf(&b, "%s%s\n", t.label.Render(p[0]+":"), p[1])
	}
	return strings.TrimRight(b.String(), "\n")
}

// Bar draws a horizontal bar of n out of max cells, width cells wide.
func (t *theme) Bar(n, max, width int) string {
	if max <= 0 || n <= 0 {
		return ""
	}
	cells := n * width / max
	if cells == 0 {
		cells = 1
	}
	return t.bar.Render(strings.Repeat("█", cells))
}
