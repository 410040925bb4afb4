package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var cutListHeaders = []string{"Part", "Qty", "L x W x H (mm)", "Notches", "Notch W x D", "First", "Pitch"}

// Text renders r as a plain-text cut list with an unstyled table, suitable
// for a .txt file or a pipe.
func Text(r Report) string {
	var b strings.Builder

	b.WriteString(r.Title + "\n")
	if r.Material != "" {
		fmt.Fprintf(&b, "Material: %s\n", r.Material)
	}
	if r.Date != "" {
		fmt.Fprintf(&b, "Date: %s\n", r.Date)
	}
	b.WriteString("\n")

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(cutListHeaders...).
		Rows(tableRows(r)...)
	b.WriteString(t.String())
	b.WriteString("\n\n")

	width := 0
	for _, s := range r.Totals {
		width = max(width, len(s.Label))
	}
	for _, s := range r.Totals {
		fmt.Fprintf(&b, "%-*s  %s\n", width, s.Label, s.Value)
	}
	b.WriteString("\n" + r.Verdict + "\n")
	return b.String()
}

func tableRows(r Report) [][]string {
	rows := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		pitch := "-"
		if row.Notches > 1 {
			pitch = FormatMM(row.NotchPitch)
		}
		rows[i] = []string{
			row.Part,
			strconv.Itoa(row.Qty),
			fmt.Sprintf("%s x %s x %s", FormatMM(row.Length), FormatMM(row.Width), FormatMM(row.Height)),
			strconv.Itoa(row.Notches),
			row.NotchSize,
			FormatMM(row.NotchStart),
			pitch,
		}
	}
	return rows
}
