package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/bedjig/pkg/compare"
	"github.com/matzehuels/bedjig/pkg/report"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// CompareModel - Interactive configuration comparison
// =============================================================================

// CompareModel is the bubbletea model for browsing a comparison.
type CompareModel struct {
	Entries []compare.Entry
	Key     compare.SortKey
	Cursor  int
	Detail  bool // show the cut list of the entry under the cursor
}

// NewCompareModel creates a comparison browser over entries sorted by key.
func NewCompareModel(entries []compare.Entry, key compare.SortKey) CompareModel {
	return CompareModel{Entries: entries, Key: key}
}

func (m CompareModel) Init() tea.Cmd {
	return nil
}

func (m CompareModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Entries)-1 {
			m.Cursor++
		}
	case "enter", " ":
		m.Detail = !m.Detail
	case "s":
		m = m.resort(nextSortKey(m.Key))
	}
	return m, nil
}

// resort orders a copy of the entries by key, keeping the cursor on the
// same configuration.
func (m CompareModel) resort(key compare.SortKey) CompareModel {
	var current string
	if m.Cursor < len(m.Entries) {
		current = m.Entries[m.Cursor].Name
	}

	entries := make([]compare.Entry, len(m.Entries))
	copy(entries, m.Entries)
	compare.Sort(entries, key)

	m.Entries, m.Key = entries, key
	for i, e := range entries {
		if e.Name == current {
			m.Cursor = i
			break
		}
	}
	return m
}

func nextSortKey(k compare.SortKey) compare.SortKey {
	for i, key := range compare.SortKeys {
		if key == k {
			return compare.SortKeys[(i+1)%len(compare.SortKeys)]
		}
	}
	return compare.SortKeys[0]
}

func (m CompareModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Compare Configurations"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("sorted by %s", m.Key)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ cut list  s sort  q quit"))
	b.WriteString("\n\n")

	if len(m.Entries) == 0 {
		b.WriteString(listDimStyle.Render("No configurations"))
		return b.String()
	}

	b.WriteString(compareTable(m.Entries, m.Cursor))
	b.WriteString("\n")

	if m.Detail {
		e := m.Entries[m.Cursor]
		b.WriteString("\n")
		b.WriteString(report.Text(report.Build(e.Config, e.Layout, "")))
	}

	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))
	return b.String()
}
