package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bedjig/pkg/bed"
	"github.com/matzehuels/bedjig/pkg/compare"
	"github.com/matzehuels/bedjig/pkg/errors"
	pkgio "github.com/matzehuels/bedjig/pkg/io"
	"github.com/matzehuels/bedjig/pkg/report"
)

// compareCommand creates the compare command.
func (c *CLI) compareCommand() *cobra.Command {
	var (
		sortBy      string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "compare <config>...",
		Short: "Compare bed configurations side by side",
		Long: `Compute every configuration and rank them in one table. The cheapest
configuration that passes the deflection check is marked with a star.

With --interactive the table opens in a browser where the sort order can be
changed and each configuration's cut list inspected.`,
		Example: `  bedjig compare budget.toml oak.toml three-runners.toml
  bedjig compare *.toml --sort sturdiness
  bedjig compare *.toml -i`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := compare.ParseSortKey(sortBy)
			if err != nil {
				return err
			}
			entries, err := loadComparison(args)
			if err != nil {
				return err
			}
			compare.Sort(entries, key)
			loggerFromContext(cmd.Context()).Debug("compared configurations", "count", len(entries), "sort", key)

			if interactive {
				_, err := tea.NewProgram(NewCompareModel(entries, key)).Run()
				return err
			}
			fmt.Println(compareTable(entries, -1))
			printBest(entries)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sortBy, "sort", "s", string(compare.ByPrice), "sort by: price, sturdiness, volume, name")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the comparison interactively")

	keys := make([]string, len(compare.SortKeys))
	for i, k := range compare.SortKeys {
		keys[i] = string(k)
	}
	_ = cmd.RegisterFlagCompletionFunc("sort", cobra.FixedCompletions(keys, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// loadComparison reads and validates every configuration. Unnamed
// configurations are named after their file.
func loadComparison(paths []string) ([]compare.Entry, error) {
	configs := make([]bed.Config, 0, len(paths))
	for _, path := range paths {
		cfg, err := pkgio.ImportBedConfig(path)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
		}
		if strings.TrimSpace(cfg.Name) == "" {
			cfg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		warnUnknownMaterial(cfg.MaterialID)
		configs = append(configs, cfg)
	}
	return compare.Build(configs), nil
}

// compareTable renders entries as a table. The row at cursor is highlighted;
// pass -1 for none.
func compareTable(entries []compare.Entry, cursor int) string {
	best, hasBest := compare.Best(entries)

	rows := make([][]string, len(entries))
	for i, e := range entries {
		m := e.Metrics()
		mark := " "
		if hasBest && e.Name == best.Name {
			mark = iconBest
		}
		sturdy := iconSuccess
		if !m.IsSturdy {
			sturdy = iconError
		}
		rows[i] = []string{
			mark,
			e.Name,
			m.Material.Name,
			fmt.Sprintf("%d", m.RunnerCount),
			fmt.Sprintf("%d", m.SlatCount),
			report.FormatPrice(m.TotalPrice),
			report.FormatVolume(m.TotalVolumeM3),
			report.FormatDeflection(m.DeflectionMm),
			fmt.Sprintf("%d", m.SturdinessScore),
			sturdy,
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Configuration", "Material", "Runners", "Slats", "Price", "Volume", "Deflection", "Score", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < 0 || row >= len(entries) {
				return base
			}
			e := entries[row]
			switch {
			case col == 9 && e.Metrics().IsSturdy:
				base = base.Foreground(colorGreen)
			case col == 9:
				base = base.Foreground(colorRed)
			case col == 0:
				base = base.Foreground(colorYellow)
			case col >= 3:
				base = base.Align(lipgloss.Right)
			}
			if row == cursor {
				return base.Bold(true).Foreground(colorCyan)
			}
			return base
		}).
		Render()
}

// printBest prints the recommendation line below the table.
func printBest(entries []compare.Entry) {
	best, ok := compare.Best(entries)
	if !ok {
		printWarning("No configuration passes the deflection check")
		return
	}
	printInfo("%s %s is the cheapest sturdy frame at %s",
		iconBest, StyleTitle.Render(best.Name), StyleNumber.Render(report.FormatPrice(best.Metrics().TotalPrice)))
}
