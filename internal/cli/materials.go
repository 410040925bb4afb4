package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bedjig/pkg/bed"
)

// materialsCommand creates the materials command.
func (c *CLI) materialsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "materials",
		Short: "List the wood catalog",
		Long: `List the materials known to the deflection check. The id goes into the
material_id field of a configuration or the --material flag. Unknown ids fall
back to the default material.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(materialsTable(bed.Materials()))
			return nil
		},
	}
}

func materialsTable(materials []bed.Material) string {
	rows := make([][]string, len(materials))
	for i, m := range materials {
		id := m.ID
		if id == bed.DefaultMaterialID {
			id += " (default)"
		}
		rows[i] = []string{
			id,
			m.Name,
			humanize.Comma(int64(m.Density)),
			humanize.Comma(int64(m.EModulus)),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Density kg/m³", "E-modulus N/mm²").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			switch col {
			case 0:
				return base.Foreground(colorCyan)
			case 2, 3:
				return base.Align(lipgloss.Right)
			}
			return base
		}).
		Render()
}

// completeMaterials completes --material with catalog ids.
func completeMaterials(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var ids []string
	for _, m := range bed.Materials() {
		ids = append(ids, m.ID+"\t"+m.Name)
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
