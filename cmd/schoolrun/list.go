package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/schoolrun/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all playable variants",
	Long:  `Shows every registered variant of the game.`,
	Run:   runList,
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

// newTable is the bordered table used by list and times.
func newTable(headers ...string) *table.Table {
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cell
		})
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No variants available.")
		return
	}

	t := newTable("ID", "Title")
	for _, g := range games {
		t.Row(g.ID, g.Title)
	}
	fmt.Println(t)
	fmt.Println()
	fmt.Println("Run 'schoolrun play <id>' or 'schoolrun window <id>' to play.")
}
