package bench

import (
	"fmt"
	"sort"
	"strings"

	"snake-autopilot/game/manager"
	"snake-autopilot/game/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorAccent = lipgloss.Color("#2CD7C7")
	colorBorder = lipgloss.Color("#16858E")
	colorMuted  = lipgloss.Color("#2C4A54")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	mutedStyle  = cellStyle.Foreground(colorMuted)
)

var reportHeaders = []string{"ALGORITHM", "GAMES", "AVG", "MEDIAN", "MIN", "MAX", "AVG TICKS", "FILLED", "DEATHS"}

// Report renders one row per summary as a bordered table.
func Report(sums []manager.Summary) string {
	rows := make([][]string, 0, len(sums))
	for _, s := range sums {
		rows = append(rows, []string{
			s.Algorithm.Title(),
			fmt.Sprintf("%d", s.Games),
			fmt.Sprintf("%.2f", s.AverageScore),
			fmt.Sprintf("%.1f", s.MedianScore),
			fmt.Sprintf("%d", s.MinScore),
			fmt.Sprintf("%d", s.MaxScore),
			fmt.Sprintf("%.0f", s.AverageTicks),
			fmt.Sprintf("%d", s.Filled),
			formatDeaths(s.Deaths),
		})
	}

	last := len(reportHeaders) - 1
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(reportHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle.Bold(true)
			case col == last:
				return mutedStyle
			default:
				return numberStyle
			}
		})
	return t.Render()
}

func formatDeaths(deaths map[types.CollisionType]int) string {
	if len(deaths) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(deaths))
	for kind, n := range deaths {
		parts = append(parts, fmt.Sprintf("%s=%d", kind, n))
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}
