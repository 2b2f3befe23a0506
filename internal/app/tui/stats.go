package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/emiliopalmerini/worktime/internal/pkg/tui/components"
	"github.com/emiliopalmerini/worktime/internal/util"
)

func formatReadable(d time.Duration) string {
	return util.FormatDurationReadable(d)
}

func (a *App) statsView() string {
	label := a.styles.Subtitle.Render(strings.ToUpper(string(periods[a.period])))
	if a.statsErr != nil {
		return lipgloss.JoinVertical(lipgloss.Left, label, a.styles.Error.Render(a.statsErr.Error()))
	}
	if a.current == nil {
		return lipgloss.JoinVertical(lipgloss.Left, label, a.styles.Muted.Render("Loading..."))
	}
	s := a.current

	overtime := a.styles.Success.Render("+" + s.OvertimeText)
	if !s.IsOvertime {
		overtime = a.styles.Warning.Render("-" + s.OvertimeText)
	}

	lines := []string{
		label,
		"",
		fmt.Sprintf("%s %d", a.styles.Body.Render("Days worked "), s.DaysWorked),
		a.styles.Body.Render("Total work  ") + a.styles.Bold.Render(s.TotalWorkText),
		a.styles.Body.Render("Average     ") + s.AvgWorkText,
		a.styles.Body.Render("Breaks      ") + s.TotalBreakText,
		a.styles.Body.Render("Overtime    ") + overtime,
	}

	if len(s.CategoryBreakdown) > 0 {
		bars := make([]components.Bar, 0, len(s.CategoryBreakdown))
		for _, c := range s.CategoryBreakdown {
			bars = append(bars, components.Bar{
				Label: c.Name,
				Value: c.Total,
				Text:  fmt.Sprintf("%s (%d)", formatReadable(c.Total), c.Entries),
				Color: c.Color,
			})
		}
		lines = append(lines, "", a.styles.Subtitle.Render("By category"), components.NewBarChart(a.barWidth()).View(bars))
	}

	if points := s.ChartPoints(); len(points) > 0 {
		values := make([]float64, 0, len(points))
		for _, p := range points {
			values = append(values, p.Work.Hours())
		}
		lines = append(lines, "",
			a.styles.Subtitle.Render(fmt.Sprintf("Last %d sessions", len(points))),
			a.styles.Clock.Render(components.Sparkline(values)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
