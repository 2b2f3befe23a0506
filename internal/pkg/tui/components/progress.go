package components

import (
	"strings"
	"time"

	"github.com/emiliopalmerini/worktime/internal/pkg/tui/theme"
)

// GoalBar shows work done against the daily norm as a filled bar.
type GoalBar struct {
	Width  int
	styles *theme.Styles
}

// NewGoalBar creates a goal bar width cells wide.
func NewGoalBar(width int) GoalBar {
	if width < 10 {
		width = 10
	}
	return GoalBar{Width: width, styles: theme.Default()}
}

// Percent returns work as a whole percentage of goal, 0 when goal is unset.
func Percent(work, goal time.Duration) int {
	if goal <= 0 {
		return 0
	}
	return int(work * 100 / goal)
}

// View renders the bar. Progress beyond the goal fills the bar completely.
func (g GoalBar) View(work, goal time.Duration) string {
	pct := Percent(work, goal)
	if pct > 100 {
		pct = 100
	}
	filled := pct * g.Width / 100
	return g.styles.ProgressActive.Render(strings.Repeat("█", filled)) +
		g.styles.ProgressInactive.Render(strings.Repeat("░", g.Width-filled))
}
