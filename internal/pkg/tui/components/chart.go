package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/emiliopalmerini/worktime/internal/pkg/tui/theme"
)

// Bar is one row of a bar chart.
type Bar struct {
	Label string
	Value time.Duration
	Text  string
	// Color is a CSS-style color; empty uses the theme color.
	Color string
}

// BarChart renders horizontal bars scaled to the largest value.
type BarChart struct {
	Width  int
	styles *theme.Styles
}

func NewBarChart(width int) BarChart {
	if width < 10 {
		width = 10
	}
	return BarChart{Width: width, styles: theme.Default()}
}

func (c BarChart) View(bars []Bar) string {
	if len(bars) == 0 {
		return c.styles.Muted.Render("no data")
	}

	var max time.Duration
	labelWidth := 0
	for _, b := range bars {
		if b.Value > max {
			max = b.Value
		}
		if w := lipgloss.Width(b.Label); w > labelWidth {
			labelWidth = w
		}
	}

	var sb strings.Builder
	for i, b := range bars {
		n := 0
		if max > 0 {
			n = int(int64(b.Value) * int64(c.Width) / int64(max))
		}
		style := c.styles.ProgressActive
		if b.Color != "" {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color))
		}
		fmt.Fprintf(&sb, "%-*s %s %s", labelWidth, b.Label, style.Render(strings.Repeat("█", n)), c.styles.Muted.Render(b.Text))
		if i < len(bars)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Sparkline renders values as a row of Unicode block characters.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	result := make([]rune, len(values))
	if max == min {
		for i := range result {
			result[i] = blocks[len(blocks)/2]
		}
		return string(result)
	}

	for i, v := range values {
		idx := int((v - min) / (max - min) * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		result[i] = blocks[idx]
	}
	return string(result)
}
