package components

import (
	"strings"
	"testing"
	"time"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		work, goal time.Duration
		want       int
	}{
		{4 * time.Hour, 8 * time.Hour, 50},
		{9 * time.Hour, 8 * time.Hour, 112},
		{time.Hour, 0, 0},
	}
	for _, tt := range tests {
		if got := Percent(tt.work, tt.goal); got != tt.want {
			t.Errorf("Percent(%v, %v) = %d, want %d", tt.work, tt.goal, got, tt.want)
		}
	}
}

func TestGoalBar_FillsProportionally(t *testing.T) {
	bar := NewGoalBar(20)
	view := bar.View(4*time.Hour, 8*time.Hour)
	if got := strings.Count(view, "█"); got != 10 {
		t.Errorf("filled cells = %d, want 10", got)
	}
	if got := strings.Count(bar.View(10*time.Hour, 8*time.Hour), "░"); got != 0 {
		t.Errorf("overtime should fill the bar, %d empty cells left", got)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Errorf("Sparkline(nil) = %q", got)
	}
	if got := Sparkline([]float64{0, 7}); got != "▁█" {
		t.Errorf("Sparkline(0,7) = %q, want ▁█", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); got != "▅▅▅" {
		t.Errorf("flat Sparkline = %q, want ▅▅▅", got)
	}
}

func TestBarChart_ScalesToLargest(t *testing.T) {
	chart := NewBarChart(10)
	view := chart.View([]Bar{
		{Label: "Mon", Value: 8 * time.Hour, Text: "8h 0m"},
		{Label: "Tue", Value: 4 * time.Hour, Text: "4h 0m"},
	})
	lines := strings.Split(view, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if strings.Count(lines[0], "█") != 10 || strings.Count(lines[1], "█") != 5 {
		t.Errorf("unexpected bar lengths:\n%s", view)
	}
	if !strings.Contains(chart.View(nil), "no data") {
		t.Error("empty chart should say so")
	}
}
