package theme

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains all shared terminal styles
type Styles struct {
	// Text styles
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Clock    lipgloss.Style

	// Session states
	Idle    lipgloss.Style
	Working lipgloss.Style
	OnBreak lipgloss.Style

	// Help and hints
	Help    lipgloss.Style
	HelpKey lipgloss.Style

	// Layout
	Card lipgloss.Style

	// Progress indicators
	ProgressActive   lipgloss.Style
	ProgressInactive lipgloss.Style

	// Status indicators
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
}

var (
	defaultStyles *Styles
	once          sync.Once
)

// Default returns the singleton default Styles instance
func Default() *Styles {
	once.Do(func() {
		defaultStyles = newStyles()
	})
	return defaultStyles
}

func newStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(White).
			Background(Teal).
			Padding(0, 1),

		Subtitle: lipgloss.NewStyle().
			Foreground(BrightTeal).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(LightGray),

		Muted: lipgloss.NewStyle().
			Foreground(DimGray),

		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(White),

		Clock: lipgloss.NewStyle().
			Bold(true).
			Foreground(BrightTeal),

		Idle: lipgloss.NewStyle().
			Foreground(DimGray).
			Bold(true),

		Working: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		OnBreak: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Help: lipgloss.NewStyle().
			Foreground(DimGray),

		HelpKey: lipgloss.NewStyle().
			Foreground(BrightTeal).
			Bold(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DarkTeal).
			Padding(1, 2),

		ProgressActive: lipgloss.NewStyle().
			Foreground(Success),

		ProgressInactive: lipgloss.NewStyle().
			Foreground(DarkGray),

		Success: lipgloss.NewStyle().
			Foreground(Success),

		Warning: lipgloss.NewStyle().
			Foreground(Warning),

		Error: lipgloss.NewStyle().
			Foreground(Error),

		Info: lipgloss.NewStyle().
			Foreground(Info),
	}
}
