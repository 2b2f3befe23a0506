package theme

import "github.com/charmbracelet/lipgloss"

// Color palette built around the default category teal
var (
	// Primary colors
	Teal       = lipgloss.Color("#0d9488")
	BrightTeal = lipgloss.Color("#2dd4bf")
	DarkTeal   = lipgloss.Color("#115e59")

	// Neutrals
	White     = lipgloss.Color("#FFFFFF")
	LightGray = lipgloss.Color("#9CA3AF")
	DimGray   = lipgloss.Color("#6B7280")
	DarkGray  = lipgloss.Color("#374151")

	// Semantic colors
	Success = lipgloss.Color("#10b981")
	Warning = lipgloss.Color("#f59e0b")
	Error   = lipgloss.Color("#EF4444")
	Info    = lipgloss.Color("#3B82F6")
)
