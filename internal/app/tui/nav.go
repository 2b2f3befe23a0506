package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/emiliopalmerini/worktime/internal/pkg/tui/theme"
)

// NavItem represents a navigation item
type NavItem struct {
	Key    string
	Label  string
	Active bool
}

// NavBar renders a navigation bar
type NavBar struct {
	Items  []NavItem
	styles *theme.Styles
}

// NewNavBar creates a new navigation bar
func NewNavBar(items []NavItem) *NavBar {
	return &NavBar{
		Items:  items,
		styles: theme.Default(),
	}
}

// View renders the navigation bar as toggle-style tabs
func (n NavBar) View() string {
	var items []string

	for _, item := range n.Items {
		if item.Active {
			items = append(items, n.styles.Title.Render(item.Label))
			continue
		}
		key := n.styles.Muted.Render("[" + item.Key + "]")
		items = append(items, key+" "+n.styles.Body.Render(item.Label))
	}

	sep := lipgloss.NewStyle().
		Foreground(theme.DarkGray).
		Render("  /  ")

	return strings.Join(items, sep)
}
