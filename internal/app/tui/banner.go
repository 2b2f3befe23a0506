package tui

import (
	"github.com/emiliopalmerini/worktime/internal/ports"
)

// Banner is a Notifier that keeps the latest notification for display
// inside the live view instead of writing to the terminal.
type Banner struct {
	Message  string
	Severity ports.Severity
}

func (b *Banner) Notify(message string, severity ports.Severity) {
	b.Message = message
	b.Severity = severity
}

func (b *Banner) Clear() {
	b.Message = ""
	b.Severity = ""
}
