// Package notify renders user-facing notifications on the terminal.
package notify

import (
	"fmt"
	"io"

	"github.com/emiliopalmerini/worktime/internal/pkg/tui/theme"
	"github.com/emiliopalmerini/worktime/internal/ports"
)

// Terminal prints styled one-line notifications to w.
type Terminal struct {
	w      io.Writer
	styles *theme.Styles
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w, styles: theme.Default()}
}

func (t *Terminal) Notify(message string, severity ports.Severity) {
	icon, style := "•", t.styles.Info
	switch severity {
	case ports.SeveritySuccess:
		icon, style = "✓", t.styles.Success
	case ports.SeverityWarning:
		icon, style = "!", t.styles.Warning
	case ports.SeverityError:
		icon, style = "✗", t.styles.Error
	}
	fmt.Fprintln(t.w, style.Render(icon+" "+message))
}

// Recorder keeps notifications in memory.
type Recorder struct {
	Messages []Message
}

// Message is one recorded notification.
type Message struct {
	Text     string
	Severity ports.Severity
}

func (r *Recorder) Notify(message string, severity ports.Severity) {
	r.Messages = append(r.Messages, Message{Text: message, Severity: severity})
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Message, bool) {
	if len(r.Messages) == 0 {
		return Message{}, false
	}
	return r.Messages[len(r.Messages)-1], true
}
