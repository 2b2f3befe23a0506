package transfer

import (
	"testing"
	"time"

	"github.com/emiliopalmerini/worktime/internal/domain"
)

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Debug(string)     {}
func (l *recordingLogger) Warn(msg string)  { l.warnings = append(l.warnings, msg) }
func (l *recordingLogger) Error(msg string) { l.warnings = append(l.warnings, msg) }

func day(d, h, m int) time.Time {
	return time.Date(2025, 3, d, h, m, 0, 0, time.Local)
}

// workday records a session on March d from 09:00 to endHour with the given breaks.
func workday(t *testing.T, id string, d, endHour int, breaks ...domain.Break) domain.HistoryEntry {
	t.Helper()
	var s domain.Session
	if err := s.Start(day(d, 9, 0), domain.DefaultCategoryID); err != nil {
		t.Fatal(err)
	}
	for _, b := range breaks {
		_ = s.BeginBreak(b.Start)
		_ = s.FinishBreak(b.End)
	}
	if err := s.Finish(day(d, endHour, 0)); err != nil {
		t.Fatal(err)
	}
	e, err := domain.NewHistoryEntry(id, s, domain.DefaultCategories()[0])
	if err != nil {
		t.Fatal(err)
	}
	return e
}
