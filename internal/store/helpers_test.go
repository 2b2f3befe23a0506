package store

import (
	"fmt"
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

func entry(t *testing.T, n int) domain.HistoryEntry {
	t.Helper()
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local).AddDate(0, 0, n)
	s := domain.Session{}
	if err := s.Start(start, domain.DefaultCategoryID); err != nil {
		t.Fatal(err)
	}
	if err := s.Finish(start.Add(8 * time.Hour)); err != nil {
		t.Fatal(err)
	}
	e, err := domain.NewHistoryEntry(fmt.Sprintf("e%d", n), s, domain.DefaultCategories()[0])
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func ids(entries []domain.HistoryEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}
