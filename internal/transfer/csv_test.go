package transfer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/emiliopalmerini/worktime/internal/domain"
)

func TestWriteCSV(t *testing.T) {
	entries := []domain.HistoryEntry{
		workday(t, "b", 11, 17),
		workday(t, "a", 10, 17, domain.Break{Start: day(10, 12, 0), End: day(10, 12, 30)}),
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, entries, day(12, 14, 5)); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "\ufeff") {
		t.Fatal("report does not start with a byte order mark")
	}

	want := []string{
		"WORK TIME REPORT",
		"Exported: 12.03.2025 14:05",
		"",
		"Date;Weekday;Start;End;Breaks;Break time;Work time",
		"10.03.2025;Monday;09:00;17:00;12:00-12:30;30m;7h 30m",
		"11.03.2025;Tuesday;09:00;17:00;-;0m;8h 0m",
		"",
		"SUMMARY",
		"Days;2",
		"Total work;15h 30m",
	}
	got := strings.Split(strings.TrimSuffix(strings.TrimPrefix(out, "\ufeff"), "\n"), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil, day(12, 0, 0)); !errors.Is(err, ErrNothingSelected) {
		t.Errorf("WriteCSV() error = %v, want ErrNothingSelected", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes for an empty report", buf.Len())
	}
}

func TestFormatBreaks(t *testing.T) {
	tests := []struct {
		name   string
		breaks []domain.Break
		want   string
	}{
		{"none", nil, "-"},
		{"one", []domain.Break{{Start: day(1, 12, 0), End: day(1, 12, 30)}}, "12:00-12:30"},
		{"two", []domain.Break{
			{Start: day(1, 10, 0), End: day(1, 10, 15)},
			{Start: day(1, 15, 5), End: day(1, 15, 20)},
		}, "10:00-10:15, 15:05-15:20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatBreaks(tt.breaks); got != tt.want {
				t.Errorf("FormatBreaks() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFileNames(t *testing.T) {
	now := day(9, 8, 0)
	if got := CSVFileName(now); got != "worktime_2025-03-09.csv" {
		t.Errorf("CSVFileName() = %q", got)
	}
	if got := JSONFileName(now); got != "worktime_backup_2025-03-09.json" {
		t.Errorf("JSONFileName() = %q", got)
	}
}
