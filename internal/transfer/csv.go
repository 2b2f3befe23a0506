// Package transfer writes history reports and backups and merges backups
// back into the store.
package transfer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/emiliopalmerini/worktime/internal/domain"
	"github.com/emiliopalmerini/worktime/internal/util"
)

// ErrNothingSelected is returned when a report is requested for no entries.
var ErrNothingSelected = errors.New("no entries selected for export")

// byteOrderMark lets spreadsheet apps detect UTF-8.
const byteOrderMark = "\ufeff"

var csvHeader = []string{"Date", "Weekday", "Start", "End", "Breaks", "Break time", "Work time"}

// CSVFileName is the default report file name for now.
func CSVFileName(now time.Time) string {
	return "worktime_" + util.FormatDateISO(now) + ".csv"
}

// FormatBreaks renders breaks as "HH:MM-HH:MM, ..." or "-" when there are none.
func FormatBreaks(breaks []domain.Break) string {
	if len(breaks) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(breaks))
	for _, b := range breaks {
		parts = append(parts, util.FormatClockTime(b.Start)+"-"+util.FormatClockTime(b.End))
	}
	return strings.Join(parts, ", ")
}

// WriteCSV writes a semicolon separated work time report of entries, given
// newest first as stored, with rows ordered oldest first and a summary of
// days and total work at the end.
func WriteCSV(w io.Writer, entries []domain.HistoryEntry, now time.Time) error {
	if len(entries) == 0 {
		return ErrNothingSelected
	}

	if _, err := io.WriteString(w, byteOrderMark); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	writer := csv.NewWriter(w)
	writer.Comma = ';'

	var totalWork time.Duration
	records := [][]string{
		{"WORK TIME REPORT"},
		{"Exported: " + util.FormatDateShort(now) + " " + util.FormatClockTime(now)},
		{},
		csvHeader,
	}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		totalWork += e.TotalWork
		records = append(records, []string{
			util.FormatDateShort(e.WorkStart),
			e.WorkStart.Weekday().String(),
			e.StartTime,
			e.EndTime,
			FormatBreaks(e.Breaks),
			e.TotalBreakText,
			e.TotalWorkText,
		})
	}
	records = append(records,
		[]string{},
		[]string{"SUMMARY"},
		[]string{"Days", strconv.Itoa(len(entries))},
		[]string{"Total work", util.FormatDurationReadable(totalWork)},
	)

	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
