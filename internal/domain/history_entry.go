package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/emiliopalmerini/worktime/internal/util"
)

// HistoryCapacity is the maximum number of entries kept in the history log.
const HistoryCapacity = 100

// HistoryEntry is the finalized record of one completed session.
// Category name and color are snapshots taken when the entry was written, so
// later category edits do not change how history is displayed.
//
// Invariant: TotalWork = max(0, (WorkEnd - WorkStart) - TotalBreak).
type HistoryEntry struct {
	ID             string
	WorkStart      time.Time
	WorkEnd        time.Time
	StartTime      string
	EndTime        string
	TotalWork      time.Duration
	TotalWorkText  string
	Breaks         []Break
	BreaksCount    int
	TotalBreak     time.Duration
	TotalBreakText string
	Note           string
	CategoryID     string
	CategoryName   string
	CategoryColor  string
	ModifiedAt     time.Time // zero unless edited
}

// Modified reports whether the entry was edited after it was recorded.
func (e HistoryEntry) Modified() bool {
	return !e.ModifiedAt.IsZero()
}

// NewHistoryEntry finalizes an ended session into a history entry.
func NewHistoryEntry(id string, s Session, cat Category) (HistoryEntry, error) {
	if s.Working || s.WorkStart.IsZero() || s.WorkEnd.IsZero() {
		return HistoryEntry{}, fmt.Errorf("session has not ended: %w", ErrInvalidTransition)
	}

	e := HistoryEntry{
		ID:            id,
		WorkStart:     s.WorkStart,
		WorkEnd:       s.WorkEnd,
		Breaks:        append([]Break(nil), s.Breaks...),
		Note:          s.Note,
		CategoryID:    s.CategoryID,
		CategoryName:  cat.Name,
		CategoryColor: cat.Color,
	}
	e.derive()
	return e, nil
}

// derive recomputes every field that follows from times and breaks.
func (e *HistoryEntry) derive() {
	e.StartTime = util.FormatClockTime(e.WorkStart)
	e.EndTime = util.FormatClockTime(e.WorkEnd)
	e.BreaksCount = len(e.Breaks)
	e.TotalBreak = TotalBreakTime(e.Breaks)
	e.TotalBreakText = util.FormatDurationReadable(e.TotalBreak)

	e.TotalWork = e.WorkEnd.Sub(e.WorkStart) - e.TotalBreak
	if e.TotalWork < 0 {
		e.TotalWork = 0
	}
	e.TotalWorkText = util.FormatDurationReadable(e.TotalWork)
}

// ClockTime is an hour and minute of the day, as entered on an edit form.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "HH:MM".
func ParseClockTime(s string) (ClockTime, error) {
	h, m, err := util.ParseClock(s)
	if err != nil {
		return ClockTime{}, err
	}
	return ClockTime{Hour: h, Minute: m}, nil
}

// ClockOf returns the hour and minute of t.
func ClockOf(t time.Time) ClockTime {
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On places the clock time on the calendar day of date, in date's location.
// Seconds are zeroed.
func (c ClockTime) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, date.Location())
}

// BreakEdit is one break as entered on an edit form.
type BreakEdit struct {
	Start ClockTime
	End   ClockTime
}

// EditRequest carries the edit-form values for one history entry.
type EditRequest struct {
	Date       time.Time
	Start      ClockTime
	End        ClockTime
	Breaks     []BreakEdit
	Note       string
	CategoryID string
}

// EditRequestFor pre-fills an edit request with the current values of e.
func EditRequestFor(e HistoryEntry) EditRequest {
	req := EditRequest{
		Date:       e.WorkStart,
		Start:      ClockOf(e.WorkStart),
		End:        ClockOf(e.WorkEnd),
		Note:       e.Note,
		CategoryID: e.CategoryID,
	}
	for _, b := range e.Breaks {
		req.Breaks = append(req.Breaks, BreakEdit{Start: ClockOf(b.Start), End: ClockOf(b.End)})
	}
	return req
}

// ApplyEdit returns e rewritten from req: start, end and every break are
// rebuilt from the request date and their clock times, derived totals are
// recomputed, the category snapshot is refreshed from cat and ModifiedAt is
// set to now. Breaks must each end after they start and must not overlap.
func ApplyEdit(e HistoryEntry, req EditRequest, cat Category, now time.Time) (HistoryEntry, error) {
	breaks := make([]Break, 0, len(req.Breaks))
	for i, b := range req.Breaks {
		br := Break{Start: b.Start.On(req.Date), End: b.End.On(req.Date)}
		if br.End.Before(br.Start) {
			return e, fmt.Errorf("break %d ends (%s) before it starts (%s): %w", i+1, b.End, b.Start, ErrInvalidBreak)
		}
		breaks = append(breaks, br)
	}
	if err := ValidateBreaks(breaks); err != nil {
		return e, err
	}

	categoryID := req.CategoryID
	if categoryID == "" {
		categoryID = e.CategoryID
	}

	out := e
	out.WorkStart = req.Start.On(req.Date)
	out.WorkEnd = req.End.On(req.Date)
	out.Breaks = breaks
	out.Note = req.Note
	out.CategoryID = categoryID
	out.CategoryName = cat.Name
	out.CategoryColor = cat.Color
	out.ModifiedAt = now
	out.derive()
	return out, nil
}

// ValidateBreaks checks that every break ends no earlier than it starts and
// that breaks, taken in start order, do not overlap.
func ValidateBreaks(breaks []Break) error {
	sorted := append([]Break(nil), breaks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})
	for i, b := range sorted {
		if b.End.Before(b.Start) {
			return fmt.Errorf("break %s-%s ends before it starts: %w",
				util.FormatClockTime(b.Start), util.FormatClockTime(b.End), ErrInvalidBreak)
		}
		if i > 0 && b.Start.Before(sorted[i-1].End) {
			return fmt.Errorf("break %s-%s overlaps the previous break: %w",
				util.FormatClockTime(b.Start), util.FormatClockTime(b.End), ErrInvalidBreak)
		}
	}
	return nil
}
