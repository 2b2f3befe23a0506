package domain

import (
	"time"

	"github.com/emiliopalmerini/worktime/internal/util"
)

// TotalBreakTime sums the durations of completed breaks.
func TotalBreakTime(breaks []Break) time.Duration {
	var total time.Duration
	for _, b := range breaks {
		total += b.Duration()
	}
	return total
}

// CurrentBreakTime returns how long the open break has lasted at now,
// or 0 when the session is not on a break.
func CurrentBreakTime(s Session, now time.Time) time.Duration {
	if !s.OnBreak || s.CurrentBreakStart.IsZero() {
		return 0
	}
	return now.Sub(s.CurrentBreakStart)
}

// WorkTime returns the work time accrued by s at now: elapsed time from the
// work start to the work end (or now while open), minus completed breaks and
// the open break. Negative results from skewed clocks or malformed data are
// clamped to zero.
func WorkTime(s Session, now time.Time) time.Duration {
	if s.WorkStart.IsZero() {
		return 0
	}

	end := now
	if !s.WorkEnd.IsZero() {
		end = s.WorkEnd
	}

	elapsed := end.Sub(s.WorkStart)
	work := elapsed - TotalBreakTime(s.Breaks) - CurrentBreakTime(s, now)
	if work < 0 {
		return 0
	}
	return work
}

// Snapshot is the rendered state of a session at one instant, as consumed by
// a status line or a live view.
type Snapshot struct {
	State      SessionState
	WorkStart  time.Time
	Work       time.Duration
	Break      time.Duration
	TotalBreak time.Duration
	WorkClock  util.Clock
	BreakClock util.Clock
	Breaks     []Break
	Note       string
	CategoryID string
}

// TakeSnapshot evaluates s at now.
func TakeSnapshot(s Session, now time.Time) Snapshot {
	work := WorkTime(s, now)
	current := CurrentBreakTime(s, now)
	return Snapshot{
		State:      s.State(),
		WorkStart:  s.WorkStart,
		Work:       work,
		Break:      current,
		TotalBreak: TotalBreakTime(s.Breaks) + current,
		WorkClock:  util.FormatDuration(work),
		BreakClock: util.FormatDuration(current),
		Breaks:     append([]Break(nil), s.Breaks...),
		Note:       s.Note,
		CategoryID: s.CategoryID,
	}
}
