package domain

import "time"

// NextBreakReminder returns when the next break reminder is due. Reminders
// only run while working and not on a break, and only when enabled. The
// interval counts from the latest of the work start, the end of the last
// break and the last reminder shown.
func NextBreakReminder(s Session, settings Settings) (time.Time, bool) {
	if !settings.BreakReminderEnabled || settings.BreakReminderInterval <= 0 {
		return time.Time{}, false
	}
	if s.State() != StateWorking {
		return time.Time{}, false
	}

	anchor := s.LastBreakEnd()
	if s.LastBreakReminder.After(anchor) {
		anchor = s.LastBreakReminder
	}
	return anchor.Add(settings.ReminderInterval()), true
}

// BreakReminderDue reports whether a reminder should be shown at now.
func BreakReminderDue(s Session, settings Settings, now time.Time) bool {
	due, ok := NextBreakReminder(s, settings)
	return ok && !now.Before(due)
}
