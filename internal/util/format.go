package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock is a duration split into zero-padded hour, minute and second fields,
// as shown on a running timer.
type Clock struct {
	Hours   string
	Minutes string
	Seconds string
}

// String renders the clock as HH:MM:SS.
func (c Clock) String() string {
	return c.Hours + ":" + c.Minutes + ":" + c.Seconds
}

// FormatDuration splits d into two-digit hour, minute and second strings.
// Sub-second remainders are truncated; negative durations render as zero.
// Hours are not wrapped: 100h renders as "100".
func FormatDuration(d time.Duration) Clock {
	if d < 0 {
		d = 0
	}
	totalSeconds := int64(d / time.Second)
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return Clock{
		Hours:   fmt.Sprintf("%02d", hours),
		Minutes: fmt.Sprintf("%02d", minutes),
		Seconds: fmt.Sprintf("%02d", seconds),
	}
}

// FormatDurationReadable formats d as "{h}h {m}m", or "{m}m" under one hour.
// Seconds are dropped, never rounded.
// Examples: 0 -> "0m", 90m -> "1h 30m", 25h15m -> "25h 15m"
func FormatDurationReadable(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalSeconds := int64(d / time.Second)
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// DecimalHours formats d as fractional hours with two decimals (e.g. "7.50").
func DecimalHours(d time.Duration) string {
	return fmt.Sprintf("%.2f", d.Hours())
}

// FormatClockTime formats the time-of-day part of t as 15:04.
func FormatClockTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatDay formats t as a long human-readable date (Monday, 2 January 2006).
func FormatDay(t time.Time) string {
	return t.Format("Monday, 2 January 2006")
}

// FormatDateShort formats t as 02.01.2006, the layout spreadsheets pick up as a date.
func FormatDateShort(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDateISO formats t as 2006-01-02.
func FormatDateISO(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseClock parses an "HH:MM" time of day.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q (use HH:MM)", s)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}

// ParseDate parses a 2006-01-02 date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return t, nil
}

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
