package domain

import (
	"fmt"
	"time"
)

// Settings is the read-mostly reference data consulted by the engine.
type Settings struct {
	DailyNorm             float64 `json:"dailyNorm"`             // hours
	BreakReminderInterval int     `json:"breakReminderInterval"` // minutes
	BreakReminderEnabled  bool    `json:"breakReminderEnabled"`
}

// DefaultSettings returns the settings used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{
		DailyNorm:             8,
		BreakReminderInterval: 120,
		BreakReminderEnabled:  true,
	}
}

// DailyNormDuration returns the daily norm as a duration.
func (s Settings) DailyNormDuration() time.Duration {
	return time.Duration(s.DailyNorm * float64(time.Hour))
}

// ReminderInterval returns the break reminder interval as a duration.
func (s Settings) ReminderInterval() time.Duration {
	return time.Duration(s.BreakReminderInterval) * time.Minute
}

func (s Settings) Validate() error {
	if s.DailyNorm <= 0 || s.DailyNorm > 24 {
		return fmt.Errorf("daily norm must be within (0, 24] hours, got %v: %w", s.DailyNorm, ErrInvalidSettings)
	}
	if s.BreakReminderInterval <= 0 {
		return fmt.Errorf("break reminder interval must be positive, got %d: %w", s.BreakReminderInterval, ErrInvalidSettings)
	}
	return nil
}
