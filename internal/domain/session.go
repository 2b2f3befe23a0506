package domain

import (
	"fmt"
	"time"
)

// SessionState is the lifecycle position of the current work session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateWorking
	StateOnBreak
)

func (s SessionState) String() string {
	switch s {
	case StateWorking:
		return "working"
	case StateOnBreak:
		return "on break"
	default:
		return "idle"
	}
}

// Break is a completed pause inside a session. Start <= End.
type Break struct {
	Start time.Time
	End   time.Time
}

// Duration returns End - Start.
func (b Break) Duration() time.Duration {
	return b.End.Sub(b.Start)
}

// Session is the single in-progress work period. Zero times mean "unset".
// OnBreak implies Working, and CurrentBreakStart is set iff OnBreak.
type Session struct {
	Working           bool
	OnBreak           bool
	WorkStart         time.Time
	WorkEnd           time.Time
	CurrentBreakStart time.Time
	Breaks            []Break
	Note              string
	CategoryID        string
	LastBreakReminder time.Time
}

// State derives the lifecycle state from the flags.
func (s Session) State() SessionState {
	switch {
	case s.Working && s.OnBreak:
		return StateOnBreak
	case s.Working:
		return StateWorking
	default:
		return StateIdle
	}
}

// Start begins a new session at now. Valid only from Idle.
func (s *Session) Start(now time.Time, categoryID string) error {
	if s.State() != StateIdle {
		return fmt.Errorf("start work while %s: %w", s.State(), ErrInvalidTransition)
	}
	if categoryID == "" {
		categoryID = DefaultCategoryID
	}

	*s = Session{
		Working:    true,
		WorkStart:  now,
		CategoryID: categoryID,
	}
	return nil
}

// BeginBreak opens a break at now. Valid only from Working.
func (s *Session) BeginBreak(now time.Time) error {
	if s.State() != StateWorking {
		return fmt.Errorf("start break while %s: %w", s.State(), ErrInvalidTransition)
	}
	s.OnBreak = true
	s.CurrentBreakStart = now
	return nil
}

// FinishBreak closes the open break at now. Valid only from OnBreak.
func (s *Session) FinishBreak(now time.Time) error {
	if s.State() != StateOnBreak {
		return fmt.Errorf("end break while %s: %w", s.State(), ErrInvalidTransition)
	}
	s.Breaks = append(s.Breaks, Break{Start: s.CurrentBreakStart, End: now})
	s.OnBreak = false
	s.CurrentBreakStart = time.Time{}
	return nil
}

// Finish ends the session at now, closing an open break first.
// Valid from Working or OnBreak.
func (s *Session) Finish(now time.Time) error {
	if s.State() == StateIdle {
		return fmt.Errorf("end work while idle: %w", ErrInvalidTransition)
	}
	if s.OnBreak {
		if err := s.FinishBreak(now); err != nil {
			return err
		}
	}
	s.Working = false
	s.WorkEnd = now
	return nil
}

// LastBreakEnd returns the end of the latest completed break, or the work
// start when no break has been taken.
func (s Session) LastBreakEnd() time.Time {
	last := s.WorkStart
	for _, b := range s.Breaks {
		if b.End.After(last) {
			last = b.End
		}
	}
	return last
}
