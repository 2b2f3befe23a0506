// Package tracker owns the single work session and drives its transitions,
// persisting every change and recording finished sessions to history.
package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/emiliopalmerini/worktime/internal/domain"
	"github.com/emiliopalmerini/worktime/internal/ports"
	"github.com/emiliopalmerini/worktime/internal/store"
	"github.com/emiliopalmerini/worktime/internal/util"
)

// Controller handles the business logic of the current work session.
// It is not safe for concurrent use.
type Controller struct {
	stores   store.Stores
	notifier ports.Notifier
	logger   ports.Logger
	metrics  ports.MetricsExporter

	now   func() time.Time
	newID func() string

	session domain.Session
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithIDs replaces the history entry id generator.
func WithIDs(newID func() string) Option {
	return func(c *Controller) { c.newID = newID }
}

// NewController creates a controller with an idle session. Call Restore to
// pick up a session saved by an earlier run.
func NewController(
	stores store.Stores,
	notifier ports.Notifier,
	logger ports.Logger,
	metrics ports.MetricsExporter,
	opts ...Option,
) *Controller {
	c := &Controller{
		stores:   stores,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Now returns the controller's current time.
func (c *Controller) Now() time.Time {
	return c.now()
}

// Session returns a copy of the current session.
func (c *Controller) Session() domain.Session {
	s := c.session
	s.Breaks = append([]domain.Break(nil), c.session.Breaks...)
	return s
}

// Restore loads the saved session. A session is only resumed when it was
// started today; an older one is discarded without being recorded and the
// user is warned. It reports whether a running session was resumed.
func (c *Controller) Restore(ctx context.Context) (bool, error) {
	saved, ok, err := c.stores.Session.Load(ctx)
	if err != nil {
		return false, err
	}
	if !ok || !saved.Working || saved.WorkStart.IsZero() {
		c.session = domain.Session{}
		return false, nil
	}

	now := c.now()
	if !util.SameDay(now, saved.WorkStart) {
		c.logger.Warn(fmt.Sprintf("discarding session started %s: not started today",
			saved.WorkStart.Format(time.RFC3339)))
		c.notifier.Notify(fmt.Sprintf("The session started on %s was discarded because it did not end that day",
			util.FormatDay(saved.WorkStart)), ports.SeverityWarning)
		c.session = domain.Session{}
		if err := c.stores.Session.Clear(ctx); err != nil {
			return false, err
		}
		return false, nil
	}

	c.session = saved
	c.logger.Debug(fmt.Sprintf("restored %s session started at %s",
		saved.State(), util.FormatClockTime(saved.WorkStart)))
	return true, nil
}

// persist saves s and, on success, makes it the current session.
func (c *Controller) persist(ctx context.Context, s domain.Session) error {
	if err := c.stores.Session.Save(ctx, s); err != nil {
		c.logger.Error(fmt.Sprintf("failed to persist session: %v", err))
		return err
	}
	c.session = s
	return nil
}

// StartWork begins a session in categoryID, or in the default category when
// categoryID is empty. Unknown categories are rejected with ErrNotFound.
func (c *Controller) StartWork(ctx context.Context, categoryID string) error {
	categories, err := c.stores.Categories.Load(ctx)
	if err != nil {
		return err
	}
	var category domain.Category
	if categoryID == "" {
		category = categories.Lookup(domain.DefaultCategoryID)
	} else {
		if !categories.Has(categoryID) {
			return fmt.Errorf("category %q: %w", categoryID, domain.ErrNotFound)
		}
		category = categories.Lookup(categoryID)
	}

	next := c.Session()
	now := c.now()
	if err := next.Start(now, category.ID); err != nil {
		return err
	}
	if err := c.persist(ctx, next); err != nil {
		return err
	}

	c.notifier.Notify(fmt.Sprintf("Work started at %s (%s)", util.FormatClockTime(now), category.Name), ports.SeveritySuccess)
	return nil
}

func (c *Controller) StartBreak(ctx context.Context) error {
	next := c.Session()
	now := c.now()
	if err := next.BeginBreak(now); err != nil {
		return err
	}
	if err := c.persist(ctx, next); err != nil {
		return err
	}

	c.notifier.Notify(fmt.Sprintf("Break started at %s", util.FormatClockTime(now)), ports.SeverityInfo)
	return nil
}

func (c *Controller) EndBreak(ctx context.Context) error {
	next := c.Session()
	if err := next.FinishBreak(c.now()); err != nil {
		return err
	}
	if err := c.persist(ctx, next); err != nil {
		return err
	}

	last := next.Breaks[len(next.Breaks)-1]
	c.notifier.Notify(fmt.Sprintf("Break ended after %s", util.FormatDurationReadable(last.Duration())), ports.SeverityInfo)
	return nil
}

// EndWork finishes the session, closing an open break first, and appends it
// to the history. The saved session is cleared. Metrics export failures are
// logged and never fail the call.
func (c *Controller) EndWork(ctx context.Context) (domain.HistoryEntry, error) {
	finished := c.Session()
	if err := finished.Finish(c.now()); err != nil {
		return domain.HistoryEntry{}, err
	}

	categories, err := c.stores.Categories.Load(ctx)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	entry, err := domain.NewHistoryEntry(c.newID(), finished, categories.Lookup(finished.CategoryID))
	if err != nil {
		return domain.HistoryEntry{}, err
	}

	if err := c.stores.History.Append(ctx, entry); err != nil {
		c.logger.Error(fmt.Sprintf("failed to record session: %v", err))
		return domain.HistoryEntry{}, err
	}
	c.session = domain.Session{}
	if err := c.stores.Session.Clear(ctx); err != nil {
		c.logger.Error(fmt.Sprintf("failed to clear saved session: %v", err))
		return entry, err
	}

	c.exportMetrics(ctx, entry)
	c.logger.Debug(fmt.Sprintf("recorded entry %s: work=%s break=%s", entry.ID, entry.TotalWorkText, entry.TotalBreakText))
	c.notifier.Notify(fmt.Sprintf("Work ended. Total work time: %s", entry.TotalWorkText), ports.SeveritySuccess)
	return entry, nil
}

func (c *Controller) exportMetrics(ctx context.Context, entry domain.HistoryEntry) {
	if c.metrics == nil {
		return
	}

	settings, err := c.stores.Settings.Load(ctx)
	if err != nil {
		c.logger.Error(fmt.Sprintf("failed to load settings for metrics: %v", err))
		settings = domain.DefaultSettings()
	}

	m := &ports.SessionMetrics{
		EntryID:      entry.ID,
		CategoryID:   entry.CategoryID,
		CategoryName: entry.CategoryName,
		Work:         entry.TotalWork,
		Break:        entry.TotalBreak,
		BreakCount:   entry.BreaksCount,
		Overtime:     entry.TotalWork - settings.DailyNormDuration(),
		StartedAt:    entry.WorkStart,
		EndedAt:      entry.WorkEnd,
	}
	if err := c.metrics.ExportSessionMetrics(ctx, m); err != nil {
		c.logger.Error(fmt.Sprintf("failed to export session metrics: %v", err))
	}
}

// Reset discards the current session without recording it.
func (c *Controller) Reset(ctx context.Context) error {
	c.session = domain.Session{}
	if err := c.stores.Session.Clear(ctx); err != nil {
		return err
	}
	c.notifier.Notify("Session reset", ports.SeverityInfo)
	return nil
}

// SetNote replaces the note of the running session.
func (c *Controller) SetNote(ctx context.Context, note string) error {
	if c.session.State() == domain.StateIdle {
		return fmt.Errorf("set note while idle: %w", domain.ErrInvalidTransition)
	}
	next := c.Session()
	next.Note = note
	return c.persist(ctx, next)
}

// SetCategory moves the running session to an existing category.
func (c *Controller) SetCategory(ctx context.Context, categoryID string) error {
	if c.session.State() == domain.StateIdle {
		return fmt.Errorf("set category while idle: %w", domain.ErrInvalidTransition)
	}
	categories, err := c.stores.Categories.Load(ctx)
	if err != nil {
		return err
	}
	if !categories.Has(categoryID) {
		return fmt.Errorf("category %q: %w", categoryID, domain.ErrNotFound)
	}

	next := c.Session()
	next.CategoryID = categoryID
	return c.persist(ctx, next)
}

// WorkTime returns the work accrued so far by the current session.
func (c *Controller) WorkTime() time.Duration {
	return domain.WorkTime(c.session, c.now())
}

// BreakTime returns the completed breaks plus the open break.
func (c *Controller) BreakTime() time.Duration {
	return domain.TotalBreakTime(c.session.Breaks) + domain.CurrentBreakTime(c.session, c.now())
}

// Snapshot evaluates the current session now.
func (c *Controller) Snapshot() domain.Snapshot {
	return domain.TakeSnapshot(c.session, c.now())
}

// CheckBreakReminder notifies the user when a break reminder is due and
// records that it was shown. It reports whether a reminder fired.
func (c *Controller) CheckBreakReminder(ctx context.Context) (bool, error) {
	settings, err := c.stores.Settings.Load(ctx)
	if err != nil {
		return false, err
	}
	now := c.now()
	if !domain.BreakReminderDue(c.session, settings, now) {
		return false, nil
	}

	next := c.Session()
	next.LastBreakReminder = now
	if err := c.persist(ctx, next); err != nil {
		return false, err
	}

	since := next.LastBreakEnd()
	c.notifier.Notify(fmt.Sprintf("You have been working for %s without a break. Time for a pause!",
		util.FormatDurationReadable(now.Sub(since))), ports.SeverityWarning)
	return true, nil
}
