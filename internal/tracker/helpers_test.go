package tracker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/emiliopalmerini/worktime/internal/adapters/memory"
	"github.com/emiliopalmerini/worktime/internal/adapters/notify"
	"github.com/emiliopalmerini/worktime/internal/ports"
	"github.com/emiliopalmerini/worktime/internal/store"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Set(h, m int) {
	y, mo, d := c.t.Date()
	c.t = time.Date(y, mo, d, h, m, 0, 0, c.t.Location())
}

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Debug(string)     {}
func (l *recordingLogger) Warn(msg string)  { l.lines = append(l.lines, "WARN "+msg) }
func (l *recordingLogger) Error(msg string) { l.lines = append(l.lines, "ERROR "+msg) }

type fakeMetrics struct {
	exported []ports.SessionMetrics
	err      error
}

func (m *fakeMetrics) ExportSessionMetrics(_ context.Context, sm *ports.SessionMetrics) error {
	m.exported = append(m.exported, *sm)
	return m.err
}

func (m *fakeMetrics) Close(context.Context) error { return nil }

type fixture struct {
	clock    *fakeClock
	slots    *memory.SlotStore
	stores   store.Stores
	notifier *notify.Recorder
	logger   *recordingLogger
	metrics  *fakeMetrics
	ctrl     *Controller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		clock:    &fakeClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)},
		slots:    memory.NewSlotStore(),
		notifier: &notify.Recorder{},
		logger:   &recordingLogger{},
		metrics:  &fakeMetrics{},
	}
	f.stores = store.NewStores(f.slots, f.logger)

	n := 0
	f.ctrl = NewController(f.stores, f.notifier, f.logger, f.metrics,
		WithClock(f.clock.Now),
		WithIDs(func() string {
			n++
			return fmt.Sprintf("entry-%d", n)
		}),
	)
	return f
}

// reload builds a second controller over the same slots, as a new process would.
func (f *fixture) reload() *Controller {
	return NewController(f.stores, f.notifier, f.logger, f.metrics, WithClock(f.clock.Now))
}
