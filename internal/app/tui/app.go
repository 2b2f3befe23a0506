// Package tui is the live terminal view of the running work session.
package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emiliopalmerini/worktime/internal/domain"
	"github.com/emiliopalmerini/worktime/internal/pkg/tui/components"
	"github.com/emiliopalmerini/worktime/internal/pkg/tui/theme"
	"github.com/emiliopalmerini/worktime/internal/ports"
)

// Screen identifies the current screen
type Screen int

const (
	ScreenTimer Screen = iota
	ScreenStats
)

// Tracker is the session controller as seen by the live view.
type Tracker interface {
	Now() time.Time
	Session() domain.Session
	Snapshot() domain.Snapshot
	StartWork(ctx context.Context, categoryID string) error
	StartBreak(ctx context.Context) error
	EndBreak(ctx context.Context) error
	EndWork(ctx context.Context) (domain.HistoryEntry, error)
	CheckBreakReminder(ctx context.Context) (bool, error)
}

// StatsFunc computes the statistics shown on the stats screen.
type StatsFunc func(ctx context.Context, period domain.Period) (domain.Statistics, error)

// tickMsg carries the generation of the tick chain that produced it; ticks
// from a chain stopped by end of work are dropped.
type tickMsg struct {
	at  time.Time
	gen int
}

type statsLoadedMsg struct {
	stats domain.Statistics
	err   error
}

var periods = []domain.Period{domain.PeriodWeek, domain.PeriodMonth, domain.PeriodYear, domain.PeriodAll}

// App is the live session view. The one-second tick runs only while a
// session is open and is the only repeating task.
type App struct {
	ctx      context.Context
	tracker  Tracker
	stats    StatsFunc
	settings domain.Settings
	banner   *Banner

	screen   Screen
	period   int
	current  *domain.Statistics
	statsErr error
	ticking  bool
	tickGen  int
	width    int
	styles   *theme.Styles
}

// NewApp creates the live view. banner must be the Notifier the tracker
// reports to.
func NewApp(ctx context.Context, tracker Tracker, stats StatsFunc, settings domain.Settings, banner *Banner) *App {
	return &App{
		ctx:      ctx,
		tracker:  tracker,
		stats:    stats,
		settings: settings,
		banner:   banner,
		styles:   theme.Default(),
	}
}

func tick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{at: t, gen: gen}
	})
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.startTicking()
}

func (a *App) startTicking() tea.Cmd {
	if a.ticking || a.tracker.Session().State() == domain.StateIdle {
		return nil
	}
	a.ticking = true
	a.tickGen++
	return tick(a.tickGen)
}

func (a *App) stopTicking() {
	a.ticking = false
	a.tickGen++
}

func (a *App) loadStats() tea.Cmd {
	period := periods[a.period]
	return func() tea.Msg {
		s, err := a.stats(a.ctx, period)
		return statsLoadedMsg{stats: s, err: err}
	}
}

func (a *App) fail(err error) {
	a.banner.Notify(err.Error(), ports.SeverityError)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case tickMsg:
		if msg.gen != a.tickGen {
			return a, nil
		}
		if a.tracker.Session().State() == domain.StateIdle {
			a.stopTicking()
			return a, nil
		}
		if _, err := a.tracker.CheckBreakReminder(a.ctx); err != nil {
			a.fail(err)
		}
		return a, tick(a.tickGen)

	case statsLoadedMsg:
		a.statsErr = msg.err
		if msg.err == nil {
			s := msg.stats
			a.current = &s
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "1":
		a.screen = ScreenTimer
	case "2":
		a.screen = ScreenStats
		return a, a.loadStats()
	case "p":
		if a.screen == ScreenStats {
			a.period = (a.period + 1) % len(periods)
			return a, a.loadStats()
		}

	case "s":
		if err := a.tracker.StartWork(a.ctx, ""); err != nil {
			a.fail(err)
			return a, nil
		}
		return a, a.startTicking()

	case "b":
		var err error
		if a.tracker.Session().State() == domain.StateOnBreak {
			err = a.tracker.EndBreak(a.ctx)
		} else {
			err = a.tracker.StartBreak(a.ctx)
		}
		if err != nil {
			a.fail(err)
		}

	case "e":
		if _, err := a.tracker.EndWork(a.ctx); err != nil {
			a.fail(err)
			return a, nil
		}
		a.stopTicking()
		if a.screen == ScreenStats {
			return a, a.loadStats()
		}
	}
	return a, nil
}

// View implements tea.Model
func (a *App) View() string {
	title := a.styles.Title.Render("WORKTIME")
	tagline := a.styles.Muted.Render(a.tracker.Now().Format("Monday, 2 January 15:04"))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", tagline)

	nav := NewNavBar([]NavItem{
		{Key: "1", Label: "Timer", Active: a.screen == ScreenTimer},
		{Key: "2", Label: "Statistics", Active: a.screen == ScreenStats},
	}).View()

	var content string
	switch a.screen {
	case ScreenStats:
		content = a.statsView()
	default:
		content = a.timerView()
	}

	parts := []string{header, nav, "", content}
	if a.banner.Message != "" {
		parts = append(parts, "", a.bannerView())
	}
	parts = append(parts, "", a.helpView())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) bannerView() string {
	style := a.styles.Info
	switch a.banner.Severity {
	case ports.SeveritySuccess:
		style = a.styles.Success
	case ports.SeverityWarning:
		style = a.styles.Warning
	case ports.SeverityError:
		style = a.styles.Error
	}
	return style.Render(a.banner.Message)
}

func (a *App) helpView() string {
	bindings := []components.KeyBinding{}
	switch a.tracker.Session().State() {
	case domain.StateIdle:
		bindings = append(bindings, components.KeyBinding{Key: "s", Desc: "start"})
	case domain.StateWorking:
		bindings = append(bindings,
			components.KeyBinding{Key: "b", Desc: "break"},
			components.KeyBinding{Key: "e", Desc: "end"})
	case domain.StateOnBreak:
		bindings = append(bindings,
			components.KeyBinding{Key: "b", Desc: "resume"},
			components.KeyBinding{Key: "e", Desc: "end"})
	}
	if a.screen == ScreenStats {
		bindings = append(bindings, components.KeyBinding{Key: "p", Desc: "period"})
	}
	bindings = append(bindings, components.KeyBinding{Key: "q", Desc: "quit"})
	return components.NewHelpBar(bindings...).View()
}

func (a *App) barWidth() int {
	if a.width > 20 {
		return min(a.width-20, 50)
	}
	return 30
}

func (a *App) timerView() string {
	snap := a.tracker.Snapshot()

	var state string
	switch snap.State {
	case domain.StateWorking:
		state = a.styles.Working.Render("● WORKING")
	case domain.StateOnBreak:
		state = a.styles.OnBreak.Render("◐ ON BREAK")
	default:
		return lipgloss.JoinVertical(lipgloss.Left,
			a.styles.Idle.Render("○ NOT WORKING"),
			a.styles.Muted.Render("Press s to start a session."))
	}

	goal := a.settings.DailyNormDuration()
	lines := []string{
		state,
		"",
		a.styles.Body.Render("Work   ") + a.styles.Clock.Render(snap.WorkClock.String()),
	}
	if snap.State == domain.StateOnBreak {
		lines = append(lines, a.styles.Body.Render("Break  ")+a.styles.OnBreak.Render(snap.BreakClock.String()))
	}
	lines = append(lines,
		a.styles.Muted.Render(fmt.Sprintf("Started %s • %d breaks • %s break time",
			snap.WorkStart.Format("15:04"), len(snap.Breaks), formatReadable(snap.TotalBreak))),
		"",
		components.NewGoalBar(a.barWidth()).View(snap.Work, goal)+
			a.styles.Muted.Render(fmt.Sprintf(" %d%% of %s", components.Percent(snap.Work, goal), formatReadable(goal))),
	)

	if due, ok := domain.NextBreakReminder(a.tracker.Session(), a.settings); ok {
		lines = append(lines, a.styles.Muted.Render("Next break reminder at "+due.Format("15:04")))
	}
	if snap.Note != "" {
		lines = append(lines, "", a.styles.Body.Render("Note: "+snap.Note))
	}
	return a.styles.Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
