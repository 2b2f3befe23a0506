package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/worktime/internal/domain"
	"github.com/emiliopalmerini/worktime/internal/util"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a work session",
	Long: `Start a work session now.

Examples:
  worktime start                      # General category
  worktime start --category meeting   # Start in another category`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

var breakCmd = &cobra.Command{
	Use:   "break [start|end]",
	Short: "Start or end a break",
	Long: `Start or end a break in the running session.

Without an argument the break is toggled.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"start", "end"},
	RunE:      runBreak,
}

var stopCmd = &cobra.Command{
	Use:     "stop",
	Aliases: []string{"end"},
	Short:   "End the work session and record it",
	Args:    cobra.NoArgs,
	RunE:    runStop,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running session",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

var noteCmd = &cobra.Command{
	Use:   "note <text>",
	Short: "Set the note of the running session",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNote,
}

var categoryCmd = &cobra.Command{
	Use:   "category <id>",
	Short: "Move the running session to another category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategory,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the running session without recording it",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

// Flags
var startCategory string

func init() {
	rootCmd.AddCommand(startCmd, breakCmd, stopCmd, statusCmd, noteCmd, categoryCmd, resetCmd)

	startCmd.Flags().StringVarP(&startCategory, "category", "c", domain.DefaultCategoryID, "Category id (see `worktime categories list`)")
}

func runStart(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *AppContext) error {
		return a.Tracker.StartWork(ctx, startCategory)
	})
}

func runBreak(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *AppContext) error {
		action := "toggle"
		if len(args) == 1 {
			action = args[0]
		}

		switch action {
		case "start":
			return a.Tracker.StartBreak(ctx)
		case "end":
			return a.Tracker.EndBreak(ctx)
		case "toggle":
			if a.Tracker.Session().State() == domain.StateOnBreak {
				return a.Tracker.EndBreak(ctx)
			}
			return a.Tracker.StartBreak(ctx)
		default:
			return fmt.Errorf("unknown break action %q (use start or end)", action)
		}
	})
}

func runStop(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *AppContext) error {
		entry, err := a.Tracker.EndWork(ctx)
		if err != nil {
			return err
		}
		printEntry(cmd.OutOrStdout(), entry)
		return nil
	})
}

func runStatus(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *AppContext) error {
		settings, err := a.Stores.Settings.Load(ctx)
		if err != nil {
			return err
		}
		categories, err := a.Stores.Categories.Load(ctx)
		if err != nil {
			return err
		}
		printStatus(cmd.OutOrStdout(), a.Tracker.Session(), a.Tracker.Snapshot(), settings, categories)
		return nil
	})
}

func runNote(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *AppContext) error {
		return a.Tracker.SetNote(ctx, strings.Join(args, " "))
	})
}

func runCategory(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *AppContext) error {
		return a.Tracker.SetCategory(ctx, args[0])
	})
}

func runReset(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *AppContext) error {
		return a.Tracker.Reset(ctx)
	})
}

func printStatus(w io.Writer, s domain.Session, snap domain.Snapshot, settings domain.Settings, categories domain.Categories) {
	fmt.Fprintln(w)
	if snap.State == domain.StateIdle {
		fmt.Fprintln(w, "  Not working. Start a session with `worktime start`.")
		fmt.Fprintln(w)
		return
	}

	category := categories.Lookup(snap.CategoryID)
	fmt.Fprintf(w, "  State:       %s\n", snap.State)
	fmt.Fprintf(w, "  Category:    %s\n", category.Name)
	fmt.Fprintf(w, "  Started:     %s\n", util.FormatClockTime(snap.WorkStart))
	fmt.Fprintf(w, "  Work time:   %s\n", snap.WorkClock)
	fmt.Fprintf(w, "  Break time:  %s (%d breaks)\n", util.FormatDurationReadable(snap.TotalBreak), len(snap.Breaks))
	if snap.State == domain.StateOnBreak {
		fmt.Fprintf(w, "  On break:    %s\n", snap.BreakClock)
	}

	norm := settings.DailyNormDuration()
	if remaining := norm - snap.Work; remaining > 0 {
		fmt.Fprintf(w, "  Remaining:   %s of %s\n", util.FormatDurationReadable(remaining), util.FormatDurationReadable(norm))
	} else {
		fmt.Fprintf(w, "  Overtime:    %s\n", util.FormatDurationReadable(-remaining))
	}
	if due, ok := domain.NextBreakReminder(s, settings); ok {
		fmt.Fprintf(w, "  Next break:  %s\n", util.FormatClockTime(due))
	}
	if snap.Note != "" {
		fmt.Fprintf(w, "  Note:        %s\n", snap.Note)
	}
	fmt.Fprintln(w)
}

func printEntry(w io.Writer, e domain.HistoryEntry) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s  %s-%s  %s\n", util.FormatDay(e.WorkStart), e.StartTime, e.EndTime, e.CategoryName)
	fmt.Fprintf(w, "  Work:   %s\n", e.TotalWorkText)
	fmt.Fprintf(w, "  Breaks: %s (%d)\n", e.TotalBreakText, e.BreaksCount)
	if e.Note != "" {
		fmt.Fprintf(w, "  Note:   %s\n", e.Note)
	}
	fmt.Fprintln(w)
}
