package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/worktime/internal/domain"
	"github.com/emiliopalmerini/worktime/internal/util"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, edit and delete recorded sessions",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sessions, newest first",
	Long: `List recorded sessions, newest first. The number in the first column
identifies an entry for edit, delete and export --select.

Examples:
  worktime history list          # Last 20 sessions
  worktime history list -n 100   # Everything`,
	Args: cobra.NoArgs,
	RunE: runHistoryList,
}

var historyEditCmd = &cobra.Command{
	Use:   "edit <n>",
	Short: "Edit a recorded session",
	Long: `Edit entry n of the history. Fields that are not given keep their value.
Breaks given with --break replace all existing breaks.

Examples:
  worktime history edit 1 --start 08:30 --end 16:45
  worktime history edit 2 --date 2025-03-10 --break 12:00-12:30 --break 15:00-15:10
  worktime history edit 3 --no-breaks --note "Release day" --category project`,
	Args: cobra.ExactArgs(1),
	RunE: runHistoryEdit,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <n>",
	Short: "Delete a recorded session",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

// Flags
var (
	historyLimit int
	editDate     string
	editStart    string
	editEnd      string
	editBreaks   []string
	editNoBreaks bool
	editNote     string
	editCategory string
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyEditCmd, historyDeleteCmd)

	historyListCmd.Flags().IntVarP(&historyLimit, "last", "n", 20, "Number of entries to show")

	historyEditCmd.Flags().StringVar(&editDate, "date", "", "Date (YYYY-MM-DD)")
	historyEditCmd.Flags().StringVar(&editStart, "start", "", "Start time (HH:MM)")
	historyEditCmd.Flags().StringVar(&editEnd, "end", "", "End time (HH:MM)")
	historyEditCmd.Flags().StringArrayVar(&editBreaks, "break", nil, "Break (HH:MM-HH:MM), repeatable")
	historyEditCmd.Flags().BoolVar(&editNoBreaks, "no-breaks", false, "Remove all breaks")
	historyEditCmd.Flags().StringVar(&editNote, "note", "", "Note")
	historyEditCmd.Flags().StringVarP(&editCategory, "category", "c", "", "Category id")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *AppContext) error {
		entries, err := a.History.Entries(ctx)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No sessions recorded yet")
			return nil
		}
		if historyLimit > 0 && len(entries) > historyLimit {
			entries = entries[:historyLimit]
		}
		printHistory(cmd.OutOrStdout(), entries)
		return nil
	})
}

func printHistory(out io.Writer, entries []domain.HistoryEntry) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tDATE\tSTART\tEND\tBREAKS\tWORK\tCATEGORY\tNOTE")
	fmt.Fprintln(w, "-\t----\t-----\t---\t------\t----\t--------\t----")
	for i, e := range entries {
		date := util.FormatDateShort(e.WorkStart)
		if e.Modified() {
			date += "*"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1, date, e.StartTime, e.EndTime, e.TotalBreakText, e.TotalWorkText, e.CategoryName, truncate(e.Note, 30))
	}
	_ = w.Flush()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func runHistoryEdit(cmd *cobra.Command, args []string) error {
	index, err := parseEntryNumber(args[0])
	if err != nil {
		return err
	}

	return withApp(cmd, func(ctx context.Context, a *AppContext) error {
		entries, err := a.History.Entries(ctx)
		if err != nil {
			return err
		}
		if index >= len(entries) {
			return fmt.Errorf("entry %d of %d: %w", index+1, len(entries), domain.ErrIndexOutOfRange)
		}

		req, err := buildEditRequest(cmd, entries[index])
		if err != nil {
			return err
		}
		updated, err := a.History.Edit(ctx, index, req)
		if err != nil {
			return err
		}
		printEntry(cmd.OutOrStdout(), updated)
		return nil
	})
}

// buildEditRequest starts from the current values of e and applies the
// flags that were set.
func buildEditRequest(cmd *cobra.Command, e domain.HistoryEntry) (domain.EditRequest, error) {
	req := domain.EditRequestFor(e)
	flags := cmd.Flags()

	if flags.Changed("date") {
		date, err := util.ParseDate(editDate, e.WorkStart.Location())
		if err != nil {
			return req, err
		}
		req.Date = date
	}
	if flags.Changed("start") {
		t, err := domain.ParseClockTime(editStart)
		if err != nil {
			return req, err
		}
		req.Start = t
	}
	if flags.Changed("end") {
		t, err := domain.ParseClockTime(editEnd)
		if err != nil {
			return req, err
		}
		req.End = t
	}
	if editNoBreaks {
		req.Breaks = nil
	}
	if flags.Changed("break") {
		req.Breaks = nil
		for _, s := range editBreaks {
			b, err := parseBreak(s)
			if err != nil {
				return req, err
			}
			req.Breaks = append(req.Breaks, b)
		}
	}
	if flags.Changed("note") {
		req.Note = editNote
	}
	if flags.Changed("category") {
		req.CategoryID = editCategory
	}
	return req, nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	index, err := parseEntryNumber(args[0])
	if err != nil {
		return err
	}

	return withApp(cmd, func(ctx context.Context, a *AppContext) error {
		removed, err := a.History.DeleteAt(ctx, index, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s-%s (%s)\n",
			util.FormatDateShort(removed.WorkStart), removed.StartTime, removed.EndTime, removed.TotalWorkText)
		return nil
	})
}
