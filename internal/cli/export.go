package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/worktime/internal/domain"
	"github.com/emiliopalmerini/worktime/internal/transfer"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export history to CSV or a JSON backup",
	Long: `Export history for a spreadsheet, or back up everything as JSON.

Examples:
  worktime export csv --all                     # Every entry to worktime_<date>.csv
  worktime export csv --select 1,3,5            # Entries 1, 3 and 5 of history list
  worktime export csv --select 2-4 -o -         # Entries 2 to 4 on stdout
  worktime export json                          # Full backup to worktime_backup_<date>.json`,
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Export selected history entries as a CSV report",
	Args:  cobra.NoArgs,
	RunE:  runExportCSV,
}

var exportJSONCmd = &cobra.Command{
	Use:   "json",
	Short: "Export a full JSON backup",
	Args:  cobra.NoArgs,
	RunE:  runExportJSON,
}

// Flags
var (
	exportSelect string
	exportAll    bool
	exportOutput string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportCSVCmd, exportJSONCmd)

	exportCSVCmd.Flags().StringVarP(&exportSelect, "select", "s", "", "Entry numbers, e.g. 1,3,5 or 2-4")
	exportCSVCmd.Flags().BoolVarP(&exportAll, "all", "a", false, "Export every entry")
	exportCmd.PersistentFlags().StringVarP(&exportOutput, "output", "o", "", "Output file, - for stdout (default: dated file name)")
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *AppContext) error {
		history, err := a.History.Entries(ctx)
		if err != nil {
			return err
		}

		selection, err := selectEntries(history, exportSelect, exportAll)
		if err != nil {
			return err
		}
		entries := selection.Entries(history)
		if len(entries) == 0 {
			return transfer.ErrNothingSelected
		}

		now := a.Tracker.Now()
		return writeOutput(cmd, exportOutput, transfer.CSVFileName(now), func(w io.Writer) error {
			return transfer.WriteCSV(w, entries, now)
		}, fmt.Sprintf("%d entries", len(entries)))
	})
}

func runExportJSON(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *AppContext) error {
		now := a.Tracker.Now()
		snap, err := transfer.BuildSnapshot(ctx, a.Stores, now)
		if err != nil {
			return err
		}
		return writeOutput(cmd, exportOutput, transfer.JSONFileName(now), func(w io.Writer) error {
			return transfer.WriteJSON(w, snap)
		}, fmt.Sprintf("backup of %d entries", len(snap.History)))
	})
}

// selectEntries builds the export selection from --select or --all.
func selectEntries(history []domain.HistoryEntry, list string, all bool) (*domain.Selection, error) {
	selection := domain.NewSelection()
	if all {
		selection.SelectAll(history)
		return selection, nil
	}
	if list == "" {
		return selection, nil
	}

	indices, err := parseEntryList(list)
	if err != nil {
		return nil, err
	}
	for _, i := range indices {
		if err := selection.SelectIndex(history, i); err != nil {
			return nil, err
		}
	}
	return selection, nil
}

// writeOutput writes through fn to path, to stdout for "-", or to the
// default file name when path is empty.
func writeOutput(cmd *cobra.Command, path, defaultName string, fn func(io.Writer) error, what string) error {
	if path == "-" {
		return fn(cmd.OutOrStdout())
	}
	if path == "" {
		path = defaultName
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s to %s\n", what, path)
	return nil
}
