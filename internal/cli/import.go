package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/worktime/internal/transfer"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a JSON backup",
	Long: `Merge a JSON backup into the current data.

Imported history entries are added unless an entry with the same start and
end already exists. Settings from the backup replace the current ones.
Categories are added when their id is new. Use - to read from stdin.

Examples:
  worktime import worktime_backup_2025-03-01.json
  cat backup.json | worktime import -`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	var r io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open backup: %w", err)
		}
		defer f.Close()
		r = f
	}

	return withApp(cmd, func(ctx context.Context, a *AppContext) error {
		result, err := a.Importer.Import(ctx, r)
		if err != nil {
			return err
		}
		printImportResult(cmd.OutOrStdout(), result)
		return nil
	})
}

func printImportResult(w io.Writer, r transfer.ImportResult) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Import complete\n")
	fmt.Fprintf(w, "  ---------------\n")
	fmt.Fprintf(w, "  Entries read:      %d\n", r.Imported)
	if r.Skipped > 0 {
		fmt.Fprintf(w, "  Unreadable:        %d\n", r.Skipped)
	}
	fmt.Fprintf(w, "  New entries:       %d\n", r.Added)
	fmt.Fprintf(w, "  History size:      %d\n", r.History)
	if r.SettingsUpdated {
		fmt.Fprintf(w, "  Settings:          updated\n")
	}
	if r.CategoriesAdded > 0 {
		fmt.Fprintf(w, "  New categories:    %d\n", r.CategoriesAdded)
	}
	fmt.Fprintln(w)
}
