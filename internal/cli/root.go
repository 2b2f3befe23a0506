package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "worktime",
	Short: "Track work sessions, breaks and overtime",
	Long: `worktime records work sessions with their breaks, notes and categories,
keeps the last 100 sessions and reports totals and overtime against your
daily norm.

Data lives in a local database under $XDG_DATA_HOME/worktime. Set
WORKTIME_DATABASE_URL and WORKTIME_AUTH_TOKEN to replicate it to Turso.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command line with ctx, which is cancelled on interrupt.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, friendly(err))
		os.Exit(1)
	}
}
