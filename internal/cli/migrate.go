package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/worktime/internal/adapters/turso"
	"github.com/emiliopalmerini/worktime/internal/app"
	"github.com/emiliopalmerini/worktime/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [version]",
	Short: "Run database migrations",
	Long: `Run database migrations.

Without arguments, runs all pending migrations (up).
With a version number, migrates to that specific version (up or down as needed).
Every other command applies pending migrations on its own.

Examples:
  worktime migrate      # Run all pending migrations
  worktime migrate 1    # Migrate to version 1
  worktime migrate 0    # Rollback all migrations`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := app.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := turso.Open(cfg.Database())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	runner, err := migrate.NewRunner(db.DB, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	current, _, err := runner.Version(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Current version: %d\n", current)

	var migrateErr error
	if len(args) == 0 {
		migrateErr = runner.Up(ctx)
	} else {
		target, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version number: %s", args[0])
		}
		migrateErr = runner.To(ctx, target)
	}

	// Sync schema changes to remote
	if err := db.Sync(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to sync migrations to remote: %v\n", err)
	}

	return migrateErr
}
