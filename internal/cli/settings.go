package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/worktime/internal/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Long: `Show the settings, or change them with flags.

Examples:
  worktime settings                      # Show
  worktime settings --norm 7.5           # 7.5 hour days
  worktime settings --interval 90        # Break reminder every 90 minutes
  worktime settings --reminders=false    # No break reminders`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

// Flags
var (
	settingsNorm      float64
	settingsInterval  int
	settingsReminders bool
)

func init() {
	rootCmd.AddCommand(settingsCmd)

	settingsCmd.Flags().Float64Var(&settingsNorm, "norm", 8, "Daily norm in hours")
	settingsCmd.Flags().IntVar(&settingsInterval, "interval", 120, "Break reminder interval in minutes")
	settingsCmd.Flags().BoolVar(&settingsReminders, "reminders", true, "Enable break reminders")
}

func runSettings(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *AppContext) error {
		settings, err := a.Stores.Settings.Load(ctx)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		changed := false
		if flags.Changed("norm") {
			settings.DailyNorm = settingsNorm
			changed = true
		}
		if flags.Changed("interval") {
			settings.BreakReminderInterval = settingsInterval
			changed = true
		}
		if flags.Changed("reminders") {
			settings.BreakReminderEnabled = settingsReminders
			changed = true
		}

		if changed {
			if err := a.Stores.Settings.Save(ctx, settings); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Settings saved")
		}
		printSettings(cmd.OutOrStdout(), settings)
		return nil
	})
}

func printSettings(w io.Writer, s domain.Settings) {
	reminders := "off"
	if s.BreakReminderEnabled {
		reminders = fmt.Sprintf("every %d minutes", s.BreakReminderInterval)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Daily norm:       %g hours\n", s.DailyNorm)
	fmt.Fprintf(w, "  Break reminders:  %s\n", reminders)
	fmt.Fprintln(w)
}
