package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/worktime/internal/app/tui"
	"github.com/emiliopalmerini/worktime/internal/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Open the live session view",
	Long: `Open a live view of the running session, updated every second.

Keys: s start, b break, e end, 1/2 switch screens, p change period, q quit.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	banner := &tui.Banner{}
	return withAppNotifier(cmd, banner, func(ctx context.Context, a *AppContext) error {
		settings, err := a.Stores.Settings.Load(ctx)
		if err != nil {
			return err
		}

		stats := func(ctx context.Context, period domain.Period) (domain.Statistics, error) {
			history, err := a.Stores.History.Get(ctx)
			if err != nil {
				return domain.Statistics{}, err
			}
			return domain.CalculateStatistics(history, settings, a.Tracker.Now(), period, domain.AllCategories), nil
		}

		model := tui.NewApp(ctx, a.Tracker, stats, settings, banner)
		_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
		return err
	})
}
