package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/worktime/internal/domain"
	"github.com/emiliopalmerini/worktime/internal/pkg/tui/components"
	"github.com/emiliopalmerini/worktime/internal/util"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show work statistics",
	Long: `Show totals, averages and overtime for a period.

Examples:
  worktime stats                        # Last 7 days, all categories
  worktime stats --period month         # This calendar month
  worktime stats --category meeting     # One category only
  worktime stats --period year --json   # Machine readable`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

// Flags
var (
	statsPeriod   string
	statsCategory string
	statsJSON     bool
	statsChart    bool
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsPeriod, "period", "p", string(domain.PeriodWeek), "Time period: week, month, year, all")
	statsCmd.Flags().StringVarP(&statsCategory, "category", "c", domain.AllCategories, "Category id, or all")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print JSON")
	statsCmd.Flags().BoolVar(&statsChart, "chart", true, "Show category and daily charts")
}

func runStats(cmd *cobra.Command, args []string) error {
	period, err := domain.ParsePeriod(statsPeriod)
	if err != nil {
		return err
	}

	return withApp(cmd, func(ctx context.Context, a *AppContext) error {
		history, err := a.History.Entries(ctx)
		if err != nil {
			return err
		}
		settings, err := a.Stores.Settings.Load(ctx)
		if err != nil {
			return err
		}
		if statsCategory != domain.AllCategories {
			categories, err := a.Stores.Categories.Load(ctx)
			if err != nil {
				return err
			}
			if !categories.Has(statsCategory) {
				return fmt.Errorf("category %q: %w", statsCategory, domain.ErrNotFound)
			}
		}

		stats := domain.CalculateStatistics(history, settings, a.Tracker.Now(), period, statsCategory)

		if statsJSON {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(stats); err != nil {
				return fmt.Errorf("failed to encode JSON: %w", err)
			}
			return nil
		}
		printStats(cmd.OutOrStdout(), stats, settings, statsChart)
		return nil
	})
}

func periodLabel(p domain.Period) string {
	switch p {
	case domain.PeriodWeek:
		return "Last 7 days"
	case domain.PeriodMonth:
		return "This month"
	case domain.PeriodYear:
		return "This year"
	default:
		return "All time"
	}
}

func printStats(w io.Writer, s domain.Statistics, settings domain.Settings, charts bool) {
	filter := "All categories"
	if !s.ShowAllCategories {
		filter = "Category: " + s.CategoryID
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  worktime Stats\n")
	fmt.Fprintf(w, "  ==============\n")
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Period:        %s\n", periodLabel(s.Period))
	fmt.Fprintf(w, "  Filter:        %s\n", filter)
	fmt.Fprintf(w, "  Daily norm:    %s\n", util.FormatDurationReadable(settings.DailyNormDuration()))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Work\n")
	fmt.Fprintf(w, "  ----\n")
	fmt.Fprintf(w, "  Days worked:   %d\n", s.DaysWorked)
	fmt.Fprintf(w, "  Total:         %s (%s h)\n", s.TotalWorkText, util.DecimalHours(s.TotalWork))
	fmt.Fprintf(w, "  Average:       %s\n", s.AvgWorkText)
	fmt.Fprintf(w, "  Breaks:        %s\n", s.TotalBreakText)
	sign := "-"
	if s.IsOvertime {
		sign = "+"
	}
	if s.Overtime == 0 {
		sign = ""
	}
	fmt.Fprintf(w, "  Overtime:      %s%s\n", sign, s.OvertimeText)
	fmt.Fprintln(w)

	if !charts {
		return
	}

	if len(s.CategoryBreakdown) > 0 {
		bars := make([]components.Bar, 0, len(s.CategoryBreakdown))
		for _, c := range s.CategoryBreakdown {
			bars = append(bars, components.Bar{
				Label: c.Name,
				Value: c.Total,
				Text:  fmt.Sprintf("%s (%d)", util.FormatDurationReadable(c.Total), c.Entries),
				Color: c.Color,
			})
		}
		fmt.Fprintf(w, "  By category\n")
		fmt.Fprintf(w, "  -----------\n")
		fmt.Fprintln(w, components.NewBarChart(40).View(bars))
		fmt.Fprintln(w)
	}

	if points := s.ChartPoints(); len(points) > 0 {
		bars := make([]components.Bar, 0, len(points))
		trend := make([]float64, 0, len(points))
		for _, p := range points {
			trend = append(trend, p.Work.Hours())
			bars = append(bars, components.Bar{
				Label: util.FormatDateShort(p.Date),
				Value: p.Work,
				Text:  util.FormatDurationReadable(p.Work),
				Color: p.CategoryColor,
			})
		}
		fmt.Fprintf(w, "  Last %d sessions\n", len(points))
		fmt.Fprintf(w, "  ----------------\n")
		fmt.Fprintln(w, components.NewBarChart(40).View(bars))
		fmt.Fprintf(w, "  Trend: %s\n", components.Sparkline(trend))
		fmt.Fprintln(w)
	}
}
