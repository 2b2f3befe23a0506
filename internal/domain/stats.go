package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/emiliopalmerini/worktime/internal/util"
)

// ChartWindow is the number of most recent daily points a chart shows.
const ChartWindow = 14

// Period selects the history window aggregated by CalculateStatistics.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// ParsePeriod validates a period name.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodWeek, PeriodMonth, PeriodYear, PeriodAll:
		return p, nil
	}
	return "", fmt.Errorf("unknown period %q (want week, month, year or all)", s)
}

// Contains reports whether t falls inside the period relative to now.
// Week is a rolling seven days; month and year are calendar based in now's
// location.
func (p Period) Contains(t, now time.Time) bool {
	switch p {
	case PeriodWeek:
		return !t.Before(now.Add(-7 * 24 * time.Hour))
	case PeriodMonth:
		t = t.In(now.Location())
		return t.Year() == now.Year() && t.Month() == now.Month()
	case PeriodYear:
		return t.In(now.Location()).Year() == now.Year()
	default:
		return true
	}
}

// CategoryTotal is the work accumulated by one category.
type CategoryTotal struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Color   string        `json:"color"`
	Total   time.Duration `json:"totalMs"`
	Entries int           `json:"count"`
}

// DailyPoint is one history entry in the chart series.
type DailyPoint struct {
	Date          time.Time     `json:"date"`
	Work          time.Duration `json:"workMs"`
	Break         time.Duration `json:"breakMs"`
	CategoryID    string        `json:"categoryId"`
	CategoryName  string        `json:"categoryName"`
	CategoryColor string        `json:"categoryColor"`
}

// Statistics summarizes the history for a period and category filter.
type Statistics struct {
	Period            Period          `json:"period"`
	CategoryID        string          `json:"categoryId"`
	DaysWorked        int             `json:"daysWorked"`
	TotalWork         time.Duration   `json:"totalWorkTimeMs"`
	TotalBreak        time.Duration   `json:"totalBreakTimeMs"`
	AvgWork           time.Duration   `json:"avgWorkTimeMs"`
	Standard          time.Duration   `json:"standardMs"`
	Overtime          time.Duration   `json:"overtimeMs"`
	IsOvertime        bool            `json:"isOvertime"`
	TotalWorkText     string          `json:"totalWorkTime"`
	TotalBreakText    string          `json:"totalBreakTime"`
	AvgWorkText       string          `json:"avgWorkTime"`
	OvertimeText      string          `json:"overtime"`
	ShowAllCategories bool            `json:"showAllCategories"`
	CategoryBreakdown []CategoryTotal `json:"categoryBreakdown,omitempty"`
	Daily             []DailyPoint    `json:"dailyData"`
}

func (c CategoryTotal) MarshalJSON() ([]byte, error) {
	type plain CategoryTotal
	return json.Marshal(struct {
		plain
		Total int64 `json:"totalMs"`
	}{plain(c), c.Total.Milliseconds()})
}

func (p DailyPoint) MarshalJSON() ([]byte, error) {
	type plain DailyPoint
	return json.Marshal(struct {
		plain
		Work  int64 `json:"workMs"`
		Break int64 `json:"breakMs"`
	}{plain(p), p.Work.Milliseconds(), p.Break.Milliseconds()})
}

// MarshalJSON writes every duration as milliseconds, matching the field names.
func (s Statistics) MarshalJSON() ([]byte, error) {
	type plain Statistics
	return json.Marshal(struct {
		plain
		TotalWork  int64 `json:"totalWorkTimeMs"`
		TotalBreak int64 `json:"totalBreakTimeMs"`
		AvgWork    int64 `json:"avgWorkTimeMs"`
		Standard   int64 `json:"standardMs"`
		Overtime   int64 `json:"overtimeMs"`
	}{
		plain(s),
		s.TotalWork.Milliseconds(),
		s.TotalBreak.Milliseconds(),
		s.AvgWork.Milliseconds(),
		s.Standard.Milliseconds(),
		s.Overtime.Milliseconds(),
	})
}

// ChartPoints returns at most the last ChartWindow points of the series.
func (s Statistics) ChartPoints() []DailyPoint {
	if len(s.Daily) <= ChartWindow {
		return s.Daily
	}
	return s.Daily[len(s.Daily)-ChartWindow:]
}

// CalculateStatistics aggregates history (newest first) for period and
// categoryID at now. It is a pure function of its arguments.
func CalculateStatistics(history []HistoryEntry, settings Settings, now time.Time, period Period, categoryID string) Statistics {
	all := categoryID == AllCategories

	filtered := make([]HistoryEntry, 0, len(history))
	for _, e := range history {
		if !period.Contains(e.WorkStart, now) {
			continue
		}
		if !all && e.CategoryID != categoryID {
			continue
		}
		filtered = append(filtered, e)
	}

	stats := Statistics{
		Period:            period,
		CategoryID:        categoryID,
		DaysWorked:        len(filtered),
		ShowAllCategories: all,
		Daily:             make([]DailyPoint, 0, len(filtered)),
	}

	index := make(map[string]int)
	for _, e := range filtered {
		stats.TotalWork += e.TotalWork
		stats.TotalBreak += e.TotalBreak

		if all {
			i, ok := index[e.CategoryID]
			if !ok {
				i = len(stats.CategoryBreakdown)
				index[e.CategoryID] = i
				stats.CategoryBreakdown = append(stats.CategoryBreakdown, CategoryTotal{
					ID:    e.CategoryID,
					Name:  e.CategoryName,
					Color: e.CategoryColor,
				})
			}
			stats.CategoryBreakdown[i].Total += e.TotalWork
			stats.CategoryBreakdown[i].Entries++
		}
	}

	for i := len(filtered) - 1; i >= 0; i-- {
		e := filtered[i]
		stats.Daily = append(stats.Daily, DailyPoint{
			Date:          e.WorkStart,
			Work:          e.TotalWork,
			Break:         e.TotalBreak,
			CategoryID:    e.CategoryID,
			CategoryName:  e.CategoryName,
			CategoryColor: e.CategoryColor,
		})
	}

	if stats.DaysWorked > 0 {
		stats.AvgWork = stats.TotalWork / time.Duration(stats.DaysWorked)
	}
	stats.Standard = time.Duration(stats.DaysWorked) * settings.DailyNormDuration()
	stats.Overtime = stats.TotalWork - stats.Standard
	stats.IsOvertime = stats.Overtime > 0

	stats.TotalWorkText = util.FormatDurationReadable(stats.TotalWork)
	stats.TotalBreakText = util.FormatDurationReadable(stats.TotalBreak)
	stats.AvgWorkText = util.FormatDurationReadable(stats.AvgWork)
	overtime := stats.Overtime
	if overtime < 0 {
		overtime = -overtime
	}
	stats.OvertimeText = util.FormatDurationReadable(overtime)

	return stats
}
