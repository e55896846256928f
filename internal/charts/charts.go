// Package charts builds derived time series for a single habit's detail view.
// Everything here is pure recomputation over the completion log via the streak
// engine's primitives; nothing is cached. The log is bounded by days since
// install times habit count, so recomputing per read is cheap.
package charts

import (
	"fmt"
	"time"

	"github.com/julianstephens/tendril/internal/dates"
	"github.com/julianstephens/tendril/internal/models"
	"github.com/julianstephens/tendril/internal/streak"
)

const (
	// HeatmapDays is 13 full Monday-to-Sunday weeks of history.
	HeatmapDays = 91
	// StreakSeriesDays is the window for the streak-over-time line.
	StreakSeriesDays = 30
	// WeeklyBarWeeks is the number of Monday-aligned weeks in the bar series.
	WeeklyBarWeeks = 8
)

// HeatmapDay is one cell of the contribution-style heatmap.
type HeatmapDay struct {
	Date   string
	Status *models.Status // nil when the day has no record
}

// StreakPoint is the streak value as it would have read on a historical day.
type StreakPoint struct {
	Date   string
	Streak int
}

// WeeklyBar aggregates one Monday-aligned week of scheduled days.
type WeeklyBar struct {
	Label     string
	Completed int
	Total     int // floored at 1 so consumers can divide safely
}

// Data bundles the three series a habit detail view renders.
type Data struct {
	Heatmap      []HeatmapDay
	StreakSeries []StreakPoint
	WeeklyBars   []WeeklyBar
}

// ForHabit computes all three series for one habit.
func ForHabit(h models.Habit, completions []models.Completion) Data {
	return Data{
		Heatmap:      Heatmap(h, completions),
		StreakSeries: StreakSeries(h, completions),
		WeeklyBars:   WeeklyBars(h, completions),
	}
}

// Heatmap returns the last HeatmapDays days, oldest first, with each day's
// stored status or nil.
func Heatmap(h models.Habit, completions []models.Completion) []HeatmapDay {
	log := streak.CompletionMap(h.ID, completions)
	today := time.Now()

	series := make([]HeatmapDay, 0, HeatmapDays)
	for i := HeatmapDays - 1; i >= 0; i-- {
		key := dates.Key(dates.AddDays(today, -i))
		day := HeatmapDay{Date: key}
		if status, ok := log[key]; ok {
			s := status
			day.Status = &s
		}
		series = append(series, day)
	}
	return series
}

// StreakSeries recomputes the current streak as of each of the last
// StreakSeriesDays days, oldest first. Each point anchors the backward walk at
// its own day, so the unmarked-anchor exemption applies relative to that day
// rather than to the true today.
func StreakSeries(h models.Habit, completions []models.Completion) []StreakPoint {
	today := time.Now()

	series := make([]StreakPoint, 0, StreakSeriesDays)
	for i := StreakSeriesDays - 1; i >= 0; i-- {
		anchor := dates.AddDays(today, -i)
		series = append(series, StreakPoint{
			Date:   dates.Key(anchor),
			Streak: streak.CurrentAt(h, completions, anchor),
		})
	}
	return series
}

// WeeklyBars aggregates the last WeeklyBarWeeks Monday-aligned weeks, oldest
// first, labelled W1..Wn. Days after today in the current week are not counted
// toward Total.
func WeeklyBars(h models.Habit, completions []models.Completion) []WeeklyBar {
	log := streak.CompletionMap(h.ID, completions)
	today := time.Now()
	todayKey := dates.Key(today)
	monday := dates.WeekStart(today)

	series := make([]WeeklyBar, 0, WeeklyBarWeeks)
	for w := WeeklyBarWeeks - 1; w >= 0; w-- {
		weekStart := dates.AddDays(monday, -7*w)
		completed, total := 0, 0
		for i := 0; i < 7; i++ {
			d := dates.AddDays(weekStart, i)
			key := dates.Key(d)
			if key > todayKey {
				continue
			}
			if !streak.IsScheduled(h, d) {
				continue
			}
			total++
			if log[key] == models.StatusCompleted {
				completed++
			}
		}
		if total < 1 {
			total = 1
		}
		series = append(series, WeeklyBar{
			Label:     fmt.Sprintf("W%d", WeeklyBarWeeks-w),
			Completed: completed,
			Total:     total,
		})
	}
	return series
}
