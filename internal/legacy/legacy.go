// Package legacy converts the old weekly-grid habit format into the current
// (habits, completions) representation. The old format stored a dense 7-slot
// 0/1 array describing just the current week plus a streak counter; neither
// carries enough history to reconstruct, so the migration is one-way and
// lossy: week cells become completed records in the current Monday week and
// the legacy streak counter is discarded.
//
// The migration is not idempotent. It must run exactly once, gated by the
// persistence layer's schema-version check.
package legacy

import (
	"fmt"
	"time"

	"github.com/julianstephens/tendril/internal/dates"
	"github.com/julianstephens/tendril/internal/models"
)

// Habit is the legacy weekly-grid representation.
type Habit struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Frequency string `json:"frequency"`
	Streak    int    `json:"streak"`
	Week      [7]int `json:"week"` // Monday-first, 0=incomplete 1=complete
}

// Migrate transforms legacy habits into the current model. Ids are stable
// ("migrated-{oldID}"), colors rotate through the palette by position, and
// every habit lands in Wellness with a daily schedule. Week cells marked done
// become completed records within the Monday-start week containing now.
func Migrate(old []Habit, now time.Time) ([]models.Habit, []models.Completion) {
	habits := make([]models.Habit, 0, len(old))
	completions := make([]models.Completion, 0)

	monday := dates.WeekStart(now)

	for idx, oh := range old {
		habitID := fmt.Sprintf("migrated-%d", oh.ID)

		habits = append(habits, models.Habit{
			ID:           habitID,
			Title:        oh.Title,
			ColorID:      models.Palette[idx%len(models.Palette)],
			Category:     models.CategoryWellness,
			SelectedDays: []int{}, // daily
			CreatedAt:    now.Format(time.RFC3339),
		})

		for dayIdx, done := range oh.Week {
			if done == 0 {
				continue
			}
			completions = append(completions, models.Completion{
				HabitID: habitID,
				Date:    dates.Key(dates.AddDays(monday, dayIdx)),
				Status:  models.StatusCompleted,
			})
		}
	}

	return habits, completions
}

// SeedHabits is the stock data a fresh install starts from, carried over from
// the app's original mock data set.
func SeedHabits() []Habit {
	return []Habit{
		{ID: 1, Title: "Meditate", Frequency: "Daily", Streak: 5, Week: [7]int{1, 1, 1, 1, 1, 0, 0}},
		{ID: 2, Title: "Read", Frequency: "Daily", Streak: 12, Week: [7]int{1, 1, 1, 1, 1, 1, 1}},
		{ID: 3, Title: "Exercise", Frequency: "3x/week", Streak: 3, Week: [7]int{1, 0, 1, 0, 1, 0, 0}},
		{ID: 4, Title: "Journal", Frequency: "Daily", Streak: 0, Week: [7]int{1, 1, 0, 1, 0, 0, 0}},
		{ID: 5, Title: "No sugar", Frequency: "Daily", Streak: 8, Week: [7]int{1, 1, 1, 1, 1, 1, 1}},
	}
}
