// Package streak derives current streak, longest streak, completion rate, and
// week views from a habit's sparse completion log. Every function is total: an
// unknown habit, an empty log, or an out-of-range window degrades to a zero or
// empty result rather than an error, so callers can render without guarding.
package streak

import (
	"fmt"
	"time"

	"github.com/julianstephens/tendril/internal/dates"
	"github.com/julianstephens/tendril/internal/models"
)

// maxWalk bounds the backward walk so it always terminates, even on a log
// with pathological gaps. A year is far beyond any streak worth rendering.
const maxWalk = 365

// DefaultRateWindow is the window CompletionRate uses when callers pass a
// non-positive day count.
const DefaultRateWindow = 30

// IsScheduled reports whether t is a scheduled day for the habit. An empty
// SelectedDays means the habit is scheduled every day.
func IsScheduled(h models.Habit, t time.Time) bool {
	if len(h.SelectedDays) == 0 {
		return true
	}
	dow := dates.Weekday(t)
	for _, d := range h.SelectedDays {
		if d == dow {
			return true
		}
	}
	return false
}

// CompletionMap builds a date-key lookup of one habit's records from the full
// completion log.
func CompletionMap(habitID string, completions []models.Completion) map[string]models.Status {
	m := make(map[string]models.Status)
	for _, c := range completions {
		if c.HabitID == habitID {
			m[c.Date] = c.Status
		}
	}
	return m
}

// Current returns the habit's streak as of today: consecutive scheduled days
// with a completed record, walking backward. Skipped days are transparent, and
// today itself never breaks the count if unmarked.
func Current(h models.Habit, completions []models.Completion) int {
	return CurrentAt(h, completions, time.Now())
}

// CurrentAt computes the streak as it would have read when evaluated on the
// anchor day. The "day still in progress" exemption applies to the first
// scheduled day examined in the backward walk — literally the anchor day when
// it is scheduled. An unmarked scheduled day any further back ends the streak.
func CurrentAt(h models.Habit, completions []models.Completion, anchor time.Time) int {
	return currentFromMap(h, CompletionMap(h.ID, completions), anchor)
}

func currentFromMap(h models.Habit, log map[string]models.Status, anchor time.Time) int {
	streak := 0
	d := anchor
	for i := 0; i < maxWalk; i++ {
		if IsScheduled(h, d) {
			switch log[dates.Key(d)] {
			case models.StatusCompleted:
				streak++
			case models.StatusSkipped:
				// streak-neutral: no count, no break
			default:
				if i > 0 {
					return streak
				}
				// anchor day not yet marked; keep walking
			}
		}
		d = dates.AddDays(d, -1)
	}
	return streak
}

// Longest returns the longest streak the habit has ever held, walking forward
// from the earliest recorded date through today. A habit with no records has
// a longest streak of 0.
func Longest(h models.Habit, completions []models.Completion) int {
	log := CompletionMap(h.ID, completions)

	var earliest string
	for key := range log {
		if earliest == "" || key < earliest {
			earliest = key
		}
	}
	if earliest == "" {
		return 0
	}
	start, err := dates.Parse(earliest)
	if err != nil {
		return 0
	}

	end := time.Now()
	longest, current := 0, 0
	for d := start; !d.After(end); d = dates.AddDays(d, 1) {
		if !IsScheduled(h, d) {
			continue
		}
		switch log[dates.Key(d)] {
		case models.StatusCompleted:
			current++
			if current > longest {
				longest = current
			}
		case models.StatusSkipped:
			// neither breaks nor extends
		default:
			current = 0
		}
	}
	return longest
}

// CompletionRate returns the percentage of scheduled days completed over the
// last `days` calendar days (not scheduled days), rounded to the nearest
// integer. It is 0 when the window contains no scheduled days.
func CompletionRate(h models.Habit, completions []models.Completion, days int) int {
	if days <= 0 {
		days = DefaultRateWindow
	}
	log := CompletionMap(h.ID, completions)

	scheduled, completed := 0, 0
	d := time.Now()
	for i := 0; i < days; i++ {
		if IsScheduled(h, d) {
			scheduled++
			if log[dates.Key(d)] == models.StatusCompleted {
				completed++
			}
		}
		d = dates.AddDays(d, -1)
	}
	if scheduled == 0 {
		return 0
	}
	return int(float64(completed)/float64(scheduled)*100 + 0.5)
}

// WeekRow returns the stored status for each day of the current Monday-start
// week, nil where no record exists. It is a plain lookup for UI rendering and
// performs no streak logic.
func WeekRow(habitID string, completions []models.Completion) [7]*models.Status {
	log := CompletionMap(habitID, completions)
	monday := dates.WeekStart(time.Now())

	var row [7]*models.Status
	for i := 0; i < 7; i++ {
		if status, ok := log[dates.Key(dates.AddDays(monday, i))]; ok {
			s := status
			row[i] = &s
		}
	}
	return row
}

// FrequencyLabel renders a schedule as a short display label.
func FrequencyLabel(selectedDays []int) string {
	switch {
	case len(selectedDays) == 0 || len(selectedDays) == 7:
		return "Daily"
	case len(selectedDays) == 5 && containsAll(selectedDays, 0, 1, 2, 3, 4):
		return "Weekdays"
	case len(selectedDays) == 2 && containsAll(selectedDays, 5, 6):
		return "Weekends"
	default:
		return fmt.Sprintf("%dx/week", len(selectedDays))
	}
}

func containsAll(days []int, want ...int) bool {
	for _, w := range want {
		found := false
		for _, d := range days {
			if d == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
