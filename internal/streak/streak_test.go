package streak

import (
	"testing"
	"time"

	"github.com/julianstephens/tendril/internal/dates"
	"github.com/julianstephens/tendril/internal/models"
)

// 2026-08-17 is a Monday; anchorFri is the Friday of that week.
var anchorFri = time.Date(2026, 8, 21, 0, 0, 0, 0, time.Local)

func dailyHabit(id string) models.Habit {
	return models.Habit{ID: id, Title: "Test", SelectedDays: []int{}}
}

func completed(habitID string, days ...time.Time) []models.Completion {
	var out []models.Completion
	for _, d := range days {
		out = append(out, models.Completion{
			HabitID: habitID,
			Date:    dates.Key(d),
			Status:  models.StatusCompleted,
		})
	}
	return out
}

func lastDays(anchor time.Time, n int) []time.Time {
	var out []time.Time
	for i := 0; i < n; i++ {
		out = append(out, dates.AddDays(anchor, -i))
	}
	return out
}

func TestCurrentAt_UnbrokenDailyRun(t *testing.T) {
	h := dailyHabit("h1")
	log := completed("h1", lastDays(anchorFri, 5)...)

	if got := CurrentAt(h, log, anchorFri); got != 5 {
		t.Errorf("CurrentAt = %d, want 5", got)
	}
}

func TestCurrentAt_AnchorDayUnmarkedDoesNotBreak(t *testing.T) {
	h := dailyHabit("h1")
	// Completed yesterday and the 3 days before, nothing on the anchor day.
	log := completed("h1", lastDays(dates.AddDays(anchorFri, -1), 4)...)

	if got := CurrentAt(h, log, anchorFri); got != 4 {
		t.Errorf("CurrentAt = %d, want 4", got)
	}
}

func TestCurrentAt_BreaksOnMiss(t *testing.T) {
	h := dailyHabit("h1")
	// 3 completed days ending at the anchor, a gap, then 3 more before that.
	log := completed("h1", lastDays(anchorFri, 3)...)
	log = append(log, completed("h1", lastDays(dates.AddDays(anchorFri, -4), 3)...)...)

	if got := CurrentAt(h, log, anchorFri); got != 3 {
		t.Errorf("CurrentAt = %d, want 3 (run before the gap must not count)", got)
	}
}

func TestCurrentAt_SkipIsNeutral(t *testing.T) {
	h := dailyHabit("h1")
	// 5 completed days with a skipped day interposed two days back: the walk
	// must pass through it without counting it or stopping.
	log := completed("h1",
		anchorFri,
		dates.AddDays(anchorFri, -1),
		dates.AddDays(anchorFri, -3),
		dates.AddDays(anchorFri, -4),
		dates.AddDays(anchorFri, -5),
	)
	log = append(log, models.Completion{
		HabitID: "h1",
		Date:    dates.Key(dates.AddDays(anchorFri, -2)),
		Status:  models.StatusSkipped,
	})

	if got := CurrentAt(h, log, anchorFri); got != 5 {
		t.Errorf("CurrentAt = %d, want 5 (skipped day must be transparent)", got)
	}
}

func TestCurrentAt_ExemptionIsLiterallyFirstStep(t *testing.T) {
	// Friday-only habit evaluated on the following Monday: the exemption was
	// consumed by Monday itself being the first backward step, so Friday's
	// absence breaks the streak even though older Fridays were completed.
	h := models.Habit{ID: "h1", SelectedDays: []int{4}}
	log := completed("h1",
		dates.AddDays(anchorFri, -7),  // previous Friday
		dates.AddDays(anchorFri, -14), // the one before
	)

	monday := dates.AddDays(anchorFri, 3)
	if got := CurrentAt(h, log, monday); got != 0 {
		t.Errorf("CurrentAt = %d, want 0 (unmarked Friday must break when checked on Monday)", got)
	}
	// Anchored on the unmarked Friday itself the exemption applies.
	if got := CurrentAt(h, log, anchorFri); got != 2 {
		t.Errorf("CurrentAt on Friday = %d, want 2", got)
	}
}

func TestCurrentAt_ScheduleExclusion(t *testing.T) {
	// Monday-only habit: Tuesday completions are invisible.
	h := models.Habit{ID: "h1", SelectedDays: []int{0}}
	log := completed("h1",
		dates.AddDays(anchorFri, -3), // Tuesday
		dates.AddDays(anchorFri, -10),
	)

	if got := CurrentAt(h, log, anchorFri); got != 0 {
		t.Errorf("CurrentAt = %d, want 0", got)
	}
	if got := Longest(h, log); got != 0 {
		t.Errorf("Longest = %d, want 0", got)
	}
}

func TestCurrentAt_MonWedFriScenario(t *testing.T) {
	h := models.Habit{ID: "h1", SelectedDays: []int{0, 2, 4}}
	log := completed("h1",
		anchorFri,                    // Friday
		dates.AddDays(anchorFri, -2), // Wednesday
		dates.AddDays(anchorFri, -4), // Monday
	)
	// A Tuesday completion must be ignored entirely.
	log = append(log, completed("h1", dates.AddDays(anchorFri, -3))...)

	if got := CurrentAt(h, log, anchorFri); got != 3 {
		t.Errorf("CurrentAt = %d, want 3", got)
	}
}

func TestCurrentAt_TotalOnEmptyLog(t *testing.T) {
	if got := CurrentAt(dailyHabit("h1"), nil, anchorFri); got != 0 {
		t.Errorf("CurrentAt on empty log = %d, want 0", got)
	}
}

func TestCurrent_DailyRunEndingToday(t *testing.T) {
	h := dailyHabit("h1")
	today := time.Now()
	log := completed("h1", lastDays(today, 5)...)

	if got := Current(h, log); got != 5 {
		t.Errorf("Current = %d, want 5", got)
	}
	if got := Longest(h, log); got != 5 {
		t.Errorf("Longest = %d, want 5", got)
	}
}

func TestLongest_ResetsOnGap(t *testing.T) {
	h := dailyHabit("h1")
	today := time.Now()
	// 2 recent days, a gap, then a 4-day run further back.
	log := completed("h1", lastDays(today, 2)...)
	log = append(log, completed("h1", lastDays(dates.AddDays(today, -3), 4)...)...)

	if got := Longest(h, log); got != 4 {
		t.Errorf("Longest = %d, want 4", got)
	}
}

func TestLongest_StartsAtEarliestRecord(t *testing.T) {
	// The walk starts at the earliest record, so a habit whose first record
	// is recent is never penalized for the silence before it.
	h := dailyHabit("h1")
	today := time.Now()
	log := completed("h1", lastDays(today, 3)...)

	if got := Longest(h, log); got != 3 {
		t.Errorf("Longest = %d, want 3", got)
	}
}

func TestLongest_SkippedDoesNotReset(t *testing.T) {
	h := dailyHabit("h1")
	today := time.Now()
	log := completed("h1", today, dates.AddDays(today, -2), dates.AddDays(today, -3))
	log = append(log, models.Completion{
		HabitID: "h1",
		Date:    dates.Key(dates.AddDays(today, -1)),
		Status:  models.StatusSkipped,
	})

	if got := Longest(h, log); got != 3 {
		t.Errorf("Longest = %d, want 3 (skip must not reset the run)", got)
	}
}

func TestCompletionRate_Bounds(t *testing.T) {
	h := dailyHabit("h1")

	if got := CompletionRate(h, nil, 30); got != 0 {
		t.Errorf("rate on empty log = %d, want 0", got)
	}

	log := completed("h1", lastDays(time.Now(), 30)...)
	if got := CompletionRate(h, log, 30); got != 100 {
		t.Errorf("rate on full log = %d, want 100", got)
	}

	log = completed("h1", lastDays(time.Now(), 15)...)
	got := CompletionRate(h, log, 30)
	if got < 0 || got > 100 {
		t.Fatalf("rate out of bounds: %d", got)
	}
	if got != 50 {
		t.Errorf("rate on half-complete log = %d, want 50", got)
	}
}

func TestCompletionRate_NeverScheduledInWindow(t *testing.T) {
	// All seven days deselected is not expressible (empty means daily), but a
	// schedule is never satisfied when every completion misses it.
	h := models.Habit{ID: "h1", SelectedDays: []int{0}}
	if got := CompletionRate(h, nil, 7); got < 0 || got > 100 {
		t.Errorf("rate out of bounds: %d", got)
	}
}

func TestWeekRow_LooksUpCurrentWeek(t *testing.T) {
	today := time.Now()
	log := []models.Completion{{
		HabitID: "h1",
		Date:    dates.Key(today),
		Status:  models.StatusCompleted,
	}}

	row := WeekRow("h1", log)
	idx := dates.Weekday(today)
	if row[idx] == nil || *row[idx] != models.StatusCompleted {
		t.Errorf("row[%d] = %v, want completed", idx, row[idx])
	}
	for i, status := range row {
		if i != idx && status != nil {
			t.Errorf("row[%d] = %v, want nil", i, *status)
		}
	}
}

func TestFrequencyLabel(t *testing.T) {
	cases := []struct {
		days []int
		want string
	}{
		{nil, "Daily"},
		{[]int{}, "Daily"},
		{[]int{0, 1, 2, 3, 4, 5, 6}, "Daily"},
		{[]int{0, 1, 2, 3, 4}, "Weekdays"},
		{[]int{5, 6}, "Weekends"},
		{[]int{0, 2, 4}, "3x/week"},
		{[]int{6}, "1x/week"},
	}
	for _, tc := range cases {
		if got := FrequencyLabel(tc.days); got != tc.want {
			t.Errorf("FrequencyLabel(%v) = %q, want %q", tc.days, got, tc.want)
		}
	}
}

func TestIsScheduled_EmptyMeansEveryDay(t *testing.T) {
	h := dailyHabit("h1")
	for i := 0; i < 7; i++ {
		if !IsScheduled(h, dates.AddDays(anchorFri, -i)) {
			t.Errorf("day -%d not scheduled for an empty selection", i)
		}
	}
}
