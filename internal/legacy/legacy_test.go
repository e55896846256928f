package legacy

import (
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/tendril/internal/models"
)

// A Friday; its Monday-start week runs 2026-08-17 through 2026-08-23.
var fixedNow = time.Date(2026, 8, 21, 14, 30, 0, 0, time.Local)

func TestMigrate_PlacesWeekCellsInCurrentWeek(t *testing.T) {
	old := []Habit{
		{ID: 7, Title: "Stretch", Frequency: "Daily", Streak: 9, Week: [7]int{1, 0, 1, 0, 0, 0, 1}},
	}

	habits, completions := Migrate(old, fixedNow)

	if len(habits) != 1 {
		t.Fatalf("got %d habits, want 1", len(habits))
	}
	h := habits[0]
	if h.ID != "migrated-7" {
		t.Errorf("id = %q, want migrated-7", h.ID)
	}
	if h.Title != "Stretch" {
		t.Errorf("title = %q, want Stretch", h.Title)
	}
	if h.Category != models.CategoryWellness {
		t.Errorf("category = %q, want Wellness", h.Category)
	}
	if len(h.SelectedDays) != 0 {
		t.Errorf("selected days = %v, want empty (daily)", h.SelectedDays)
	}

	want := []string{"2026-08-17", "2026-08-19", "2026-08-23"}
	if len(completions) != len(want) {
		t.Fatalf("got %d completions, want %d", len(completions), len(want))
	}
	for i, c := range completions {
		if c.Date != want[i] {
			t.Errorf("completion %d date = %s, want %s", i, c.Date, want[i])
		}
		if c.Status != models.StatusCompleted {
			t.Errorf("completion %d status = %s, want completed", i, c.Status)
		}
		if c.HabitID != "migrated-7" {
			t.Errorf("completion %d habit = %s, want migrated-7", i, c.HabitID)
		}
	}
}

func TestMigrate_RotatesPalette(t *testing.T) {
	old := make([]Habit, len(models.Palette)+2)
	for i := range old {
		old[i] = Habit{ID: i + 1, Title: "H"}
	}

	habits, _ := Migrate(old, fixedNow)
	for i, h := range habits {
		want := models.Palette[i%len(models.Palette)]
		if h.ColorID != want {
			t.Errorf("habit %d color = %q, want %q", i, h.ColorID, want)
		}
	}
}

func TestMigrate_DeterministicForFixedNow(t *testing.T) {
	// The legacy streak counter is discarded, so two runs over the same input
	// and the same "now" must agree exactly.
	old := SeedHabits()

	habitsA, completionsA := Migrate(old, fixedNow)
	habitsB, completionsB := Migrate(old, fixedNow)

	if !reflect.DeepEqual(habitsA, habitsB) {
		t.Errorf("habit output differs between runs")
	}
	if !reflect.DeepEqual(completionsA, completionsB) {
		t.Errorf("completion output differs between runs")
	}
}

func TestMigrate_EmptyInput(t *testing.T) {
	habits, completions := Migrate(nil, fixedNow)
	if len(habits) != 0 || len(completions) != 0 {
		t.Errorf("got %d habits and %d completions, want none", len(habits), len(completions))
	}
}

func TestSeedHabits_StableShape(t *testing.T) {
	seeds := SeedHabits()
	if len(seeds) != 5 {
		t.Fatalf("got %d seed habits, want 5", len(seeds))
	}
	for _, s := range seeds {
		if s.Title == "" {
			t.Errorf("seed habit %d has an empty title", s.ID)
		}
	}
}
