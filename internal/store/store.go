// Package store holds the in-memory source of truth for habits, completions,
// and settings. Mutations apply synchronously in the order received; after
// each one the full state snapshot is handed to a fire-and-forget persistence
// write. The store is the sole writer of the completion log.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tendril/internal/charts"
	"github.com/julianstephens/tendril/internal/legacy"
	"github.com/julianstephens/tendril/internal/logger"
	"github.com/julianstephens/tendril/internal/models"
	"github.com/julianstephens/tendril/internal/storage"
	"github.com/julianstephens/tendril/internal/streak"
)

// AppState is constructed once at startup and passed by reference to whatever
// needs it. It is safe for concurrent use, though the application is
// effectively single-threaded apart from the persistence write-backs.
type AppState struct {
	mu          sync.Mutex
	habits      []models.Habit
	completions []models.Completion
	settings    models.Settings

	svc     *storage.Service
	pending sync.WaitGroup
}

// New creates an AppState over the given persistence service. Call Load
// before use.
func New(svc *storage.Service) *AppState {
	return &AppState{
		svc:      svc,
		settings: models.DefaultSettings(),
	}
}

// Load populates the state from durable storage. On first launch (no schema
// version present) it runs the one-time legacy migration over the seed data
// and persists the baseline synchronously, so no second migration can race
// it. A load failure is treated the same as first launch: starting fresh
// beats refusing to start.
func (a *AppState) Load(ctx context.Context) error {
	state, err := a.svc.LoadAll(ctx)
	if err != nil {
		logger.Warn("Failed to load persisted state, starting fresh", "error", err)
		state = nil
	}

	if state == nil {
		habits, completions := legacy.Migrate(legacy.SeedHabits(), time.Now())
		a.mu.Lock()
		a.habits = habits
		a.completions = completions
		a.settings = models.DefaultSettings()
		snapshot := a.snapshotLocked()
		a.mu.Unlock()

		if err := a.svc.SaveAll(ctx, snapshot); err != nil {
			return err
		}
		logger.Info("Migrated legacy data", "habits", len(habits), "completions", len(completions))
		return nil
	}

	a.mu.Lock()
	a.habits = state.Habits
	a.completions = state.Completions
	if state.Settings != nil {
		a.settings = *state.Settings
	} else {
		a.settings = models.DefaultSettings()
	}
	a.mu.Unlock()
	return nil
}

// snapshotLocked copies the full state for persistence. Callers must hold mu.
func (a *AppState) snapshotLocked() storage.State {
	habits := make([]models.Habit, len(a.habits))
	copy(habits, a.habits)
	completions := make([]models.Completion, len(a.completions))
	copy(completions, a.completions)
	settings := a.settings
	return storage.State{Habits: habits, Completions: completions, Settings: &settings}
}

// persistBestEffort writes a snapshot in the background. The write may lag
// behind later mutations, but each write carries a complete snapshot taken
// under the lock, so the durable side always converges on some recent full
// state. Failures are logged and otherwise discarded.
func (a *AppState) persistBestEffort(snapshot storage.State) {
	a.pending.Add(1)
	go func() {
		defer a.pending.Done()
		if err := a.svc.SaveAll(context.Background(), snapshot); err != nil {
			logger.Warn("Best-effort save failed", "error", err)
		}
	}()
}

// Flush blocks until all pending persistence writes have finished. The CLI
// calls it before exiting.
func (a *AppState) Flush() {
	a.pending.Wait()
}

// AddHabit stores a new habit. The id and creation timestamp are assigned
// here; an unknown color falls back to the default and an invalid category to
// Wellness. The stored habit is returned.
func (a *AppState) AddHabit(h models.Habit) models.Habit {
	h.ID = uuid.New().String()
	h.CreatedAt = time.Now().Format(time.RFC3339)
	h.ColorID = h.ColorID.Normalize()
	if !h.Category.Valid() {
		h.Category = models.CategoryWellness
	}
	if h.SelectedDays == nil {
		h.SelectedDays = []int{}
	}

	a.mu.Lock()
	a.habits = append(a.habits, h)
	snapshot := a.snapshotLocked()
	a.mu.Unlock()

	a.persistBestEffort(snapshot)
	return h
}

// UpdateHabit applies a partial update. It reports whether the habit exists.
func (a *AppState) UpdateHabit(id string, update models.HabitUpdate) bool {
	a.mu.Lock()
	idx := a.habitIndexLocked(id)
	if idx < 0 {
		a.mu.Unlock()
		return false
	}

	h := &a.habits[idx]
	if update.Title != nil {
		h.Title = *update.Title
	}
	if update.ColorID != nil {
		h.ColorID = update.ColorID.Normalize()
	}
	if update.Icon != nil {
		h.Icon = *update.Icon
	}
	if update.Category != nil && update.Category.Valid() {
		h.Category = *update.Category
	}
	if update.SelectedDays != nil {
		h.SelectedDays = *update.SelectedDays
	}
	if update.ClearTarget {
		h.TargetValue = nil
		h.TargetUnit = nil
	} else {
		if update.TargetValue != nil {
			h.TargetValue = update.TargetValue
		}
		if update.TargetUnit != nil {
			h.TargetUnit = update.TargetUnit
		}
	}
	if update.Notes != nil {
		h.Notes = *update.Notes
	}
	if update.ReminderEnabled != nil {
		h.ReminderEnabled = *update.ReminderEnabled
	}
	if update.ClearReminder {
		h.ReminderTime = nil
	} else if update.ReminderTime != nil {
		h.ReminderTime = update.ReminderTime
	}
	if update.Archived != nil {
		h.Archived = *update.Archived
	}

	snapshot := a.snapshotLocked()
	a.mu.Unlock()

	a.persistBestEffort(snapshot)
	return true
}

// DeleteHabit removes a habit and cascades to its completions. It reports
// whether the habit existed.
func (a *AppState) DeleteHabit(id string) bool {
	a.mu.Lock()
	idx := a.habitIndexLocked(id)
	if idx < 0 {
		a.mu.Unlock()
		return false
	}

	a.habits = append(a.habits[:idx], a.habits[idx+1:]...)
	kept := a.completions[:0]
	for _, c := range a.completions {
		if c.HabitID != id {
			kept = append(kept, c)
		}
	}
	a.completions = kept

	snapshot := a.snapshotLocked()
	a.mu.Unlock()

	a.persistBestEffort(snapshot)
	return true
}

// ToggleCompletion is the only mutation path for completion records. With no
// explicit status it creates a completed record or removes an existing one.
// With an explicit status it creates the record, removes it when the status
// already matches (toggling off), or overwrites a differing status. At most
// one record ever exists per (habit, date) pair.
func (a *AppState) ToggleCompletion(habitID, date string, explicit *models.Status) {
	a.mu.Lock()

	idx := -1
	for i, c := range a.completions {
		if c.HabitID == habitID && c.Date == date {
			idx = i
			break
		}
	}

	switch {
	case idx < 0:
		status := models.StatusCompleted
		if explicit != nil {
			status = *explicit
		}
		a.completions = append(a.completions, models.Completion{
			HabitID: habitID,
			Date:    date,
			Status:  status,
		})
	case explicit == nil || *explicit == a.completions[idx].Status:
		a.completions = append(a.completions[:idx], a.completions[idx+1:]...)
	default:
		a.completions[idx].Status = *explicit
	}

	snapshot := a.snapshotLocked()
	a.mu.Unlock()

	a.persistBestEffort(snapshot)
}

// SetSettings replaces the user settings.
func (a *AppState) SetSettings(settings models.Settings) {
	a.mu.Lock()
	a.settings = settings
	snapshot := a.snapshotLocked()
	a.mu.Unlock()

	a.persistBestEffort(snapshot)
}

// ResetAll clears durable storage and reseeds from the legacy data, as a
// fresh install would. The clear and reseed persist synchronously.
func (a *AppState) ResetAll(ctx context.Context) error {
	a.Flush()
	if err := a.svc.ClearAll(ctx); err != nil {
		return err
	}
	return a.Load(ctx)
}

func (a *AppState) habitIndexLocked(id string) int {
	for i, h := range a.habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}

// Habits returns a copy of all habits, archived included.
func (a *AppState) Habits() []models.Habit {
	a.mu.Lock()
	defer a.mu.Unlock()
	habits := make([]models.Habit, len(a.habits))
	copy(habits, a.habits)
	return habits
}

// ActiveHabits returns the unarchived habits.
func (a *AppState) ActiveHabits() []models.Habit {
	a.mu.Lock()
	defer a.mu.Unlock()
	var habits []models.Habit
	for _, h := range a.habits {
		if !h.Archived {
			habits = append(habits, h)
		}
	}
	return habits
}

// Habit looks up a habit by id.
func (a *AppState) Habit(id string) (models.Habit, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if idx := a.habitIndexLocked(id); idx >= 0 {
		return a.habits[idx], true
	}
	return models.Habit{}, false
}

// Completions returns a copy of the full completion log.
func (a *AppState) Completions() []models.Completion {
	a.mu.Lock()
	defer a.mu.Unlock()
	completions := make([]models.Completion, len(a.completions))
	copy(completions, a.completions)
	return completions
}

// Settings returns the current user settings.
func (a *AppState) Settings() models.Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

// HabitStreak returns the habit's current streak, 0 for an unknown id.
func (a *AppState) HabitStreak(id string) int {
	h, completions, ok := a.habitView(id)
	if !ok {
		return 0
	}
	return streak.Current(h, completions)
}

// HabitLongestStreak returns the habit's longest streak ever, 0 for an
// unknown id.
func (a *AppState) HabitLongestStreak(id string) int {
	h, completions, ok := a.habitView(id)
	if !ok {
		return 0
	}
	return streak.Longest(h, completions)
}

// HabitCompletionRate returns the completion percentage over the last `days`
// calendar days, 0 for an unknown id.
func (a *AppState) HabitCompletionRate(id string, days int) int {
	h, completions, ok := a.habitView(id)
	if !ok {
		return 0
	}
	return streak.CompletionRate(h, completions, days)
}

// HabitWeek returns the current Monday-start week's statuses for a habit.
func (a *AppState) HabitWeek(id string) [7]*models.Status {
	a.mu.Lock()
	completions := make([]models.Completion, len(a.completions))
	copy(completions, a.completions)
	a.mu.Unlock()
	return streak.WeekRow(id, completions)
}

// HabitCharts returns all derived chart series for a habit; empty series for
// an unknown id.
func (a *AppState) HabitCharts(id string) charts.Data {
	h, completions, ok := a.habitView(id)
	if !ok {
		return charts.Data{}
	}
	return charts.ForHabit(h, completions)
}

// habitView snapshots one habit and the completion log for pure derivation.
func (a *AppState) habitView(id string) (models.Habit, []models.Completion, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	idx := a.habitIndexLocked(id)
	if idx < 0 {
		return models.Habit{}, nil, false
	}
	completions := make([]models.Completion, len(a.completions))
	copy(completions, a.completions)
	return a.habits[idx], completions, true
}
