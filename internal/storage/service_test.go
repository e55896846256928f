package storage

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/julianstephens/tendril/internal/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tendril.db")
	return NewService(NewFileKV(path))
}

func sampleState() State {
	settings := models.DefaultSettings()
	return State{
		Habits: []models.Habit{
			{ID: "h1", Title: "Meditate", ColorID: models.DefaultColor, Category: models.CategoryWellness, SelectedDays: []int{}},
		},
		Completions: []models.Completion{
			{HabitID: "h1", Date: "2026-08-17", Status: models.StatusCompleted},
		},
		Settings: &settings,
	}
}

func TestLoadAll_FirstLaunchIsNil(t *testing.T) {
	svc := newTestService(t)

	state, err := svc.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if state != nil {
		t.Fatalf("got %+v, want nil on first launch", state)
	}
}

func TestSaveAll_LoadAllRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.SaveAll(ctx, sampleState()); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}

	state, err := svc.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if state == nil {
		t.Fatal("got nil state after save")
	}
	if len(state.Habits) != 1 || state.Habits[0].ID != "h1" {
		t.Errorf("habits = %+v, want the saved habit", state.Habits)
	}
	if len(state.Completions) != 1 || state.Completions[0].Date != "2026-08-17" {
		t.Errorf("completions = %+v, want the saved record", state.Completions)
	}
	if state.Settings == nil || state.Settings.UserName != "Sam" {
		t.Errorf("settings = %+v, want defaults", state.Settings)
	}
}

func TestLoadAll_ToleratesCorruptRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tendril.db")
	kv := NewFileKV(path)
	svc := NewService(kv)
	ctx := context.Background()

	if err := svc.SaveAll(ctx, sampleState()); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}
	// Corrupt one record in place; the rest must still load.
	if err := kv.Set(ctx, KeyHabits, "{{not json"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	state, err := svc.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(state.Habits) != 0 {
		t.Errorf("habits = %+v, want empty after corruption", state.Habits)
	}
	if len(state.Completions) != 1 {
		t.Errorf("completions = %+v, want the surviving record", state.Completions)
	}
}

func TestClearAll_RestoresFirstLaunch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.SaveAll(ctx, sampleState()); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}
	if err := svc.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}

	state, err := svc.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if state != nil {
		t.Errorf("got %+v, want nil after clear", state)
	}
}

func TestExport_EmptyStoreProducesEmptyState(t *testing.T) {
	svc := newTestService(t)

	doc, err := svc.Export(context.Background())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var state State
	if err := json.Unmarshal([]byte(doc), &state); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(state.Habits) != 0 || len(state.Completions) != 0 {
		t.Errorf("export = %+v, want empty arrays", state)
	}
}

func TestImport_RoundTripsThroughExport(t *testing.T) {
	srcSvc := newTestService(t)
	dstSvc := newTestService(t)
	ctx := context.Background()

	if err := srcSvc.SaveAll(ctx, sampleState()); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}
	doc, err := srcSvc.Export(ctx)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if !dstSvc.Import(ctx, doc) {
		t.Fatal("Import rejected a valid export")
	}
	state, err := dstSvc.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(state.Habits) != 1 || state.Habits[0].Title != "Meditate" {
		t.Errorf("habits = %+v, want the imported habit", state.Habits)
	}
}

func TestImport_AcceptsEmptyArrays(t *testing.T) {
	svc := newTestService(t)

	if !svc.Import(context.Background(), `{"habits": [], "completions": []}`) {
		t.Error("empty arrays are a valid (empty) backup and must import")
	}
}

func TestImport_RejectsBadDocuments(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"not json", "not json at all"},
		{"missing habits", `{"completions": []}`},
		{"missing completions", `{"habits": []}`},
		{"habits not an array", `{"habits": "nope", "completions": []}`},
		{"completions null", `{"habits": [], "completions": null}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(t)
			ctx := context.Background()

			if err := svc.SaveAll(ctx, sampleState()); err != nil {
				t.Fatalf("SaveAll: %v", err)
			}
			if svc.Import(ctx, tc.doc) {
				t.Fatal("Import accepted an invalid document")
			}

			// A rejected import must leave stored data untouched.
			state, err := svc.LoadAll(ctx)
			if err != nil {
				t.Fatalf("LoadAll: %v", err)
			}
			if len(state.Habits) != 1 {
				t.Errorf("habits = %+v, want the original data intact", state.Habits)
			}
		})
	}
}

func TestImport_DefaultsMissingSettings(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if !svc.Import(ctx, `{"habits": [], "completions": []}`) {
		t.Fatal("Import rejected a valid document")
	}
	state, err := svc.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if state.Settings == nil || state.Settings.CategoryFilter != models.CategoryAll {
		t.Errorf("settings = %+v, want defaults", state.Settings)
	}
}
