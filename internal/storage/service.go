// Package storage persists the full application state (habits, completions,
// settings) to a durable key-value store under four fixed keys, guarded by a
// schema version marker. The version marker's presence is the first-launch
// signal: when it is absent, LoadAll reports no data so the caller knows to
// run the legacy migration.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/julianstephens/tendril/internal/logger"
	"github.com/julianstephens/tendril/internal/models"
)

// State is the complete persisted application state.
type State struct {
	Habits      []models.Habit      `json:"habits"`
	Completions []models.Completion `json:"completions"`
	Settings    *models.Settings    `json:"settings"`
}

// Service reads and writes State through a KV backend.
type Service struct {
	kv KV
}

// NewService creates a persistence service over the given backend.
func NewService(kv KV) *Service {
	return &Service{kv: kv}
}

// LoadAll reads the persisted state. It returns (nil, nil) on first launch,
// detected by the absence of the schema version key. Individual data keys
// that are missing or fail to decode fall back to empty defaults rather than
// failing the load; losing a record beats crashing at startup.
func (s *Service) LoadAll(ctx context.Context) (*State, error) {
	_, ok, err := s.kv.Get(ctx, KeySchemaVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema version: %w", err)
	}
	if !ok {
		return nil, nil // first launch
	}

	values, err := s.kv.MultiGet(ctx, []string{KeyHabits, KeyCompletions, KeySettings})
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	state := &State{
		Habits:      []models.Habit{},
		Completions: []models.Completion{},
	}
	if raw, ok := values[KeyHabits]; ok {
		if err := json.Unmarshal([]byte(raw), &state.Habits); err != nil {
			logger.Warn("Discarding undecodable habits record", "error", err)
			state.Habits = []models.Habit{}
		}
	}
	if raw, ok := values[KeyCompletions]; ok {
		if err := json.Unmarshal([]byte(raw), &state.Completions); err != nil {
			logger.Warn("Discarding undecodable completions record", "error", err)
			state.Completions = []models.Completion{}
		}
	}
	if raw, ok := values[KeySettings]; ok {
		var settings models.Settings
		if err := json.Unmarshal([]byte(raw), &settings); err != nil {
			logger.Warn("Discarding undecodable settings record", "error", err)
		} else {
			state.Settings = &settings
		}
	}
	if state.Habits == nil {
		state.Habits = []models.Habit{}
	}
	if state.Completions == nil {
		state.Completions = []models.Completion{}
	}

	return state, nil
}

// SaveAll encodes and writes the full state plus the schema version as one
// atomic batch. Every save serializes the complete snapshot, never a diff.
func (s *Service) SaveAll(ctx context.Context, state State) error {
	habits, err := json.Marshal(state.Habits)
	if err != nil {
		return fmt.Errorf("failed to serialize habits: %w", err)
	}
	completions, err := json.Marshal(state.Completions)
	if err != nil {
		return fmt.Errorf("failed to serialize completions: %w", err)
	}
	settings := state.Settings
	if settings == nil {
		def := models.DefaultSettings()
		settings = &def
	}
	settingsRaw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}

	return s.kv.MultiSet(ctx, map[string]string{
		KeyHabits:        string(habits),
		KeyCompletions:   string(completions),
		KeySettings:      string(settingsRaw),
		KeySchemaVersion: strconv.Itoa(SchemaVersion),
	})
}

// ClearAll removes all four records, returning the store to its first-launch
// state.
func (s *Service) ClearAll(ctx context.Context) error {
	return s.kv.Remove(ctx, KeyHabits, KeyCompletions, KeySettings, KeySchemaVersion)
}

// Export returns the loaded state as pretty-printed JSON for user-facing
// backup. A store with no data exports an empty state.
func (s *Service) Export(ctx context.Context) (string, error) {
	state, err := s.LoadAll(ctx)
	if err != nil {
		return "", err
	}
	if state == nil {
		state = &State{
			Habits:      []models.Habit{},
			Completions: []models.Completion{},
		}
	}

	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize export: %w", err)
	}
	return string(raw), nil
}

// importPayload defers array decoding so Import can distinguish "key absent
// or null" from "present but wrong shape" — both are rejected, but only after
// checking, and never with a partial write.
type importPayload struct {
	Habits      json.RawMessage  `json:"habits"`
	Completions json.RawMessage  `json:"completions"`
	Settings    *models.Settings `json:"settings"`
}

// Import parses and validates a backup document, persisting it via SaveAll
// only when both habits and completions decode as arrays. It returns false
// instead of an error so the caller can show a friendly failure message; on
// false, nothing has been written.
func (s *Service) Import(ctx context.Context, doc string) bool {
	var payload importPayload
	if err := json.Unmarshal([]byte(doc), &payload); err != nil {
		logger.Warn("Import rejected: not valid JSON", "error", err)
		return false
	}
	if len(payload.Habits) == 0 || len(payload.Completions) == 0 {
		logger.Warn("Import rejected: missing habits or completions")
		return false
	}

	var habits []models.Habit
	if err := json.Unmarshal(payload.Habits, &habits); err != nil || habits == nil {
		logger.Warn("Import rejected: habits is not an array")
		return false
	}
	var completions []models.Completion
	if err := json.Unmarshal(payload.Completions, &completions); err != nil || completions == nil {
		logger.Warn("Import rejected: completions is not an array")
		return false
	}

	settings := payload.Settings
	if settings == nil {
		def := models.DefaultSettings()
		settings = &def
	}

	if err := s.SaveAll(ctx, State{Habits: habits, Completions: completions, Settings: settings}); err != nil {
		logger.Warn("Import failed to persist", "error", err)
		return false
	}
	return true
}
