package models

// Status is the tri-state outcome recorded for a habit on a day.
//
// A missed day is normally represented by the absence of a Completion record;
// the explicit StatusMissed value exists so imported or legacy data can carry
// it, and the streak engine treats it identically to absence.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
	StatusMissed    Status = "missed"
)

// Valid reports whether s is one of the three completion states.
func (s Status) Valid() bool {
	switch s {
	case StatusCompleted, StatusSkipped, StatusMissed:
		return true
	}
	return false
}

// Completion records a habit's state on a specific day. The (HabitID, Date)
// pair is the natural key; the store never holds two records for the same pair.
type Completion struct {
	HabitID string   `json:"habit_id"`
	Date    string   `json:"date"` // YYYY-MM-DD format
	Status  Status   `json:"status"`
	Value   *float64 `json:"value"`
}
