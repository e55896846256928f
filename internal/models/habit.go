package models

// ColorID identifies a color in the fixed habit palette.
type ColorID string

const (
	ColorSage     ColorID = "sage"
	ColorTeal     ColorID = "teal"
	ColorSky      ColorID = "sky"
	ColorLavender ColorID = "lavender"
	ColorCoral    ColorID = "coral"
	ColorAmber    ColorID = "amber"
	ColorRose     ColorID = "rose"
	ColorSlate    ColorID = "slate"
)

// Palette is the rotation order used when assigning colors automatically.
var Palette = []ColorID{
	ColorSage, ColorTeal, ColorSky, ColorLavender,
	ColorCoral, ColorAmber, ColorRose, ColorSlate,
}

// DefaultColor is used when an unknown color id is encountered.
const DefaultColor = ColorSage

// Valid reports whether c is one of the palette colors.
func (c ColorID) Valid() bool {
	for _, p := range Palette {
		if c == p {
			return true
		}
	}
	return false
}

// Normalize returns c if it is a known palette color, DefaultColor otherwise.
func (c ColorID) Normalize() ColorID {
	if c.Valid() {
		return c
	}
	return DefaultColor
}

// Category groups habits for filtering.
type Category string

const (
	CategoryWellness Category = "Wellness"
	CategoryLearning Category = "Learning"
	CategoryCreative Category = "Creative"
	CategoryFitness  Category = "Fitness"
	CategoryFinance  Category = "Finance"

	// CategoryAll is a filter value only, never stored on a habit.
	CategoryAll Category = "All"
)

// Categories lists the assignable categories in display order.
var Categories = []Category{
	CategoryWellness, CategoryLearning, CategoryCreative,
	CategoryFitness, CategoryFinance,
}

// Valid reports whether c is an assignable habit category (CategoryAll excluded).
func (c Category) Valid() bool {
	for _, cat := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// TargetUnit is the unit attached to a numeric habit target.
type TargetUnit string

const (
	UnitMinutes TargetUnit = "minutes"
	UnitHours   TargetUnit = "hours"
	UnitPages   TargetUnit = "pages"
	UnitGlasses TargetUnit = "glasses"
	UnitReps    TargetUnit = "reps"
	UnitSteps   TargetUnit = "steps"
	UnitCustom  TargetUnit = "custom"
)

// Habit is a recurring practice to track.
//
// SelectedDays holds weekday indices with Monday=0 through Sunday=6. An empty
// slice means the habit is scheduled every day; callers must check for that
// sentinel before treating the slice as exclusive.
type Habit struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	ColorID         ColorID    `json:"color_id"`
	Icon            string     `json:"icon,omitempty"`
	Category        Category   `json:"category"`
	SelectedDays    []int      `json:"selected_days"`
	TargetValue     *float64   `json:"target_value"`
	TargetUnit      *TargetUnit `json:"target_unit"`
	Notes           string     `json:"notes"`
	CreatedAt       string     `json:"created_at"` // RFC3339 timestamp
	ReminderEnabled bool       `json:"reminder_enabled"`
	ReminderTime    *string    `json:"reminder_time"` // HH:MM format
	Archived        bool       `json:"archived"`
}

// HabitUpdate is a partial update applied to an existing habit. Nil fields are
// left unchanged. ID and CreatedAt are immutable and have no update fields.
// ClearTarget and ClearReminder remove the respective optional values; they
// take precedence over the corresponding set fields.
type HabitUpdate struct {
	Title           *string
	ColorID         *ColorID
	Icon            *string
	Category        *Category
	SelectedDays    *[]int
	TargetValue     *float64
	TargetUnit      *TargetUnit
	ClearTarget     bool
	Notes           *string
	ReminderEnabled *bool
	ReminderTime    *string
	ClearReminder   bool
	Archived        *bool
}
