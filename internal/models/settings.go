package models

// ThemeMode is the UI appearance preference.
type ThemeMode string

const (
	ThemeDark  ThemeMode = "dark"
	ThemeLight ThemeMode = "light"
)

// Settings represents user preferences persisted alongside habit data.
type Settings struct {
	UserName        string    `json:"user_name"`
	CategoryFilter  Category  `json:"category_filter"`
	ThemeMode       ThemeMode `json:"theme_mode"`
	RemindersDaily  bool      `json:"reminders_daily"`  // daily reminder toggle (UI-only)
	RemindersStreak bool      `json:"reminders_streak"` // streak alert toggle (UI-only)
}

// DefaultSettings returns the settings used on first launch and as the
// fallback when an import payload omits settings.
func DefaultSettings() Settings {
	return Settings{
		UserName:        "Sam",
		CategoryFilter:  CategoryAll,
		ThemeMode:       ThemeDark,
		RemindersDaily:  true,
		RemindersStreak: true,
	}
}
