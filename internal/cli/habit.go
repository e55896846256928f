package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/tendril/internal/dates"
	"github.com/julianstephens/tendril/internal/models"
	"github.com/julianstephens/tendril/internal/streak"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	List    HabitListCmd    `cmd:"" help:"List habits."`
	Show    HabitShowCmd    `cmd:"" help:"Show a habit's streaks and stats."`
	Mark    HabitMarkCmd    `cmd:"" help:"Toggle a habit's record for a day."`
	Chart   HabitChartCmd   `cmd:"" help:"Show a habit's history charts."`
	Archive HabitArchiveCmd `cmd:"" help:"Archive a habit."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit and its history."`
}

type HabitAddCmd struct {
	Title    string  `arg:"" help:"Habit title."`
	Color    string  `help:"Palette color id (sage, teal, sky, lavender, coral, amber, rose, slate)." default:"sage"`
	Category string  `help:"Category (Wellness, Learning, Creative, Fitness, Finance)." default:"Wellness"`
	Days     string  `help:"Scheduled weekdays, comma separated (e.g. mon,wed,fri). Empty means daily." default:""`
	Target   float64 `help:"Optional numeric target value." default:"0"`
	Unit     string  `help:"Unit for the target value (required with --target)." default:""`
	Notes    string  `help:"Free-form notes." default:""`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("habit title must not be empty")
	}
	if _, err := ctx.findHabit(c.Title); err == nil {
		return fmt.Errorf("habit with title %q already exists", c.Title)
	}

	days, err := ParseDays(c.Days)
	if err != nil {
		return err
	}

	habit := models.Habit{
		Title:        c.Title,
		ColorID:      models.ColorID(c.Color),
		Category:     models.Category(c.Category),
		SelectedDays: days,
		Notes:        c.Notes,
	}
	if c.Target > 0 {
		if c.Unit == "" {
			return fmt.Errorf("--unit is required when --target is set")
		}
		target := c.Target
		unit := models.TargetUnit(c.Unit)
		habit.TargetValue = &target
		habit.TargetUnit = &unit
	}

	habit = ctx.State.AddHabit(habit)
	fmt.Printf("Added habit: %s (%s)\n", habit.Title, streak.FrequencyLabel(habit.SelectedDays))
	return nil
}

type HabitListCmd struct {
	Archived bool   `help:"Include archived habits."`
	Category string `help:"Filter by category."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	habits := ctx.State.Habits()
	completions := ctx.State.Completions()

	shown := 0
	for _, h := range habits {
		if h.Archived && !c.Archived {
			continue
		}
		if c.Category != "" && h.Category != models.Category(c.Category) {
			continue
		}
		status := ""
		if h.Archived {
			status = " [ARCHIVED]"
		}
		fmt.Printf("%-24s %-10s %-10s streak %d%s\n",
			h.Title, h.Category, streak.FrequencyLabel(h.SelectedDays),
			streak.Current(h, completions), status)
		shown++
	}

	if shown == 0 {
		fmt.Println("No habits found.")
	}
	return nil
}

type HabitShowCmd struct {
	Title string `arg:"" help:"Habit title."`
}

func (c *HabitShowCmd) Run(ctx *Context) error {
	habit, err := ctx.findHabit(c.Title)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", habit.Title)
	fmt.Printf("  Category:   %s\n", habit.Category)
	fmt.Printf("  Schedule:   %s\n", streak.FrequencyLabel(habit.SelectedDays))
	if habit.TargetValue != nil && habit.TargetUnit != nil {
		fmt.Printf("  Target:     %g %s\n", *habit.TargetValue, *habit.TargetUnit)
	}
	fmt.Printf("  Streak:     %d\n", ctx.State.HabitStreak(habit.ID))
	fmt.Printf("  Longest:    %d\n", ctx.State.HabitLongestStreak(habit.ID))
	fmt.Printf("  Rate (30d): %d%%\n", ctx.State.HabitCompletionRate(habit.ID, streak.DefaultRateWindow))

	fmt.Print("  This week:  ")
	for i, status := range ctx.State.HabitWeek(habit.ID) {
		fmt.Print(weekCell(status))
		if i < 6 {
			fmt.Print(" ")
		}
	}
	fmt.Println()
	return nil
}

func weekCell(status *models.Status) string {
	if status == nil {
		return "."
	}
	switch *status {
	case models.StatusCompleted:
		return "x"
	case models.StatusSkipped:
		return "s"
	default:
		return "-"
	}
}

type HabitMarkCmd struct {
	Title  string `arg:"" help:"Habit title."`
	Date   string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Status string `help:"Explicit status: completed or skipped." default:"" enum:",completed,skipped"`
}

func (c *HabitMarkCmd) Run(ctx *Context) error {
	habit, err := ctx.findHabit(c.Title)
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = dates.Today()
	} else if _, err := dates.Parse(day); err != nil {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
	}

	var explicit *models.Status
	if c.Status != "" {
		status := models.Status(c.Status)
		explicit = &status
	}

	ctx.State.ToggleCompletion(habit.ID, day, explicit)

	if record := findRecord(ctx, habit.ID, day); record != nil {
		fmt.Printf("Marked habit %q as %s for %s\n", habit.Title, record.Status, day)
	} else {
		fmt.Printf("Cleared habit %q for %s\n", habit.Title, day)
	}
	return nil
}

func findRecord(ctx *Context, habitID, date string) *models.Completion {
	for _, c := range ctx.State.Completions() {
		if c.HabitID == habitID && c.Date == date {
			return &c
		}
	}
	return nil
}

type HabitChartCmd struct {
	Title string `arg:"" help:"Habit title."`
}

func (c *HabitChartCmd) Run(ctx *Context) error {
	habit, err := ctx.findHabit(c.Title)
	if err != nil {
		return err
	}

	data := ctx.State.HabitCharts(habit.ID)

	fmt.Printf("%s, last 13 weeks\n\n", habit.Title)
	// One row of 7 cells per week, Monday first within each column of days.
	for row := 0; row < 7; row++ {
		for week := 0; week < len(data.Heatmap)/7; week++ {
			idx := week*7 + row
			fmt.Print(heatCell(data.Heatmap[idx].Status), " ")
		}
		fmt.Println()
	}

	fmt.Println("\nWeekly completions (8 weeks):")
	for _, bar := range data.WeeklyBars {
		fmt.Printf("  %-3s %-14s %d/%d\n", bar.Label,
			strings.Repeat("#", bar.Completed), bar.Completed, bar.Total)
	}

	fmt.Println("\nStreak (30 days):")
	fmt.Print("  ")
	for _, point := range data.StreakSeries {
		fmt.Print(sparkCell(point.Streak))
	}
	fmt.Println()
	return nil
}

func heatCell(status *models.Status) string {
	if status == nil {
		return "."
	}
	switch *status {
	case models.StatusCompleted:
		return "#"
	case models.StatusSkipped:
		return "o"
	default:
		return "-"
	}
}

var sparks = []rune("▁▂▃▄▅▆▇█")

func sparkCell(streak int) string {
	if streak <= 0 {
		return " "
	}
	idx := streak - 1
	if idx >= len(sparks) {
		idx = len(sparks) - 1
	}
	return string(sparks[idx])
}

type HabitArchiveCmd struct {
	Title     string `arg:"" help:"Habit title to archive."`
	Unarchive bool   `help:"Unarchive the habit instead."`
}

func (c *HabitArchiveCmd) Run(ctx *Context) error {
	habit, err := ctx.findHabit(c.Title)
	if err != nil {
		return err
	}

	archived := !c.Unarchive
	ctx.State.UpdateHabit(habit.ID, models.HabitUpdate{Archived: &archived})

	if c.Unarchive {
		fmt.Printf("Unarchived habit: %s\n", habit.Title)
	} else {
		fmt.Printf("Archived habit: %s\n", habit.Title)
	}
	return nil
}

type HabitDeleteCmd struct {
	Title string `arg:"" help:"Habit title to delete."`
	Force bool   `help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	habit, err := ctx.findHabit(c.Title)
	if err != nil {
		return err
	}

	if !c.Force {
		return fmt.Errorf("deleting %q removes its completion history; re-run with --force", habit.Title)
	}

	ctx.State.DeleteHabit(habit.ID)
	fmt.Printf("Deleted habit: %s\n", habit.Title)
	return nil
}
