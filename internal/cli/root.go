package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/tendril/internal/backup"
	"github.com/julianstephens/tendril/internal/logger"
	"github.com/julianstephens/tendril/internal/models"
	"github.com/julianstephens/tendril/internal/storage"
	"github.com/julianstephens/tendril/internal/store"
)

// Context is passed to every command's Run method.
type Context struct {
	State      *store.AppState
	Svc        *storage.Service
	ConfigPath string
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup(ctx context.Context) {
	mgr := backup.NewManager(c.ConfigPath)
	if _, err := mgr.Create(ctx, c.Svc); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// findHabit resolves a habit by exact title among unarchived habits first,
// then archived ones.
func (c *Context) findHabit(title string) (models.Habit, error) {
	var archived *models.Habit
	for _, h := range c.State.Habits() {
		if h.Title != title {
			continue
		}
		if !h.Archived {
			return h, nil
		}
		if archived == nil {
			copied := h
			archived = &copied
		}
	}
	if archived != nil {
		return *archived, nil
	}
	return models.Habit{}, fmt.Errorf("habit %q not found", title)
}

// ParseDays parses a comma-separated list of weekdays into the application's
// Monday-first indices (0=Monday .. 6=Sunday).
func ParseDays(s string) ([]int, error) {
	dayMap := map[string]int{
		"mon": 0, "monday": 0,
		"tue": 1, "tuesday": 1,
		"wed": 2, "wednesday": 2,
		"thu": 3, "thursday": 3,
		"fri": 4, "friday": 4,
		"sat": 5, "saturday": 5,
		"sun": 6, "sunday": 6,
	}

	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		if d, ok := dayMap[part]; ok {
			days = append(days, d)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		days = append(days, num)
	}
	return days, nil
}
