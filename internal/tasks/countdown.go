package tasks

import (
	"fmt"
	"time"

	"todo_webapp/internal/domain"
)

const (
	// PastDueMarker replaces the duration string once the deadline has passed.
	PastDueMarker = "⏰ Past due!"
	// FinishedMarker is shown for completed tasks instead of a countdown.
	FinishedMarker = "✅ Finished!"
)

// TimeLeft renders the remaining time until due as "{days}d HHh MMm SSs",
// omitting the day segment when it is zero. It always recomputes from the
// two absolute timestamps, so calling it every tick accumulates no drift.
func TimeLeft(due, now time.Time) string {
	if due.Before(now) {
		return PastDueMarker
	}

	diff := due.Sub(now)
	seconds := int(diff.Seconds()) % 60
	minutes := int(diff.Minutes()) % 60
	hours := int(diff.Hours()) % 24
	days := int(diff.Hours()) / 24

	if days > 0 {
		return fmt.Sprintf("%dd %02dh %02dm %02ds", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%02dh %02dm %02ds", hours, minutes, seconds)
}

// Countdowns derives the per-task annotation map for one tick. Completed
// tasks get the fixed finished marker and are never passed through the
// formatter; tasks without a parseable due date get no entry. The map is
// a side structure keyed by task id, task records are never mutated.
func Countdowns(list []*domain.Task, now time.Time) map[int64]string {
	out := make(map[int64]string, len(list))
	for _, t := range list {
		if t.Completed {
			out[t.ID] = FinishedMarker
			continue
		}
		due, ok := ParseDueDate(t.DueDate)
		if !ok {
			continue
		}
		out[t.ID] = TimeLeft(due, now)
	}
	return out
}
