package tasks

import (
	"sort"
	"time"

	"todo_webapp/internal/domain"
)

// DueDateLayout matches the value of an HTML datetime-local input.
const DueDateLayout = "2006-01-02T15:04"

// dueDateLayoutSeconds tolerates inputs that carry seconds.
const dueDateLayoutSeconds = "2006-01-02T15:04:05"

// createdAtSentinel is used when the database timestamp has not been
// observed yet: such records sort after everything else instead of
// producing an undefined comparison.
var createdAtSentinel = time.Unix(1<<62-1, 0)

// ParseDueDate parses a due date string in server-local time.
func ParseDueDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(DueDateLayout, s, time.Local); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(dueDateLayoutSeconds, s, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// SortByDue orders a snapshot in place: nearest deadline first, falling
// back to creation time when a due date is missing or unparseable. The
// sort is stable so that equal keys keep their relative order across
// snapshots. The result depends only on due_date and created_at, never
// on the order rows arrived in.
func SortByDue(list []*domain.Task) {
	sort.SliceStable(list, func(i, j int) bool {
		return less(list[i], list[j])
	})
}

func less(a, b *domain.Task) bool {
	da, aok := ParseDueDate(a.DueDate)
	db, bok := ParseDueDate(b.DueDate)
	if aok && bok {
		return da.Before(db)
	}
	return createdAtOrSentinel(a).Before(createdAtOrSentinel(b))
}

func createdAtOrSentinel(t *domain.Task) time.Time {
	if t.CreatedAt.IsZero() {
		return createdAtSentinel
	}
	return t.CreatedAt
}
