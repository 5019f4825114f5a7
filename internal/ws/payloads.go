package ws

import (
	"time"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/tasks"
)

// TaskView is a task as pushed to subscribers: the stored record plus
// the derived countdown annotation.
type TaskView struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	DueDate   string    `json:"due_date"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	Countdown string    `json:"countdown,omitempty"`
}

// SnapshotPayload carries the complete, ordered collection. Each emission
// fully replaces whatever the client held before.
type SnapshotPayload struct {
	Type  string     `json:"type"`
	Tasks []TaskView `json:"tasks"`
}

// CountdownPayload refreshes only the annotations between snapshots.
type CountdownPayload struct {
	Type       string           `json:"type"`
	Countdowns map[int64]string `json:"countdowns"`
}

type ErrorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// BuildViews pairs an ordered task list with countdown annotations
// computed at now.
func BuildViews(list []*domain.Task, now time.Time) []TaskView {
	countdowns := tasks.Countdowns(list, now)
	views := make([]TaskView, 0, len(list))
	for _, t := range list {
		views = append(views, TaskView{
			ID:        t.ID,
			Text:      t.Text,
			DueDate:   t.DueDate,
			Completed: t.Completed,
			CreatedAt: t.CreatedAt,
			Countdown: countdowns[t.ID],
		})
	}
	return views
}
