package domain

import "time"

// Task is one entry in a user's to-do collection. DueDate is kept as the
// raw datetime-local string the frontend submits ("2006-01-02T15:04"),
// without timezone normalization. CreatedAt is assigned by the database.
type Task struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"-"`
	Text      string    `db:"text" json:"text"`
	DueDate   string    `db:"due_date" json:"due_date"`
	Completed bool      `db:"completed" json:"completed"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
