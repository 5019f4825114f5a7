package repository

import (
	"context"
	"errors"

	"todo_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskRepository stores each user's tasks as an isolated collection:
// every query is scoped by user_id, so one user can never read or touch
// another user's rows.
type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// ListByUser returns the full current set of a user's tasks, unordered.
// Ordering is applied by the caller (tasks.SortByDue), never by the store.
func (r *TaskRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, text, due_date, completed, created_at
		 FROM tasks
		 WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Text, &t.DueDate, &t.Completed, &t.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &t)
	}
	return res, rows.Err()
}

// Create inserts a task; id and created_at are assigned by the database
// and written back into t.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO tasks (user_id, text, due_date, completed)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		t.UserID, t.Text, t.DueDate, t.Completed,
	).Scan(&t.ID, &t.CreatedAt)
}

// UpdateTextAndDue is a partial update of exactly the two editable fields.
// completed and created_at are left untouched.
func (r *TaskRepository) UpdateTextAndDue(ctx context.Context, userID, id int64, text, dueDate string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tasks SET text = $1, due_date = $2 WHERE id = $3 AND user_id = $4`,
		text, dueDate, id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// SetCompleted flips only the completed flag. Setting it on an already
// completed task is a no-op update, not an error.
func (r *TaskRepository) SetCompleted(ctx context.Context, userID, id int64, completed bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tasks SET completed = $1 WHERE id = $2 AND user_id = $3`,
		completed, id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// GetByID is used by tooling and tests.
func (r *TaskRepository) GetByID(ctx context.Context, userID, id int64) (*domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, text, due_date, completed, created_at
		 FROM tasks
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&t.ID, &t.UserID, &t.Text, &t.DueDate, &t.Completed, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
