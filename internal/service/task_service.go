package service

import (
	"context"
	"errors"
	"strings"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/tasks"
)

var (
	ErrEmptyText    = errors.New("task text is empty")
	ErrEmptyDueDate = errors.New("due date is empty")
)

// TaskStore is the slice of repository.TaskRepository the service needs.
type TaskStore interface {
	ListByUser(ctx context.Context, userID int64) ([]*domain.Task, error)
	Create(ctx context.Context, t *domain.Task) error
	UpdateTextAndDue(ctx context.Context, userID, id int64, text, dueDate string) error
	SetCompleted(ctx context.Context, userID, id int64, completed bool) error
	Delete(ctx context.Context, userID, id int64) error
}

// Notifier wakes live subscribers after a successful mutation. Callers
// never learn the new state from the mutation itself; the refreshed
// snapshot arrives through the subscription.
type Notifier interface {
	NotifyUser(userID int64)
}

type TaskService struct {
	store    TaskStore
	notifier Notifier
}

func NewTaskService(store TaskStore, notifier Notifier) *TaskService {
	return &TaskService{store: store, notifier: notifier}
}

// List returns the user's collection in canonical order.
func (s *TaskService) List(ctx context.Context, userID int64) ([]*domain.Task, error) {
	list, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	tasks.SortByDue(list)
	return list, nil
}

// Add creates a task. Blank text or an empty due date is refused before
// any store call is made.
func (s *TaskService) Add(ctx context.Context, userID int64, text, dueDate string) (*domain.Task, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if strings.TrimSpace(dueDate) == "" {
		return nil, ErrEmptyDueDate
	}

	t := &domain.Task{
		UserID:  userID,
		Text:    text,
		DueDate: dueDate,
	}
	if err := s.store.Create(ctx, t); err != nil {
		return nil, err
	}
	s.notify(userID)
	return t, nil
}

// Edit updates text and due date only; completed and created_at are
// never touched by an edit.
func (s *TaskService) Edit(ctx context.Context, userID, id int64, text, dueDate string) error {
	if err := s.store.UpdateTextAndDue(ctx, userID, id, text, dueDate); err != nil {
		return err
	}
	s.notify(userID)
	return nil
}

// Finish marks a task completed. Finishing an already completed task is
// a harmless repeat of the same write.
func (s *TaskService) Finish(ctx context.Context, userID, id int64) error {
	if err := s.store.SetCompleted(ctx, userID, id, true); err != nil {
		return err
	}
	s.notify(userID)
	return nil
}

// Delete removes a task, but only when the caller has confirmed the
// destructive action. An unconfirmed delete performs no store call and
// is not an error.
func (s *TaskService) Delete(ctx context.Context, userID, id int64, confirmed bool) (bool, error) {
	if !confirmed {
		return false, nil
	}
	if err := s.store.Delete(ctx, userID, id); err != nil {
		return false, err
	}
	s.notify(userID)
	return true, nil
}

func (s *TaskService) notify(userID int64) {
	if s.notifier != nil {
		s.notifier.NotifyUser(userID)
	}
}
