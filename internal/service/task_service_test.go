package service

import (
	"context"
	"testing"
	"time"

	"todo_webapp/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTaskStore records every call so tests can assert which operations
// reached the store.
type fakeTaskStore struct {
	tasks   map[int64]*domain.Task
	nextID  int64
	creates int
	updates int
	deletes int
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[int64]*domain.Task), nextID: 1}
}

func (f *fakeTaskStore) ListByUser(_ context.Context, userID int64) ([]*domain.Task, error) {
	var res []*domain.Task
	for _, t := range f.tasks {
		if t.UserID == userID {
			res = append(res, t)
		}
	}
	return res, nil
}

func (f *fakeTaskStore) Create(_ context.Context, t *domain.Task) error {
	f.creates++
	t.ID = f.nextID
	f.nextID++
	t.CreatedAt = time.Now()
	cp := *t
	f.tasks[t.ID] = &cp
	return nil
}

func (f *fakeTaskStore) UpdateTextAndDue(_ context.Context, userID, id int64, text, dueDate string) error {
	f.updates++
	t := f.tasks[id]
	t.Text = text
	t.DueDate = dueDate
	return nil
}

func (f *fakeTaskStore) SetCompleted(_ context.Context, userID, id int64, completed bool) error {
	f.updates++
	f.tasks[id].Completed = completed
	return nil
}

func (f *fakeTaskStore) Delete(_ context.Context, userID, id int64) error {
	f.deletes++
	delete(f.tasks, id)
	return nil
}

type fakeNotifier struct {
	notified []int64
}

func (f *fakeNotifier) NotifyUser(userID int64) {
	f.notified = append(f.notified, userID)
}

func TestAddRejectsBlankTextWithoutStoreCall(t *testing.T) {
	store := newFakeTaskStore()
	n := &fakeNotifier{}
	svc := NewTaskService(store, n)

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := svc.Add(context.Background(), 1, text, "2030-01-01T10:00")
		assert.ErrorIs(t, err, ErrEmptyText)
	}

	assert.Zero(t, store.creates, "no store call expected for blank text")
	assert.Empty(t, n.notified)
}

func TestAddRejectsEmptyDueDateWithoutStoreCall(t *testing.T) {
	store := newFakeTaskStore()
	svc := NewTaskService(store, nil)

	_, err := svc.Add(context.Background(), 1, "buy milk", "")
	assert.ErrorIs(t, err, ErrEmptyDueDate)
	assert.Zero(t, store.creates)
}

func TestAddAssignsIDAndNotifies(t *testing.T) {
	store := newFakeTaskStore()
	n := &fakeNotifier{}
	svc := NewTaskService(store, n)

	created, err := svc.Add(context.Background(), 7, "buy milk", "2030-01-01T10:00")
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero(), "created_at comes from the store")
	assert.False(t, created.Completed)
	assert.Equal(t, []int64{7}, n.notified)
}

func TestEditTouchesOnlyTextAndDueDate(t *testing.T) {
	store := newFakeTaskStore()
	svc := NewTaskService(store, nil)

	created, err := svc.Add(context.Background(), 1, "old", "2030-01-01T10:00")
	require.NoError(t, err)
	require.NoError(t, svc.Finish(context.Background(), 1, created.ID))

	require.NoError(t, svc.Edit(context.Background(), 1, created.ID, "new", "2031-02-02T11:00"))

	got := store.tasks[created.ID]
	assert.Equal(t, "new", got.Text)
	assert.Equal(t, "2031-02-02T11:00", got.DueDate)
	assert.True(t, got.Completed, "edit must not clear the completed flag")
}

func TestFinishIsIdempotent(t *testing.T) {
	store := newFakeTaskStore()
	svc := NewTaskService(store, nil)

	created, err := svc.Add(context.Background(), 1, "task", "2030-01-01T10:00")
	require.NoError(t, err)

	require.NoError(t, svc.Finish(context.Background(), 1, created.ID))
	require.NoError(t, svc.Finish(context.Background(), 1, created.ID))
	assert.True(t, store.tasks[created.ID].Completed)
}

func TestDeleteWithoutConfirmationIsANoOp(t *testing.T) {
	store := newFakeTaskStore()
	n := &fakeNotifier{}
	svc := NewTaskService(store, n)

	created, err := svc.Add(context.Background(), 1, "task", "2030-01-01T10:00")
	require.NoError(t, err)
	n.notified = nil

	deleted, err := svc.Delete(context.Background(), 1, created.ID, false)
	require.NoError(t, err, "cancelled delete is not an error")
	assert.False(t, deleted)
	assert.Zero(t, store.deletes, "no store call without confirmation")
	assert.Empty(t, n.notified)

	deleted, err = svc.Delete(context.Background(), 1, created.ID, true)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, 1, store.deletes)
}

func TestListReturnsCanonicalOrder(t *testing.T) {
	store := newFakeTaskStore()
	svc := NewTaskService(store, nil)

	ctx := context.Background()
	far, err := svc.Add(ctx, 1, "far", "2099-01-01T00:00")
	require.NoError(t, err)
	near, err := svc.Add(ctx, 1, "near", "2000-01-01T00:00")
	require.NoError(t, err)

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, near.ID, list[0].ID)
	assert.Equal(t, far.ID, list[1].ID)
}
