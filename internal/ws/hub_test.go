package ws

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/tasks"
)

type staticSource struct {
	list []*domain.Task
}

func (s *staticSource) ListByUser(_ context.Context, _ int64) ([]*domain.Task, error) {
	// return a copy so sorting inside the hub can't help a broken test pass
	cp := make([]*domain.Task, len(s.list))
	copy(cp, s.list)
	return cp, nil
}

func recvFrame(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case frame := <-c.Send:
		return frame
	case <-time.After(time.Second):
		t.Fatal("no frame received")
		return nil
	}
}

func TestSubscribePushesOrderedSnapshot(t *testing.T) {
	src := &staticSource{list: []*domain.Task{
		{ID: 1, UserID: 5, DueDate: "2099-01-01T00:00", CreatedAt: time.Now()},
		{ID: 2, UserID: 5, DueDate: "2000-01-01T00:00", CreatedAt: time.Now()},
	}}
	hub := NewHub(src)

	c := NewClient(5, nil, hub)
	hub.Subscribe(c)
	defer hub.Unsubscribe(c)

	var payload SnapshotPayload
	if err := json.Unmarshal(recvFrame(t, c), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if payload.Type != MsgSnapshot {
		t.Fatalf("type = %q; want %q", payload.Type, MsgSnapshot)
	}
	if len(payload.Tasks) != 2 || payload.Tasks[0].ID != 2 || payload.Tasks[1].ID != 1 {
		t.Fatalf("snapshot order = %+v; want task 2 before task 1", payload.Tasks)
	}
	if payload.Tasks[0].Countdown != tasks.PastDueMarker {
		t.Errorf("overdue countdown = %q; want past due marker", payload.Tasks[0].Countdown)
	}
	if payload.Tasks[1].Countdown == "" || payload.Tasks[1].Countdown == tasks.PastDueMarker {
		t.Errorf("future countdown = %q; want a positive duration string", payload.Tasks[1].Countdown)
	}
	if !strings.HasSuffix(payload.Tasks[1].Countdown, "s") {
		t.Errorf("future countdown = %q; want seconds segment", payload.Tasks[1].Countdown)
	}
}

func TestNotifyUserFansOutToSubscribers(t *testing.T) {
	src := &staticSource{list: []*domain.Task{
		{ID: 1, UserID: 5, DueDate: "2099-01-01T00:00", CreatedAt: time.Now()},
	}}
	hub := NewHub(src)

	a := NewClient(5, nil, hub)
	b := NewClient(5, nil, hub)
	other := NewClient(6, nil, hub)
	hub.Subscribe(a)
	hub.Subscribe(b)
	hub.Subscribe(other)

	// drain initial snapshots
	recvFrame(t, a)
	recvFrame(t, b)
	recvFrame(t, other)

	hub.NotifyUser(5)

	recvFrame(t, a)
	recvFrame(t, b)

	select {
	case <-other.Send:
		t.Fatal("user 6 received a snapshot for user 5")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotifyAfterUnsubscribeSendsNothing(t *testing.T) {
	src := &staticSource{list: []*domain.Task{
		{ID: 1, UserID: 5, DueDate: "2099-01-01T00:00", CreatedAt: time.Now()},
	}}
	hub := NewHub(src)

	c := NewClient(5, nil, hub)
	hub.Subscribe(c)
	recvFrame(t, c)

	hub.Unsubscribe(c)
	hub.NotifyUser(5)

	select {
	case frame := <-c.Send:
		t.Fatalf("received frame after unsubscribe: %s", frame)
	case <-time.After(50 * time.Millisecond):
	}
}
