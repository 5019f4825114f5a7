package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/logger"
	"todo_webapp/internal/tasks"

	"github.com/prometheus/client_golang/prometheus"
)

var snapshotsPushed = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ws_snapshots_pushed_total",
		Help: "Full task snapshots pushed to subscribers",
	},
	[]string{"reason"},
)

func init() {
	prometheus.MustRegister(snapshotsPushed)
}

// SnapshotSource yields the full current set of a user's tasks.
type SnapshotSource interface {
	ListByUser(ctx context.Context, userID int64) ([]*domain.Task, error)
}

// Hub tracks live subscribers per user and pushes a full ordered
// snapshot of that user's collection whenever it changes. Snapshots are
// authoritative: no diffs, last one wins.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[int64]map[*Client]struct{}
	store       SnapshotSource
}

func NewHub(store SnapshotSource) *Hub {
	return &Hub{
		subscribers: make(map[int64]map[*Client]struct{}),
		store:       store,
	}
}

// Subscribe registers a client and queues the initial snapshot so a new
// connection renders without waiting for the first mutation.
func (h *Hub) Subscribe(c *Client) {
	h.mu.Lock()
	set, ok := h.subscribers[c.UserID]
	if !ok {
		set = make(map[*Client]struct{})
		h.subscribers[c.UserID] = set
	}
	set[c] = struct{}{}
	h.mu.Unlock()

	h.pushTo(c, "subscribe")
}

func (h *Hub) Unsubscribe(c *Client) {
	h.mu.Lock()
	if set, ok := h.subscribers[c.UserID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.subscribers, c.UserID)
		}
	}
	h.mu.Unlock()
}

// NotifyUser is called by the task service after a successful mutation.
// The snapshot is rebuilt and fanned out off the caller's goroutine, so
// mutations never wait on subscriber delivery.
func (h *Hub) NotifyUser(userID int64) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.subscribers[userID]))
	for c := range h.subscribers[userID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	if len(clients) == 0 {
		return
	}

	go func() {
		frame, list, err := h.buildSnapshot(userID)
		if err != nil {
			logger.Warn("ws: snapshot build failed", "user_id", userID, "error", err)
			return
		}
		for _, c := range clients {
			c.setSnapshot(list)
			c.send(frame)
		}
		snapshotsPushed.WithLabelValues("mutation").Add(float64(len(clients)))
	}()
}

func (h *Hub) pushTo(c *Client, reason string) {
	frame, list, err := h.buildSnapshot(c.UserID)
	if err != nil {
		logger.Warn("ws: snapshot build failed", "user_id", c.UserID, "error", err)
		return
	}
	c.setSnapshot(list)
	c.send(frame)
	snapshotsPushed.WithLabelValues(reason).Inc()
}

func (h *Hub) buildSnapshot(userID int64) ([]byte, []*domain.Task, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	list, err := h.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	tasks.SortByDue(list)

	frame, err := json.Marshal(SnapshotPayload{
		Type:  MsgSnapshot,
		Tasks: BuildViews(list, time.Now()),
	})
	if err != nil {
		return nil, nil, err
	}
	return frame, list, nil
}
