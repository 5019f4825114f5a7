package ws

import (
	"encoding/json"
	"sync"
	"time"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/logger"
	"todo_webapp/internal/tasks"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second

	// countdownPeriod is how often annotations are recomputed and pushed.
	countdownPeriod = time.Second
)

// Client is one subscribed connection. It caches the latest snapshot so
// the countdown loop can recompute annotations between snapshot pushes
// without touching the store.
type Client struct {
	UserID int64
	Conn   *websocket.Conn
	Send   chan []byte

	hub  *Hub
	done chan struct{}

	mu    sync.Mutex
	tasks []*domain.Task

	closeOnce sync.Once
}

func NewClient(userID int64, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 64),
		hub:    hub,
		done:   make(chan struct{}),
	}
}

// Run subscribes the client and drives its pumps until disconnect.
func (c *Client) Run() {
	go c.writePump()
	go c.countdownLoop(countdownPeriod)

	c.hub.Subscribe(c)

	// readPump blocks until the peer goes away, then tears everything down
	c.readPump()
}

// setSnapshot replaces the cached collection. The previous slice is
// dropped wholesale; snapshots are never merged.
func (c *Client) setSnapshot(list []*domain.Task) {
	c.mu.Lock()
	c.tasks = list
	c.mu.Unlock()
}

func (c *Client) currentTasks() []*domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tasks
}

// send queues a frame without blocking. A slow consumer loses frames;
// the next snapshot or tick supersedes anything dropped.
func (c *Client) send(frame []byte) {
	select {
	case c.Send <- frame:
	case <-c.done:
	default:
	}
}

// countdownLoop recomputes the annotation map for the cached snapshot on
// every tick, always from current wall-clock time. It stops as soon as
// the connection is torn down.
func (c *Client) countdownLoop(period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			list := c.currentTasks()
			if len(list) == 0 {
				continue
			}
			frame, err := json.Marshal(CountdownPayload{
				Type:       MsgCountdown,
				Countdowns: tasks.Countdowns(list, time.Now()),
			})
			if err != nil {
				continue
			}
			c.send(frame)
		case <-c.done:
			return
		}
	}
}

func (c *Client) readPump() {
	defer c.close()

	c.Conn.SetReadLimit(4096)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// the subscription is one-way; inbound frames only keep the
	// connection alive
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case frame := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				logger.Debug("ws: write failed", "user_id", c.UserID, "error", err)
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// close releases the subscription and the countdown ticker exactly once.
// After it returns no further frames are produced for this connection.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.hub.Unsubscribe(c)
		close(c.done)
		if c.Conn != nil {
			_ = c.Conn.Close()
		}
	})
}
