package server

import (
	"log"
	"sync"
	"time"

	"github.com/diogenes-ai-code/timeago/internal/refresh"
	"github.com/gorilla/websocket"
)

// sendQueueSize is how many messages a client may fall behind before it is
// dropped.
const sendQueueSize = 16

// tickMessage is pushed to live clients after every refresh.
type tickMessage struct {
	Type   string             `json:"type"`
	Result refresh.TickResult `json:"result"`
}

func newTickMessage(r refresh.TickResult) tickMessage {
	return tickMessage{Type: "tick", Result: r}
}

// reloadMessage tells clients their element ids are stale and the page must
// be fetched again.
type reloadMessage struct {
	Type string `json:"type"`
}

func newReloadMessage() reloadMessage {
	return reloadMessage{Type: "reload"}
}

// client is one live connection. Only its writer goroutine writes to conn.
type client struct {
	conn      *websocket.Conn
	queue     chan interface{}
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn:  conn,
		queue: make(chan interface{}, sendQueueSize),
		done:  make(chan struct{}),
	}
}

// enqueue reports false when the client's queue is full.
func (c *client) enqueue(v interface{}) bool {
	select {
	case c.queue <- v:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// hub tracks live clients and fans messages out to them.
type hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	logger  *log.Logger
}

func newHub(logger *log.Logger) *hub {
	return &hub{
		clients: make(map[*client]struct{}),
		logger:  logger,
	}
}

// add registers c. greeting, if set, is queued as c's first message while
// broadcasts are held off, so nothing older can follow it.
func (h *hub) add(c *client, greeting func() interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	if greeting != nil {
		c.enqueue(greeting())
	}
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.close()
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// broadcast queues v for every client without waiting on the network.
// Clients whose queue is full are dropped.
func (h *hub) broadcast(v interface{}) {
	var stalled []*client

	h.mu.Lock()
	for c := range h.clients {
		if !c.enqueue(v) {
			stalled = append(stalled, c)
		}
	}
	h.mu.Unlock()

	for _, c := range stalled {
		h.logger.Printf("Dropping live client: %d messages behind", sendQueueSize)
		h.remove(c)
	}
}

func (h *hub) broadcastTick(r refresh.TickResult) {
	h.broadcast(newTickMessage(r))
}

func (h *hub) broadcastReload() {
	h.broadcast(newReloadMessage())
}

// writeLoop drains c's queue and keeps the connection alive with pings
// until c is closed or a write fails.
func (h *hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer h.remove(c)

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.queue:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				h.logger.Printf("Live client write failed: %v", err)
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.remove(c)
	}
}
