package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/andrescamacho/colonial-go/internal/adapters/metrics"
	"github.com/andrescamacho/colonial-go/internal/application/common"
	"github.com/andrescamacho/colonial-go/internal/application/live"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
	"github.com/andrescamacho/colonial-go/internal/infrastructure/logging"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 16
)

// LiveMessage is what the hub writes to websocket clients
type LiveMessage struct {
	Type   string       `json:"type"` // "update" or "stopped"
	Update *live.Update `json:"update,omitempty"`
	Reason string       `json:"reason,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// clientMessage is what clients may send. "resume" restarts a stopped poller.
type clientMessage struct {
	Type string `json:"type"`
}

// Hub fans project updates out to websocket clients. Clients watching the
// same build share one poller, started by the first client and stopped when
// the last one leaves.
type Hub struct {
	projects project.ProjectRepository
	opts     live.PollerOptions
	ping     time.Duration
	upgrader websocket.Upgrader

	mu     sync.Mutex
	groups map[string]*group
}

type group struct {
	buildID string
	poller  *live.Poller

	mu      sync.Mutex
	clients map[*client]struct{}
	last    []byte
}

type client struct {
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewHub creates a hub. opts supplies the poller interval, idle budget and
// clock; its callbacks are replaced by the hub's own.
func NewHub(projects project.ProjectRepository, opts live.PollerOptions, ping time.Duration, allowedOrigins []string) *Hub {
	if ping <= 0 {
		ping = 30 * time.Second
	}
	h := &Hub{
		projects: projects,
		opts:     opts,
		ping:     ping,
		groups:   make(map[string]*group),
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 4096},
	}
	h.upgrader.CheckOrigin = func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return len(allowedOrigins) == 0 || origin == "" || originAllowed(allowedOrigins, origin)
	}
	return h
}

// Serve upgrades the request and streams updates for buildID until the
// client disconnects.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, buildID string) {
	logger := common.LoggerFromContext(r.Context()).With(logging.String("build_id", buildID))
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", logging.Err(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer), done: make(chan struct{})}
	g := h.join(buildID, c)
	metrics.RecordSubscribers(1)
	logger.Debug("live client connected")

	// the poller outlives this request; it only borrows the logger
	pollCtx := common.WithLogger(context.Background(), logger)
	g.poller.Start(pollCtx)

	go c.writePump(h.ping)
	c.readPump(h.ping, func(msg clientMessage) {
		if msg.Type == "resume" {
			g.poller.Start(pollCtx)
		}
	})

	h.leave(g, c)
	metrics.RecordSubscribers(-1)
	logger.Debug("live client disconnected")
}

// Subscribers returns the number of clients watching buildID
func (h *Hub) Subscribers(buildID string) int {
	h.mu.Lock()
	g, ok := h.groups[buildID]
	h.mu.Unlock()
	if !ok {
		return 0
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.clients)
}

// Close disconnects every client and stops every poller
func (h *Hub) Close() {
	h.mu.Lock()
	groups := h.groups
	h.groups = make(map[string]*group)
	h.mu.Unlock()

	for _, g := range groups {
		g.poller.Stop()
		g.mu.Lock()
		for c := range g.clients {
			c.close()
		}
		g.mu.Unlock()
	}
}

func (h *Hub) join(buildID string, c *client) *group {
	h.mu.Lock()
	defer h.mu.Unlock()

	g, ok := h.groups[buildID]
	if !ok {
		g = &group{buildID: buildID, clients: make(map[*client]struct{})}
		opts := h.opts
		opts.OnUpdate = func(u live.Update) {
			g.broadcast(LiveMessage{Type: "update", Update: &u})
		}
		opts.OnStop = func(reason string, err error) {
			msg := LiveMessage{Type: "stopped", Reason: reason}
			if err != nil {
				msg.Error = err.Error()
			}
			g.broadcast(msg)
		}
		g.poller = live.NewPoller(h.projects, buildID, opts)
		h.groups[buildID] = g
	}

	g.mu.Lock()
	g.clients[c] = struct{}{}
	if g.last != nil {
		c.enqueue(g.last)
	}
	g.mu.Unlock()
	return g
}

func (h *Hub) leave(g *group, c *client) {
	h.mu.Lock()
	g.mu.Lock()
	delete(g.clients, c)
	empty := len(g.clients) == 0
	if empty && h.groups[g.buildID] == g {
		delete(h.groups, g.buildID)
	}
	g.mu.Unlock()
	h.mu.Unlock()

	c.close()
	if empty {
		// Stop waits for the poll loop, whose callbacks take g.mu
		g.poller.Stop()
	}
}

func (g *group) broadcast(msg LiveMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if msg.Type == "update" {
		g.last = data
	}
	for c := range g.clients {
		c.enqueue(data)
	}
}

// enqueue drops a client that cannot keep up
func (c *client) enqueue(data []byte) {
	select {
	case c.send <- data:
	default:
		c.close()
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

func (c *client) writePump(ping time.Duration) {
	ticker := time.NewTicker(ping)
	defer ticker.Stop()
	for {
		select {
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.close()
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				c.close()
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *client) readPump(ping time.Duration, onMessage func(clientMessage)) {
	pongWait := 2 * ping
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		var msg clientMessage
		if json.Unmarshal(data, &msg) == nil {
			onMessage(msg)
		}
	}
}
