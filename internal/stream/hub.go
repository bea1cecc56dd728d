// Package stream pushes analysis results and watchlist alerts to connected
// dashboard clients over WebSocket.
package stream

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"tradedesk/internal/metrics"
)

// Event types published on the stream.
const (
	EventAnalysis = "analysis"
	EventAlert    = "alert"
)

// Hub manages WebSocket clients and fans published events out to them.
// Slow clients are disconnected rather than allowed to block a publish.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool

	upgrader websocket.Upgrader
	metrics  *metrics.Metrics // optional
	log      *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(m *metrics.Metrics, log *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Dashboard and API share an origin in deployment; same-host
			// checks are left to the reverse proxy.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		metrics: m,
		log:     log,
	}
}

// envelope is the wire format of one published event.
type envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
	TS   string      `json:"ts"`
}

// Publish sends an event to every connected client. Never blocks: clients
// whose send queue is full are dropped.
func (h *Hub) Publish(event string, payload interface{}) {
	msg, err := json.Marshal(envelope{
		Type: event,
		Data: payload,
		TS:   time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		h.log.Error("stream marshal failed", "event", event, "err", err)
		return
	}

	h.mu.RLock()
	var slow []*Client
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.log.Warn("dropping slow stream client")
		h.remove(c)
	}
}

// ServeWS upgrades the request and registers the client.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", "err", err)
		return
	}

	c := &Client{
		conn: conn,
		send: make(chan []byte, 64),
		hub:  h,
	}

	h.mu.Lock()
	h.clients[c] = true
	n := len(h.clients)
	h.mu.Unlock()
	h.setClientGauge(n)

	go c.writePump()
	go c.readPump()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	h.setClientGauge(n)
}

func (h *Hub) setClientGauge(n int) {
	if h.metrics != nil {
		h.metrics.StreamClients.Set(float64(n))
	}
}
