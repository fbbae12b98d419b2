package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"totem-quiz-backend/internal/events"

	"github.com/gorilla/websocket"
)

const DashboardTopic = "dashboard"

func GameTopic(gameID string) string { return "game:" + gameID }

// Hub keeps websocket connections grouped by topic. The dashboard topic sees
// every event, a game topic only the events of that game.
type Hub struct {
	mu     sync.Mutex
	topics map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[*websocket.Conn]bool),
	}
}

func (h *Hub) AddConnection(topic string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*websocket.Conn]bool)
	}
	h.topics[topic][conn] = true
	slog.Debug("ws client connected", "topic", topic, "total", len(h.topics[topic]))
}

func (h *Hub) RemoveConnection(topic string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.topics[topic]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.topics, topic)
		}
		slog.Debug("ws client disconnected", "topic", topic)
	}
}

func (h *Hub) Connections(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics[topic])
}

// Publish implements events.Sink.
func (h *Hub) Publish(_ context.Context, e events.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	h.broadcast(DashboardTopic, data)
	if e.GameID != "" {
		h.broadcast(GameTopic(e.GameID), data)
	}
	return nil
}

// broadcast holds the lock while writing, which also keeps a single writer per connection.
func (h *Hub) broadcast(topic string, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.topics[topic]
	if !ok {
		return
	}
	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			slog.Warn("ws write failed", "topic", topic, "error", err)
			conn.Close()
			delete(conns, conn)
		}
	}
	if len(conns) == 0 {
		delete(h.topics, topic)
	}
}
