package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"totem-quiz-backend/internal/events"

	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		topic := r.URL.Query().Get("topic")
		hub.AddConnection(topic, conn)
		defer hub.RemoveConnection(topic, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, hub *Hub, srv *httptest.Server, topic string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?topic=" + topic
	before := hub.Connections(topic)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", topic, err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for hub.Connections(topic) == before {
		if time.Now().After(deadline) {
			t.Fatalf("connection to %s was never registered", topic)
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) (events.Event, bool) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	_, data, err := conn.ReadMessage()
	if err != nil {
		return events.Event{}, false
	}
	var e events.Event
	if err := json.Unmarshal(data, &e); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	return e, true
}

func TestHubRoutesEventsByTopic(t *testing.T) {
	hub := NewHub()
	srv := newTestServer(t, hub)

	dashboard := dial(t, hub, srv, DashboardTopic)
	game1 := dial(t, hub, srv, GameTopic("g1"))
	game2 := dial(t, hub, srv, GameTopic("g2"))

	if err := hub.Publish(context.Background(), events.New(events.GameUpdated, "g1", map[string]string{"status": "active"})); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	for name, conn := range map[string]*websocket.Conn{"dashboard": dashboard, "game g1": game1} {
		e, ok := readEvent(t, conn)
		if !ok {
			t.Errorf("%s received nothing", name)
			continue
		}
		if e.Type != events.GameUpdated || e.GameID != "g1" {
			t.Errorf("%s got %+v", name, e)
		}
	}
	if _, ok := readEvent(t, game2); ok {
		t.Error("game g2 should not receive events of g1")
	}
}

func TestHubParticipantEventsOnlyReachDashboard(t *testing.T) {
	hub := NewHub()
	srv := newTestServer(t, hub)
	dashboard := dial(t, hub, srv, DashboardTopic)

	if err := hub.Publish(context.Background(), events.New(events.ParticipantRegistered, "", nil)); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if e, ok := readEvent(t, dashboard); !ok || e.Type != events.ParticipantRegistered {
		t.Errorf("Expected participant event on dashboard, got %+v (ok=%v)", e, ok)
	}
}

func TestHubDropsClosedConnections(t *testing.T) {
	hub := NewHub()
	srv := newTestServer(t, hub)
	conn := dial(t, hub, srv, DashboardTopic)

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Connections(DashboardTopic) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("closed connection was not removed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := hub.Publish(context.Background(), events.New(events.GameCreated, "g1", nil)); err != nil {
		t.Errorf("Publish with no listeners failed: %v", err)
	}
}
