package handlers

import (
	"log/slog"
	"net/http"

	"totem-quiz-backend/internal/services"
	"totem-quiz-backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub      *ws.Hub
	games    *services.GameService
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *ws.Hub, games *services.GameService, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		hub:   hub,
		games: games,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// DashboardFeed godoc
// @Summary      Live dashboard feed
// @Description  WebSocket streaming participant and game events
// @Tags         websocket
// @Router       /ws/dashboard [get]
func (h *WSHandler) DashboardFeed(c *gin.Context) {
	h.serve(c, ws.DashboardTopic)
}

// GameFeed godoc
// @Summary      Live game feed
// @Description  WebSocket streaming the events of one game
// @Tags         websocket
// @Param        id path string true "Game ID"
// @Failure      404 {object} ErrorResponse
// @Router       /ws/games/{id} [get]
func (h *WSHandler) GameFeed(c *gin.Context) {
	game, err := h.games.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.serve(c, ws.GameTopic(game.ID))
}

func (h *WSHandler) serve(c *gin.Context, topic string) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "topic", topic, "error", err)
		return
	}

	h.hub.AddConnection(topic, conn)
	defer h.hub.RemoveConnection(topic, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
