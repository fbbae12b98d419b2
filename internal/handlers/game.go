package handlers

import (
	"net/http"

	"totem-quiz-backend/internal/events"
	"totem-quiz-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	games *services.GameService
	bus   *events.Bus
}

func NewGameHandler(games *services.GameService, bus *events.Bus) *GameHandler {
	return &GameHandler{games: games, bus: bus}
}

type CreateGameRequest struct {
	Name            string   `json:"name" example:"Jogo 1"`
	MaxParticipants int      `json:"maxParticipants" example:"4"`
	ParticipantIDs  []string `json:"participantIds"`
}

type UpdateGameStatusRequest struct {
	Status string `json:"status" example:"active" enums:"waiting,active,completed,cancelled"`
}

type GameResponse struct {
	Success bool               `json:"success" example:"true"`
	Message string             `json:"message,omitempty" example:"Game created successfully"`
	Game    *services.GameView `json:"game"`
}

type GamesResponse struct {
	Success bool                `json:"success" example:"true"`
	Games   []services.GameView `json:"games"`
}

// CreateGame godoc
// @Summary      Create a game
// @Description  Create a waiting game from the available participants, oldest registration first
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        request body CreateGameRequest true "Game data"
// @Success      201 {object} GameResponse
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/games [post]
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	game, err := h.games.Create(c.Request.Context(), services.CreateGameInput{
		Name:            req.Name,
		MaxParticipants: req.MaxParticipants,
		ParticipantIDs:  req.ParticipantIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.bus.Publish(c.Request.Context(), events.New(events.GameCreated, game.ID, game))
	c.JSON(http.StatusCreated, GameResponse{Success: true, Message: "Game created successfully", Game: game})
}

// ListGames godoc
// @Summary      List games
// @Description  Games newest first, optionally filtered by status
// @Tags         games
// @Produce      json
// @Param        status query string false "Status filter" Enums(waiting, active, completed, cancelled)
// @Success      200 {object} GamesResponse
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/games [get]
func (h *GameHandler) ListGames(c *gin.Context) {
	games, err := h.games.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, GamesResponse{Success: true, Games: games})
}

// GetGame godoc
// @Summary      Get a game
// @Tags         games
// @Produce      json
// @Param        id path string true "Game ID"
// @Success      200 {object} GameResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/games/{id} [get]
func (h *GameHandler) GetGame(c *gin.Context) {
	game, err := h.games.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, GameResponse{Success: true, Game: game})
}

// UpdateGameStatus godoc
// @Summary      Change game status
// @Description  waiting -> active -> completed, or waiting -> cancelled. Repeating the current status is a no-op.
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        id path string true "Game ID"
// @Param        request body UpdateGameStatusRequest true "New status"
// @Success      200 {object} GameResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/games/{id} [patch]
func (h *GameHandler) UpdateGameStatus(c *gin.Context) {
	var req UpdateGameStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	game, err := h.games.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	h.bus.Publish(c.Request.Context(), events.New(events.GameUpdated, game.ID, game))
	c.JSON(http.StatusOK, GameResponse{Success: true, Message: "Game updated successfully", Game: game})
}

// DeleteGame godoc
// @Summary      Cancel a game
// @Description  Marks the game cancelled; the record is kept. Active games cannot be cancelled.
// @Tags         games
// @Produce      json
// @Param        id path string true "Game ID"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/games/{id} [delete]
func (h *GameHandler) DeleteGame(c *gin.Context) {
	game, err := h.games.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	h.bus.Publish(c.Request.Context(), events.New(events.GameCancelled, game.ID, game))
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Game cancelled successfully"})
}
