package handlers

import (
	"errors"
	"net/http"

	"totem-quiz-backend/internal/events"
	"totem-quiz-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	auth      *services.AuthService
	dashboard *services.DashboardService
	bus       *events.Bus
}

func NewAdminHandler(auth *services.AuthService, dashboard *services.DashboardService, bus *events.Bus) *AdminHandler {
	return &AdminHandler{auth: auth, dashboard: dashboard, bus: bus}
}

type LoginRequest struct {
	Password string `json:"password" binding:"required" example:"admin-change-me"`
}

type AuthResponse struct {
	Success bool   `json:"success" example:"true"`
	Token   string `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
}

type DashboardResponse struct {
	Success   bool                `json:"success" example:"true"`
	Dashboard *services.Dashboard `json:"dashboard"`
}

type LaunchGameRequest struct {
	Name           string   `json:"name" example:"Game 7"`
	ParticipantIDs []string `json:"participantIds"`
}

// Login godoc
// @Summary      Admin login
// @Description  Exchange the admin password for a JWT
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} AuthResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "password is required", err)
		return
	}

	token, err := h.auth.Login(req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: err.Error()})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Success: true, Token: token})
}

// Dashboard godoc
// @Summary      Admin dashboard
// @Description  Participants with availability, open games and game counts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} DashboardResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *gin.Context) {
	d, err := h.dashboard.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DashboardResponse{Success: true, Dashboard: d})
}

// LaunchGame godoc
// @Summary      Launch a game
// @Description  Start a waiting game for exactly three selected participants
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body LaunchGameRequest true "Selection"
// @Success      201 {object} GameResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/admin/games [post]
func (h *AdminHandler) LaunchGame(c *gin.Context) {
	var req LaunchGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	game, err := h.dashboard.Launch(c.Request.Context(), services.LaunchInput{
		Name:           req.Name,
		ParticipantIDs: req.ParticipantIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.bus.Publish(c.Request.Context(), events.New(events.GameCreated, game.ID, game))
	c.JSON(http.StatusCreated, GameResponse{Success: true, Message: "Game launched successfully", Game: game})
}
