package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"totem-quiz-backend/internal/middleware"
	"totem-quiz-backend/internal/models"
	"totem-quiz-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Success bool                  `json:"success" example:"false"`
	Message string                `json:"message" example:"something went wrong"`
	Error   string                `json:"error,omitempty"`
	Errors  []services.FieldError `json:"errors,omitempty"`
}

type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"operation successful"`
}

// Type aliases so swag can resolve models in annotations.
type Participant = models.Participant
type Game = services.GameView
type Dashboard = services.Dashboard

func respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: verr.Error(), Errors: verr.Fields})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
	default:
		reqID, _ := middleware.RequestIDFromContext(c.Request.Context())
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", reqID,
			"error", err,
		)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
	}
}

func badRequest(c *gin.Context, message string, err error) {
	resp := ErrorResponse{Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}
