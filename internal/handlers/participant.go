package handlers

import (
	"errors"
	"net/http"
	"strings"

	"totem-quiz-backend/internal/events"
	"totem-quiz-backend/internal/models"
	"totem-quiz-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ParticipantHandler struct {
	registration *services.RegistrationService
	bus          *events.Bus
}

func NewParticipantHandler(registration *services.RegistrationService, bus *events.Bus) *ParticipantHandler {
	return &ParticipantHandler{registration: registration, bus: bus}
}

type CreateParticipantRequest struct {
	Name        string `json:"name" example:"Ana Silva"`
	Email       string `json:"email" example:"ana@example.com"`
	Phone       string `json:"phone" example:"11987654321"`
	SelfieImage string `json:"selfieImage" example:"data:image/jpeg;base64,/9j/4AAQ..."`
}

type ParticipantResponse struct {
	Success     bool                `json:"success" example:"true"`
	Message     string              `json:"message" example:"Participant registered successfully"`
	Participant *models.Participant `json:"participant"`
}

type ParticipantsResponse struct {
	Success      bool                 `json:"success" example:"true"`
	Participants []models.Participant `json:"participants"`
}

// CreateParticipant godoc
// @Summary      Register a participant
// @Description  Register a participant from the totem. Accepts JSON (selfieImage as data URL) or multipart with a "selfie" file.
// @Tags         participants
// @Accept       json,mpfd
// @Produce      json
// @Param        request body CreateParticipantRequest false "Participant data"
// @Param        selfie formData file false "Selfie image"
// @Success      201 {object} ParticipantResponse
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/participants [post]
func (h *ParticipantHandler) CreateParticipant(c *gin.Context) {
	var in services.RegistrationInput

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		in.Name = c.PostForm("name")
		in.Email = c.PostForm("email")
		in.Phone = c.PostForm("phone")
		in.SelfieImage = c.PostForm("selfieImage")

		fh, err := c.FormFile("selfie")
		switch {
		case err == nil:
			f, err := fh.Open()
			if err != nil {
				respondError(c, err)
				return
			}
			defer f.Close()
			in.Selfie = &services.SelfieUpload{Filename: fh.Filename, Content: f}
		case errors.Is(err, http.ErrMissingFile):
		default:
			badRequest(c, "invalid multipart form", err)
			return
		}
	} else {
		var req CreateParticipantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body", err)
			return
		}
		in = services.RegistrationInput{
			Name:        req.Name,
			Email:       req.Email,
			Phone:       req.Phone,
			SelfieImage: req.SelfieImage,
		}
	}

	participant, err := h.registration.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	h.bus.Publish(c.Request.Context(), events.New(events.ParticipantRegistered, "", participant))
	c.JSON(http.StatusCreated, ParticipantResponse{
		Success:     true,
		Message:     "Participant registered successfully",
		Participant: participant,
	})
}

// ListParticipants godoc
// @Summary      List participants
// @Description  All registered participants, newest first
// @Tags         participants
// @Produce      json
// @Success      200 {object} ParticipantsResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/participants [get]
func (h *ParticipantHandler) ListParticipants(c *gin.Context) {
	participants, err := h.registration.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if participants == nil {
		participants = []models.Participant{}
	}
	c.JSON(http.StatusOK, ParticipantsResponse{Success: true, Participants: participants})
}
