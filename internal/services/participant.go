package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"totem-quiz-backend/internal/models"
	"totem-quiz-backend/internal/storage"

	"gorm.io/gorm"
)

// SelfieStorage persists selfie images and hands back their public URL.
type SelfieStorage interface {
	Save(originalName string, r io.Reader) (string, error)
	SaveDataURL(dataURL string) (string, error)
	Remove(url string) error
}

// maxSelfieURLLength matches the participants.selfie_url column.
const maxSelfieURLLength = 500

type SelfieUpload struct {
	Filename string
	Content  io.Reader
}

type RegistrationInput struct {
	Name  string `json:"name" validate:"required,min=2,max=50"`
	Email string `json:"email" validate:"omitempty,max=255,email"`
	Phone string `json:"phone" validate:"omitempty,min=10,max=30"`
	// SelfieImage is a base64 data URL or an already hosted image URL.
	SelfieImage string        `json:"selfieImage"`
	Selfie      *SelfieUpload `json:"-" validate:"-"`
}

type RegistrationService struct {
	db      *gorm.DB
	selfies SelfieStorage
	now     func() time.Time
}

func NewRegistrationService(db *gorm.DB, selfies SelfieStorage) *RegistrationService {
	return &RegistrationService{db: db, selfies: selfies, now: time.Now}
}

func (s *RegistrationService) Register(ctx context.Context, in RegistrationInput) (*models.Participant, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	selfieURL, stored, err := s.storeSelfie(in)
	if err != nil {
		return nil, err
	}

	now := s.now()
	participant := models.Participant{
		Name:      in.Name,
		Email:     optional(in.Email),
		Phone:     optional(in.Phone),
		SelfieURL: selfieURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(&participant).Error; err != nil {
		if stored {
			if rmErr := s.selfies.Remove(*selfieURL); rmErr != nil {
				slog.Warn("failed to remove orphaned selfie", "url", *selfieURL, "error", rmErr)
			}
		}
		return nil, fmt.Errorf("create participant: %w", err)
	}
	return &participant, nil
}

// storeSelfie resolves the selfie reference for a registration. stored is true
// when a new file was written and must be removed if the registration fails.
func (s *RegistrationService) storeSelfie(in RegistrationInput) (url *string, stored bool, err error) {
	switch {
	case in.Selfie != nil:
		u, err := s.selfies.Save(in.Selfie.Filename, in.Selfie.Content)
		if err != nil {
			return nil, false, selfieError("selfie", err)
		}
		return &u, true, nil
	case storage.IsDataURL(in.SelfieImage):
		u, err := s.selfies.SaveDataURL(in.SelfieImage)
		if err != nil {
			return nil, false, selfieError("selfieImage", err)
		}
		return &u, true, nil
	case in.SelfieImage == "":
		return nil, false, nil
	case strings.HasPrefix(in.SelfieImage, "https://"),
		strings.HasPrefix(in.SelfieImage, "http://"),
		strings.HasPrefix(in.SelfieImage, "/"):
		if len(in.SelfieImage) > maxSelfieURLLength {
			return nil, false, invalidField("selfieImage", fmt.Sprintf("selfieImage must be at most %d characters", maxSelfieURLLength))
		}
		u := in.SelfieImage
		return &u, false, nil
	default:
		return nil, false, invalidField("selfieImage", "selfieImage must be a data URL or an image URL")
	}
}

func selfieError(field string, err error) error {
	switch {
	case errors.Is(err, storage.ErrUnsupportedFormat):
		return invalidField(field, field+" must be a jpg, png, gif or webp image")
	case errors.Is(err, storage.ErrTooLarge):
		return invalidField(field, field+" is too large")
	case errors.Is(err, storage.ErrInvalidDataURL), errors.Is(err, storage.ErrEmptyImage):
		return invalidField(field, field+" is not a valid image")
	}
	return fmt.Errorf("store selfie: %w", err)
}

// List returns every participant, most recent registration first.
func (s *RegistrationService) List(ctx context.Context) ([]models.Participant, error) {
	var participants []models.Participant
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
