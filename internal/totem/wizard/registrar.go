package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"totem-quiz-backend/internal/models"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RegistrationError is a rejection reported by the API.
type RegistrationError struct {
	Status  int
	Message string
	Fields  []FieldError
}

func (e *RegistrationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("registration failed with status %d", e.Status)
	}
	return e.Message
}

// HTTPRegistrar posts registrations to the participants API as multipart
// forms, with the selfie in the "selfie" file field.
type HTTPRegistrar struct {
	baseURL string
	client  *http.Client
}

func NewHTTPRegistrar(baseURL string, client *http.Client) *HTTPRegistrar {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPRegistrar{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (r *HTTPRegistrar) Register(ctx context.Context, reg Registration) (*models.Participant, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fields := [][2]string{{"name", reg.Name}, {"email", reg.Email}, {"phone", reg.Phone}}
	for _, f := range fields {
		if f[1] == "" && f[0] != "name" {
			continue
		}
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, err
		}
	}
	if len(reg.Selfie) > 0 {
		fw, err := mw.CreateFormFile("selfie", "selfie.jpg")
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write(reg.Selfie); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/api/participants", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post registration: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		Success     bool                `json:"success"`
		Message     string              `json:"message"`
		Participant *models.Participant `json:"participant"`
		Errors      []FieldError        `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &RegistrationError{Status: resp.StatusCode, Message: fmt.Sprintf("unreadable response: %v", err)}
	}
	if resp.StatusCode != http.StatusCreated || !out.Success || out.Participant == nil {
		return nil, &RegistrationError{Status: resp.StatusCode, Message: out.Message, Fields: out.Errors}
	}
	return out.Participant, nil
}
