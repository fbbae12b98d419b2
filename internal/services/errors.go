package services

import (
	"errors"
	"fmt"
	"strings"

	"totem-quiz-backend/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

var (
	ErrGameNotFound            error = &kindError{ErrNotFound, "game not found"}
	ErrNoAvailableParticipants error = &kindError{ErrConflict, "no participants available for the game"}
	ErrNoSelectedParticipants  error = &kindError{ErrConflict, "none of the selected participants are available"}
	ErrParticipantsUnavailable error = &kindError{ErrConflict, "some selected participants are already in a game"}
	ErrCannotCancelActive      error = &kindError{ErrConflict, "cannot cancel an active game"}
)

// TransitionError reports a status change the game lifecycle does not allow.
type TransitionError struct {
	From models.GameStatus
	To   models.GameStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot change game status from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrConflict }

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries one message per offending input field.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

func invalidField(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}
