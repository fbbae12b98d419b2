package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrOptionOutOfRange = errors.New("selected option out of range")

type Answer struct {
	ID                string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	GameParticipantID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_answer_unique" json:"gameParticipantId"`
	QuestionID        string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_answer_unique" json:"questionId"`
	SelectedIndex     int       `gorm:"not null" json:"selectedIndex"`
	IsCorrect         bool      `gorm:"not null" json:"isCorrect"`
	AnsweredAt        time.Time `json:"answeredAt"`
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// NewAnswer builds an answer whose correctness is derived from the question.
func NewAnswer(entry GameParticipant, q Question, selected int, at time.Time) (Answer, error) {
	if !q.HasOption(selected) {
		return Answer{}, ErrOptionOutOfRange
	}
	return Answer{
		GameParticipantID: entry.ID,
		QuestionID:        q.ID,
		SelectedIndex:     selected,
		IsCorrect:         selected == q.CorrectIndex,
		AnsweredAt:        at,
	}, nil
}
