package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Question struct {
	ID           string                      `gorm:"type:varchar(36);primaryKey" json:"id"`
	GameID       string                      `gorm:"type:varchar(36);not null;index" json:"gameId"`
	Text         string                      `gorm:"type:text;not null" json:"text"`
	OrderNum     int                         `gorm:"not null;default:0" json:"orderNum"`
	Options      datatypes.JSONSlice[string] `json:"options"`
	CorrectIndex int                         `gorm:"not null" json:"correctIndex"`
	CreatedAt    time.Time                   `json:"createdAt"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// HasOption reports whether idx addresses one of the question options.
func (q *Question) HasOption(idx int) bool {
	return idx >= 0 && idx < len(q.Options)
}
