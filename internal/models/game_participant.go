package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GameParticipant struct {
	ID            string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	GameID        string      `gorm:"type:varchar(36);not null;uniqueIndex:idx_game_participant" json:"gameId"`
	ParticipantID string      `gorm:"type:varchar(36);not null;uniqueIndex:idx_game_participant;index" json:"participantId"`
	Participant   Participant `gorm:"foreignKey:ParticipantID;constraint:OnDelete:CASCADE" json:"-"`
	Score         int         `gorm:"not null;default:0" json:"score"`
	JoinedAt      time.Time   `json:"joinedAt"`
}

func (gp *GameParticipant) BeforeCreate(tx *gorm.DB) error {
	if gp.ID == "" {
		gp.ID = uuid.NewString()
	}
	return nil
}
