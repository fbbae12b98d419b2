package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GameStatus string

const (
	GameStatusWaiting   GameStatus = "waiting"
	GameStatusActive    GameStatus = "active"
	GameStatusCompleted GameStatus = "completed"
	GameStatusCancelled GameStatus = "cancelled"
)

const (
	MinGameParticipants = 2
	MaxGameParticipants = 20
)

// OpenGameStatuses are the statuses that keep a participant busy.
var OpenGameStatuses = []GameStatus{GameStatusWaiting, GameStatusActive}

var gameTransitions = map[GameStatus][]GameStatus{
	GameStatusWaiting: {GameStatusActive, GameStatusCancelled},
	GameStatusActive:  {GameStatusCompleted},
}

func ParseGameStatus(s string) (GameStatus, bool) {
	switch st := GameStatus(s); st {
	case GameStatusWaiting, GameStatusActive, GameStatusCompleted, GameStatusCancelled:
		return st, true
	}
	return "", false
}

// CanTransitionTo reports whether the game lifecycle allows moving from s to next.
// Completed and cancelled games are terminal.
func (s GameStatus) CanTransitionTo(next GameStatus) bool {
	for _, allowed := range gameTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Game struct {
	ID                  string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name                string            `gorm:"size:100;not null" json:"name"`
	Status              GameStatus        `gorm:"size:20;not null;default:'waiting';index" json:"status"`
	MaxParticipants     int               `gorm:"not null" json:"maxParticipants"`
	CurrentParticipants int               `gorm:"not null;default:0" json:"currentParticipants"`
	Entries             []GameParticipant `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"-"`
	Questions           []Question        `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt           time.Time         `gorm:"index" json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
	StartedAt           *time.Time        `json:"startedAt"`
	CompletedAt         *time.Time        `json:"completedAt"`
}

func (g *Game) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
