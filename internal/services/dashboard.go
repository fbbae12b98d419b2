package services

import (
	"context"
	"fmt"
	"strings"

	"totem-quiz-backend/internal/models"

	"gorm.io/gorm"
)

// LaunchSize is the number of participants the dashboard puts in one game.
const LaunchSize = 3

// Selection is a validated set of exactly LaunchSize distinct participant ids.
type Selection struct {
	ids []string
}

func NewSelection(ids []string) (*Selection, error) {
	if len(ids) != LaunchSize {
		return nil, invalidField("participantIds", fmt.Sprintf("select exactly %d participants", LaunchSize))
	}
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, invalidField("participantIds", "participantIds must not contain empty ids")
		}
		if seen[id] {
			return nil, invalidField("participantIds", "participantIds must be distinct")
		}
		seen[id] = true
		out = append(out, id)
	}
	return &Selection{ids: out}, nil
}

func (s *Selection) IDs() []string { return append([]string(nil), s.ids...) }

type DashboardParticipant struct {
	models.Participant
	Available bool    `json:"available"`
	GameID    *string `json:"gameId"`
}

type Dashboard struct {
	Participants   []DashboardParticipant      `json:"participants"`
	OpenGames      []GameView                  `json:"openGames"`
	GameCounts     map[models.GameStatus]int64 `json:"gameCounts"`
	AvailableCount int                         `json:"availableCount"`
	SelectionSize  int                         `json:"selectionSize"`
}

type LaunchInput struct {
	Name           string   `json:"name" validate:"max=100"`
	ParticipantIDs []string `json:"participantIds"`
}

type DashboardService struct {
	db    *gorm.DB
	games *GameService
}

func NewDashboardService(db *gorm.DB, games *GameService) *DashboardService {
	return &DashboardService{db: db, games: games}
}

func (s *DashboardService) Overview(ctx context.Context) (*Dashboard, error) {
	var participants []models.Participant
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&participants).Error; err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	var assignments []struct {
		ParticipantID string
		GameID        string
	}
	if err := s.db.WithContext(ctx).Table("game_participants").
		Select("game_participants.participant_id, game_participants.game_id").
		Joins("JOIN games ON games.id = game_participants.game_id").
		Where("games.status IN ?", models.OpenGameStatuses).
		Scan(&assignments).Error; err != nil {
		return nil, fmt.Errorf("load assignments: %w", err)
	}
	busy := make(map[string]string, len(assignments))
	for _, a := range assignments {
		busy[a.ParticipantID] = a.GameID
	}

	d := &Dashboard{
		Participants:  make([]DashboardParticipant, len(participants)),
		GameCounts:    make(map[models.GameStatus]int64),
		SelectionSize: LaunchSize,
	}
	for i, p := range participants {
		dp := DashboardParticipant{Participant: p, Available: true}
		if gameID, ok := busy[p.ID]; ok {
			dp.Available = false
			dp.GameID = &gameID
		} else {
			d.AvailableCount++
		}
		d.Participants[i] = dp
	}

	open, err := s.games.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	d.OpenGames = open

	var counts []struct {
		Status models.GameStatus
		Count  int64
	}
	if err := s.db.WithContext(ctx).Model(&models.Game{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("count games: %w", err)
	}
	for _, c := range counts {
		d.GameCounts[c.Status] = c.Count
	}
	return d, nil
}

// Launch starts a waiting game for exactly LaunchSize selected participants.
// It fails when any of them is already in an open game.
func (s *DashboardService) Launch(ctx context.Context, in LaunchInput) (*GameView, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	sel, err := NewSelection(in.ParticipantIDs)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		n, err := s.games.Count(ctx)
		if err != nil {
			return nil, err
		}
		name = fmt.Sprintf("Game %d", n+1)
	}

	return s.games.Create(ctx, CreateGameInput{
		Name:            name,
		MaxParticipants: LaunchSize,
		ParticipantIDs:  sel.IDs(),
		RequireAll:      true,
	})
}
