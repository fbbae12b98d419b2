package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"totem-quiz-backend/internal/models"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// assignmentLockKey identifies the postgres advisory lock that serializes
// participant assignment across API replicas.
const assignmentLockKey int64 = 0x746f74656d

type CreateGameInput struct {
	Name            string   `json:"name" validate:"required,max=100"`
	MaxParticipants int      `json:"maxParticipants" validate:"required,gamesize"`
	ParticipantIDs  []string `json:"participantIds" validate:"omitempty,dive,required"`
	// RequireAll fails the creation when any requested participant is not assignable.
	RequireAll bool `json:"-"`
}

type ParticipantSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	SelfieURL *string   `json:"selfieUrl"`
	JoinedAt  time.Time `json:"joinedAt"`
}

// GameView is a game together with the participants assigned to it.
type GameView struct {
	models.Game
	Participants []ParticipantSummary `json:"participants"`
}

func newGameView(g models.Game) GameView {
	v := GameView{Game: g, Participants: make([]ParticipantSummary, 0, len(g.Entries))}
	for _, e := range g.Entries {
		v.Participants = append(v.Participants, ParticipantSummary{
			ID:        e.Participant.ID,
			Name:      e.Participant.Name,
			Email:     e.Participant.Email,
			Phone:     e.Participant.Phone,
			SelfieURL: e.Participant.SelfieURL,
			JoinedAt:  e.JoinedAt,
		})
	}
	return v
}

type GameService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{db: db, now: time.Now}
}

// Create assigns available participants to a new waiting game. Reading the
// available set and writing the join rows happen in one transaction so that
// concurrent creations never hand out the same participant twice.
func (s *GameService) Create(ctx context.Context, in CreateGameInput) (*GameView, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var gameID string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockAssignments(tx); err != nil {
			return err
		}

		available, err := availableParticipants(tx)
		if err != nil {
			return err
		}
		if len(available) == 0 {
			return ErrNoAvailableParticipants
		}

		selected := available
		if len(in.ParticipantIDs) > 0 {
			requested := lo.Uniq(in.ParticipantIDs)
			selected = pickParticipants(available, requested)
			if len(selected) == 0 {
				return ErrNoSelectedParticipants
			}
			if in.RequireAll && len(selected) != len(requested) {
				return ErrParticipantsUnavailable
			}
		}
		if len(selected) > in.MaxParticipants {
			selected = selected[:in.MaxParticipants]
		}

		now := s.now()
		game := models.Game{
			Name:                in.Name,
			Status:              models.GameStatusWaiting,
			MaxParticipants:     in.MaxParticipants,
			CurrentParticipants: len(selected),
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := tx.Create(&game).Error; err != nil {
			return fmt.Errorf("create game: %w", err)
		}

		entries := make([]models.GameParticipant, len(selected))
		for i, p := range selected {
			entries[i] = models.GameParticipant{GameID: game.ID, ParticipantID: p.ID, JoinedAt: now}
		}
		if err := tx.Create(&entries).Error; err != nil {
			return fmt.Errorf("assign participants: %w", err)
		}

		gameID = game.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, gameID)
}

func lockAssignments(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", assignmentLockKey).Error; err != nil {
		return fmt.Errorf("lock assignments: %w", err)
	}
	return nil
}

func availableParticipants(db *gorm.DB) ([]models.Participant, error) {
	var participants []models.Participant
	err := db.Where(`NOT EXISTS (
		SELECT 1 FROM game_participants gp
		JOIN games g ON g.id = gp.game_id
		WHERE gp.participant_id = participants.id AND g.status IN ?)`, models.OpenGameStatuses).
		Order("participants.created_at ASC").
		Find(&participants).Error
	if err != nil {
		return nil, fmt.Errorf("load available participants: %w", err)
	}
	return participants, nil
}

// pickParticipants keeps the requested ids that are available, in request order.
func pickParticipants(available []models.Participant, ids []string) []models.Participant {
	byID := lo.KeyBy(available, func(p models.Participant) string { return p.ID })
	return lo.FilterMap(ids, func(id string, _ int) (models.Participant, bool) {
		p, ok := byID[id]
		return p, ok
	})
}

// AvailableParticipants lists participants not assigned to a waiting or
// active game, oldest registration first.
func (s *GameService) AvailableParticipants(ctx context.Context) ([]models.Participant, error) {
	return availableParticipants(s.db.WithContext(ctx))
}

func (s *GameService) withParticipants(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at ASC")
		}).
		Preload("Entries.Participant")
}

// List returns games newest first, optionally restricted to one status.
func (s *GameService) List(ctx context.Context, status string) ([]GameView, error) {
	q := s.withParticipants(ctx).Order("created_at DESC")
	if status != "" {
		st, ok := models.ParseGameStatus(status)
		if !ok {
			return nil, invalidField("status", "status must be one of waiting, active, completed, cancelled")
		}
		q = q.Where("status = ?", st)
	}
	return s.find(q)
}

// ListOpen returns waiting and active games, newest first.
func (s *GameService) ListOpen(ctx context.Context) ([]GameView, error) {
	return s.find(s.withParticipants(ctx).
		Where("status IN ?", models.OpenGameStatuses).
		Order("created_at DESC"))
}

func (s *GameService) find(q *gorm.DB) ([]GameView, error) {
	var games []models.Game
	if err := q.Find(&games).Error; err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	views := make([]GameView, len(games))
	for i, g := range games {
		views[i] = newGameView(g)
	}
	return views, nil
}

func (s *GameService) Get(ctx context.Context, id string) (*GameView, error) {
	var game models.Game
	if err := s.withParticipants(ctx).First(&game, "id = ?", id).Error; err != nil {
		return nil, lookupError(err)
	}
	v := newGameView(game)
	return &v, nil
}

func (s *GameService) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Game{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return n, nil
}

// UpdateStatus moves a game along its lifecycle. Setting the current status
// again is a no-op, so startedAt and completedAt are stamped only once.
func (s *GameService) UpdateStatus(ctx context.Context, id, status string) (*GameView, error) {
	target, ok := models.ParseGameStatus(status)
	if !ok {
		return nil, invalidField("status", "status must be one of waiting, active, completed, cancelled")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var game models.Game
		if err := tx.First(&game, "id = ?", id).Error; err != nil {
			return lookupError(err)
		}
		if game.Status == target {
			return nil
		}
		if !game.Status.CanTransitionTo(target) {
			return &TransitionError{From: game.Status, To: target}
		}

		now := s.now()
		updates := map[string]interface{}{"status": target, "updated_at": now}
		switch target {
		case models.GameStatusActive:
			if game.StartedAt == nil {
				updates["started_at"] = now
			}
		case models.GameStatusCompleted:
			if game.CompletedAt == nil {
				updates["completed_at"] = now
			}
		}
		ok, err := compareAndSetStatus(tx, &game, updates)
		if err != nil {
			return fmt.Errorf("update game status: %w", err)
		}
		if ok {
			return nil
		}
		current, err := reloadStatus(tx, id)
		if err != nil {
			return err
		}
		if current == target {
			return nil
		}
		return &TransitionError{From: current, To: target}
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Cancel marks a game cancelled. The row and its assignments are kept, but
// the participants become available again.
func (s *GameService) Cancel(ctx context.Context, id string) (*GameView, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var game models.Game
		if err := tx.First(&game, "id = ?", id).Error; err != nil {
			return lookupError(err)
		}
		switch game.Status {
		case models.GameStatusCancelled:
			return nil
		case models.GameStatusActive:
			return ErrCannotCancelActive
		}
		ok, err := compareAndSetStatus(tx, &game, map[string]interface{}{
			"status":     models.GameStatusCancelled,
			"updated_at": s.now(),
		})
		if err != nil {
			return fmt.Errorf("cancel game: %w", err)
		}
		if ok {
			return nil
		}
		current, err := reloadStatus(tx, id)
		if err != nil {
			return err
		}
		switch current {
		case models.GameStatusCancelled:
			return nil
		case models.GameStatusActive:
			return ErrCannotCancelActive
		}
		return &TransitionError{From: current, To: models.GameStatusCancelled}
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// compareAndSetStatus applies updates only while the game still has the
// status it was read with. A false result means another writer got there first.
func compareAndSetStatus(tx *gorm.DB, game *models.Game, updates map[string]interface{}) (bool, error) {
	res := tx.Model(&models.Game{}).
		Where("id = ? AND status = ?", game.ID, game.Status).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func reloadStatus(tx *gorm.DB, id string) (models.GameStatus, error) {
	var game models.Game
	if err := tx.Select("status").First(&game, "id = ?", id).Error; err != nil {
		return "", lookupError(err)
	}
	return game.Status, nil
}

func lookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrGameNotFound
	}
	return fmt.Errorf("load game: %w", err)
}
