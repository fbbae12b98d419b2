// Package events fans domain events out to live dashboard feeds.
package events

import (
	"context"
	"log/slog"
	"time"
)

const (
	ParticipantRegistered = "participant.registered"
	GameCreated           = "game.created"
	GameUpdated           = "game.updated"
	GameCancelled         = "game.cancelled"
)

type Event struct {
	Type   string      `json:"type"`
	GameID string      `json:"gameId,omitempty"`
	Data   interface{} `json:"data"`
	At     time.Time   `json:"at"`
}

func New(typ, gameID string, data interface{}) Event {
	return Event{Type: typ, GameID: gameID, Data: data, At: time.Now().UTC()}
}

// Sink receives published events.
type Sink interface {
	Publish(ctx context.Context, e Event) error
}

// Bus delivers every event to all of its sinks. Delivery is best effort: a
// failing sink is logged and never fails the request that produced the event.
type Bus struct {
	sinks []Sink
}

func NewBus(sinks ...Sink) *Bus {
	return &Bus{sinks: sinks}
}

func (b *Bus) Publish(ctx context.Context, e Event) {
	if b == nil {
		return
	}
	for _, s := range b.sinks {
		if err := s.Publish(ctx, e); err != nil {
			slog.WarnContext(ctx, "event delivery failed", "type", e.Type, "game_id", e.GameID, "error", err)
		}
	}
}
