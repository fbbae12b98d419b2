package models

import (
	"errors"
	"testing"
	"time"
)

func TestParseGameStatus(t *testing.T) {
	for _, s := range []string{"waiting", "active", "completed", "cancelled"} {
		if _, ok := ParseGameStatus(s); !ok {
			t.Errorf("expected %q to parse", s)
		}
	}
	for _, s := range []string{"", "ACTIVE", "finished", "waiting "} {
		if _, ok := ParseGameStatus(s); ok {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

func TestGameStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to GameStatus
		want     bool
	}{
		{GameStatusWaiting, GameStatusActive, true},
		{GameStatusWaiting, GameStatusCancelled, true},
		{GameStatusActive, GameStatusCompleted, true},
		{GameStatusActive, GameStatusCancelled, false},
		{GameStatusWaiting, GameStatusCompleted, false},
		{GameStatusCompleted, GameStatusWaiting, false},
		{GameStatusCancelled, GameStatusActive, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestNewAnswerDerivesCorrectness(t *testing.T) {
	q := Question{ID: "q1", Options: []string{"A", "B", "C"}, CorrectIndex: 2}
	entry := GameParticipant{ID: "gp1"}
	now := time.Now()

	right, err := NewAnswer(entry, q, 2, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !right.IsCorrect || right.GameParticipantID != "gp1" || right.QuestionID != "q1" {
		t.Errorf("unexpected answer: %+v", right)
	}

	wrong, err := NewAnswer(entry, q, 0, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wrong.IsCorrect {
		t.Error("expected incorrect answer")
	}

	if _, err := NewAnswer(entry, q, 3, now); !errors.Is(err, ErrOptionOutOfRange) {
		t.Errorf("expected ErrOptionOutOfRange, got %v", err)
	}
}
