// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"totem-quiz-backend/internal/database"
	"totem-quiz-backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a private in-memory sqlite database with the full schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// CreateParticipant inserts a participant registered at the given time.
func CreateParticipant(t *testing.T, db *gorm.DB, name string, at time.Time) models.Participant {
	t.Helper()

	p := models.Participant{Name: name, CreatedAt: at, UpdatedAt: at}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("Failed to create test participant: %v", err)
	}
	return p
}

// CreateGame inserts a game with the given participants attached.
func CreateGame(t *testing.T, db *gorm.DB, name string, status models.GameStatus, participants ...models.Participant) models.Game {
	t.Helper()

	now := time.Now()
	g := models.Game{
		Name:                name,
		Status:              status,
		MaxParticipants:     models.MaxGameParticipants,
		CurrentParticipants: len(participants),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if status == models.GameStatusActive {
		g.StartedAt = &now
	}
	if err := db.Create(&g).Error; err != nil {
		t.Fatalf("Failed to create test game: %v", err)
	}
	for _, p := range participants {
		gp := models.GameParticipant{GameID: g.ID, ParticipantID: p.ID, JoinedAt: now}
		if err := db.Create(&gp).Error; err != nil {
			t.Fatalf("Failed to attach participant: %v", err)
		}
	}
	return g
}

// MakeRequest creates an HTTP test request with an optional JSON body.
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

// AssertStatus checks that the response has the expected status code.
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// DecodeJSON decodes the response body into v.
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
