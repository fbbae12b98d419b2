package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"totem-quiz-backend/internal/models"
	"totem-quiz-backend/internal/storage"
	"totem-quiz-backend/internal/testutil"
)

var pngSelfie = []byte("\x89PNG\r\n\x1a\nselfie")

type recordingStorage struct {
	saved   []string
	removed []string
}

func (r *recordingStorage) Save(name string, _ io.Reader) (string, error) {
	url := "/uploads/" + name
	r.saved = append(r.saved, url)
	return url, nil
}

func (r *recordingStorage) SaveDataURL(string) (string, error) {
	return r.Save("inline.png", nil)
}

func (r *recordingStorage) Remove(url string) error {
	r.removed = append(r.removed, url)
	return nil
}

func countParticipants(t *testing.T, svc *RegistrationService) int64 {
	t.Helper()
	var n int64
	if err := svc.db.Model(&models.Participant{}).Count(&n).Error; err != nil {
		t.Fatalf("count participants: %v", err)
	}
	return n
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name  string
		input RegistrationInput
		field string
	}{
		{"missing name", RegistrationInput{}, "name"},
		{"name too short", RegistrationInput{Name: "A"}, "name"},
		{"name too long", RegistrationInput{Name: strings.Repeat("a", 51)}, "name"},
		{"blank name", RegistrationInput{Name: "   "}, "name"},
		{"bad email", RegistrationInput{Name: "Ana Silva", Email: "not-an-email"}, "email"},
		{"short phone", RegistrationInput{Name: "Ana Silva", Phone: "12345"}, "phone"},
		{"long phone", RegistrationInput{Name: "Ana Silva", Phone: strings.Repeat("9", 31)}, "phone"},
		{"long email", RegistrationInput{Name: "Ana Silva", Email: strings.Repeat("a", 250) + "@example.com"}, "email"},
		{"long selfie url", RegistrationInput{Name: "Ana Silva", SelfieImage: "https://cdn.example.com/" + strings.Repeat("a", 480)}, "selfieImage"},
		{"bad selfie reference", RegistrationInput{Name: "Ana Silva", SelfieImage: "selfie.png"}, "selfieImage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewRegistrationService(testutil.SetupTestDB(t), &recordingStorage{})

			_, err := svc.Register(context.Background(), tt.input)

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
			if verr.Fields[0].Field != tt.field {
				t.Errorf("Expected error on %q, got %+v", tt.field, verr.Fields)
			}
			if n := countParticipants(t, svc); n != 0 {
				t.Errorf("Expected no participant to be stored, got %d", n)
			}
		})
	}
}

func TestRegisterNameBoundaries(t *testing.T) {
	svc := NewRegistrationService(testutil.SetupTestDB(t), &recordingStorage{})

	for _, name := range []string{"Al", strings.Repeat("b", 50)} {
		if _, err := svc.Register(context.Background(), RegistrationInput{Name: name}); err != nil {
			t.Errorf("Register(%q) failed: %v", name, err)
		}
	}
}

func TestRegisterNormalizesEmptyContact(t *testing.T) {
	svc := NewRegistrationService(testutil.SetupTestDB(t), &recordingStorage{})

	p, err := svc.Register(context.Background(), RegistrationInput{Name: "Ana Silva", Email: "", Phone: ""})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if p.Email != nil || p.Phone != nil {
		t.Errorf("Expected nil email and phone, got %v %v", p.Email, p.Phone)
	}

	var stored models.Participant
	if err := svc.db.First(&stored, "id = ?", p.ID).Error; err != nil {
		t.Fatalf("load participant: %v", err)
	}
	if stored.Email != nil || stored.Phone != nil {
		t.Errorf("Expected NULL email and phone in the store, got %v %v", stored.Email, stored.Phone)
	}
}

func TestRegisterKeepsContact(t *testing.T) {
	svc := NewRegistrationService(testutil.SetupTestDB(t), &recordingStorage{})

	p, err := svc.Register(context.Background(), RegistrationInput{
		Name:  "Bruno Costa",
		Email: "bruno@example.com",
		Phone: "11987654321",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if p.Email == nil || *p.Email != "bruno@example.com" {
		t.Errorf("Unexpected email %v", p.Email)
	}
	if p.Phone == nil || *p.Phone != "11987654321" {
		t.Errorf("Unexpected phone %v", p.Phone)
	}
}

func TestRegisterStoresUploadedSelfie(t *testing.T) {
	dir := t.TempDir()
	svc := NewRegistrationService(testutil.SetupTestDB(t), storage.NewSelfieStore(dir, "/uploads", 1<<20))

	p, err := svc.Register(context.Background(), RegistrationInput{
		Name:   "Ana Silva",
		Selfie: &SelfieUpload{Filename: "me.png", Content: bytes.NewReader(pngSelfie)},
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if p.SelfieURL == nil || !strings.HasPrefix(*p.SelfieURL, "/uploads/selfie_") || !strings.HasSuffix(*p.SelfieURL, ".png") {
		t.Fatalf("Unexpected selfie URL %v", p.SelfieURL)
	}

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(*p.SelfieURL)))
	if err != nil {
		t.Fatalf("selfie file missing: %v", err)
	}
	if !bytes.Equal(data, pngSelfie) {
		t.Errorf("Unexpected selfie content %q", data)
	}
}

func TestRegisterRejectsUnsupportedSelfie(t *testing.T) {
	svc := NewRegistrationService(testutil.SetupTestDB(t), storage.NewSelfieStore(t.TempDir(), "/uploads", 1<<20))

	_, err := svc.Register(context.Background(), RegistrationInput{
		Name:   "Ana Silva",
		Selfie: &SelfieUpload{Filename: "notes.txt", Content: strings.NewReader("text")},
	})

	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Fields[0].Field != "selfie" {
		t.Fatalf("Expected selfie ValidationError, got %v", err)
	}
}

func TestRegisterStoresDataURLSelfie(t *testing.T) {
	store := &recordingStorage{}
	svc := NewRegistrationService(testutil.SetupTestDB(t), store)

	p, err := svc.Register(context.Background(), RegistrationInput{
		Name:        "Ana Silva",
		SelfieImage: "data:image/png;base64,aGVsbG8=",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if len(store.saved) != 1 || p.SelfieURL == nil || *p.SelfieURL != store.saved[0] {
		t.Errorf("Expected data URL to be stored, saved=%v url=%v", store.saved, p.SelfieURL)
	}
}

func TestRegisterKeepsHostedSelfieURL(t *testing.T) {
	store := &recordingStorage{}
	svc := NewRegistrationService(testutil.SetupTestDB(t), store)

	p, err := svc.Register(context.Background(), RegistrationInput{
		Name:        "Ana Silva",
		SelfieImage: "https://cdn.example.com/ana.jpg",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if p.SelfieURL == nil || *p.SelfieURL != "https://cdn.example.com/ana.jpg" {
		t.Errorf("Unexpected selfie URL %v", p.SelfieURL)
	}
	if len(store.saved) != 0 {
		t.Errorf("Expected no file to be written, got %v", store.saved)
	}
}

func TestRegisterRemovesSelfieWhenInsertFails(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := &recordingStorage{}
	svc := NewRegistrationService(db, store)

	if err := db.Migrator().DropTable(&models.Participant{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	_, err := svc.Register(context.Background(), RegistrationInput{
		Name:   "Ana Silva",
		Selfie: &SelfieUpload{Filename: "me.jpg", Content: strings.NewReader("jpg")},
	})
	if err == nil {
		t.Fatal("Expected Register to fail without a participants table")
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		t.Fatalf("Expected a server error, got validation error %v", err)
	}
	if len(store.removed) != 1 || store.removed[0] != store.saved[0] {
		t.Errorf("Expected orphaned selfie to be removed, saved=%v removed=%v", store.saved, store.removed)
	}
}

func TestListParticipantsNewestFirst(t *testing.T) {
	svc := NewRegistrationService(testutil.SetupTestDB(t), &recordingStorage{})

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	names := []string{"Ana Silva", "Bruno Costa", "Carla Dias", "Diego Lima"}
	for i, name := range names {
		at := base.Add(time.Duration(i) * time.Minute)
		svc.now = func() time.Time { return at }
		if _, err := svc.Register(context.Background(), RegistrationInput{Name: name}); err != nil {
			t.Fatalf("Register(%q) failed: %v", name, err)
		}
	}

	participants, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(participants) != len(names) {
		t.Fatalf("Expected %d participants, got %d", len(names), len(participants))
	}
	for i, p := range participants {
		want := names[len(names)-1-i]
		if p.Name != want {
			t.Errorf("participants[%d] = %q, want %q", i, p.Name, want)
		}
	}
}
