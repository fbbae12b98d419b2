package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"totem-quiz-backend/internal/models"
	"totem-quiz-backend/internal/totem/capture"
)

type stubCamera struct{ frame []byte }

func (c stubCamera) Open() error           { return nil }
func (c stubCamera) Grab() ([]byte, error) { return c.frame, nil }

type fakeRegistrar struct {
	mu   sync.Mutex
	err  error
	regs []Registration
}

func (r *fakeRegistrar) Register(_ context.Context, reg Registration) (*models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.regs = append(r.regs, reg)
	if r.err != nil {
		return nil, r.err
	}
	return &models.Participant{ID: "p1", Name: reg.Name}, nil
}

func newWizard(t *testing.T, reg Registrar, opts ...Option) (*Wizard, *capture.ManualClock) {
	t.Helper()
	clock := &capture.ManualClock{}
	w := New(stubCamera{frame: []byte("selfie")}, reg, append([]Option{WithClock(clock)}, opts...)...)
	t.Cleanup(w.Close)
	return w, clock
}

func takeSelfie(t *testing.T, w *Wizard, clock *capture.ManualClock) {
	t.Helper()
	if !w.Capture().Start() {
		t.Fatalf("capture did not start from %s", w.Capture().State())
	}
	clock.Advance(capture.CountdownFrom * capture.TickInterval)
	if _, ok := w.Capture().Confirm(); !ok {
		t.Fatalf("capture could not be confirmed from %s", w.Capture().State())
	}
}

func TestRegistrationRoundTrip(t *testing.T) {
	reg := &fakeRegistrar{}
	w, clock := newWizard(t, reg)

	if s := w.Snapshot(); s.Step != Camera {
		t.Fatalf("Expected to start on the camera, got %s", s.Step)
	}
	takeSelfie(t, w, clock)
	if s := w.Snapshot(); s.Step != Form || !s.HasSelfie {
		t.Fatalf("Expected form with selfie, got %+v", s)
	}

	details := Details{Name: "Ana Silva", Email: "ana@example.com"}
	if err := w.Submit(context.Background(), details); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if s := w.Snapshot(); s.Step != Success || s.Participant == nil {
		t.Fatalf("Expected success, got %+v", s)
	}
	if len(reg.regs) != 1 || reg.regs[0].Name != "Ana Silva" || string(reg.regs[0].Selfie) != "selfie" {
		t.Fatalf("Unexpected registrations %+v", reg.regs)
	}

	clock.Advance(ReturnDelay - 1)
	if s := w.Snapshot(); s.Step != Success {
		t.Fatalf("Returned too early, got %s", s.Step)
	}
	clock.Advance(1)

	s := w.Snapshot()
	if s.Step != Camera || s.HasSelfie || s.Details != (Details{}) || s.Participant != nil {
		t.Errorf("Expected a clean camera step, got %+v", s)
	}
	if st := w.Capture().State(); st != capture.Live {
		t.Errorf("Expected capture to be reset to live, got %s", st)
	}

	takeSelfie(t, w, clock)
	if s := w.Snapshot(); s.Step != Form {
		t.Errorf("Expected the next participant to reach the form, got %s", s.Step)
	}
}

func TestSubmitFailureKeepsForm(t *testing.T) {
	reg := &fakeRegistrar{err: errors.New("server down")}
	w, clock := newWizard(t, reg)
	takeSelfie(t, w, clock)

	details := Details{Name: "Ana Silva", Phone: "11987654321"}
	if err := w.Submit(context.Background(), details); err == nil {
		t.Fatal("Expected Submit to fail")
	}

	s := w.Snapshot()
	if s.Step != Form || !s.HasSelfie || s.Details != details || s.Err == nil {
		t.Fatalf("Expected form to keep its data and expose the error, got %+v", s)
	}
	if clock.Pending() != 0 {
		t.Errorf("Failure should not schedule a return, %d timers pending", clock.Pending())
	}

	reg.mu.Lock()
	reg.err = nil
	reg.mu.Unlock()
	if err := w.Submit(context.Background(), details); err != nil {
		t.Fatalf("Retry failed: %v", err)
	}
	if s := w.Snapshot(); s.Step != Success || s.Err != nil {
		t.Errorf("Expected success after retry, got %+v", s)
	}
}

func TestRetakeFromForm(t *testing.T) {
	w, clock := newWizard(t, &fakeRegistrar{})

	if w.Retake() {
		t.Error("Retake from the camera step should be rejected")
	}
	takeSelfie(t, w, clock)
	if !w.Retake() {
		t.Fatal("Retake from the form should succeed")
	}

	s := w.Snapshot()
	if s.Step != Camera || s.HasSelfie {
		t.Errorf("Expected camera without selfie, got %+v", s)
	}
	if st := w.Capture().State(); st != capture.Live {
		t.Errorf("Expected capture reset to live, got %s", st)
	}
}

func TestSubmitRequiresForm(t *testing.T) {
	reg := &fakeRegistrar{}
	w, _ := newWizard(t, reg)

	if err := w.Submit(context.Background(), Details{Name: "Ana Silva"}); !errors.Is(err, ErrNotReady) {
		t.Errorf("Expected ErrNotReady, got %v", err)
	}
	if len(reg.regs) != 0 {
		t.Errorf("Registrar should not be called, got %d calls", len(reg.regs))
	}
}

func TestCaptureConfirmOutsideCameraStepIgnored(t *testing.T) {
	w, clock := newWizard(t, &fakeRegistrar{}, WithWelcome())

	if s := w.Snapshot(); s.Step != Welcome {
		t.Fatalf("Expected welcome, got %s", s.Step)
	}
	takeSelfie(t, w, clock)
	if s := w.Snapshot(); s.Step != Welcome || s.HasSelfie {
		t.Errorf("Confirm on the welcome screen should not advance, got %+v", s)
	}

	if !w.Begin() || w.Snapshot().Step != Camera {
		t.Error("Begin should move to the camera")
	}
	if w.Begin() {
		t.Error("Begin twice should be rejected")
	}
}

func TestCloseCancelsReturn(t *testing.T) {
	w, clock := newWizard(t, &fakeRegistrar{})
	takeSelfie(t, w, clock)
	if err := w.Submit(context.Background(), Details{Name: "Ana Silva"}); err != nil {
		t.Fatal(err)
	}

	w.Close()
	clock.Advance(ReturnDelay)
	if s := w.Snapshot(); s.Step != Success {
		t.Errorf("Expected to stay on success after Close, got %s", s.Step)
	}
}
