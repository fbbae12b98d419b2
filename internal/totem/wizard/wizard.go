// Package wizard sequences the totem registration screens around the
// selfie capture flow.
package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"totem-quiz-backend/internal/models"
	"totem-quiz-backend/internal/totem/capture"
)

type Step int

const (
	Welcome Step = iota
	Camera
	Form
	Success
)

func (s Step) String() string {
	switch s {
	case Welcome:
		return "welcome"
	case Camera:
		return "camera"
	case Form:
		return "form"
	case Success:
		return "success"
	}
	return "unknown"
}

// ReturnDelay is how long the success screen stays up before the totem is
// ready for the next participant.
const ReturnDelay = 3 * time.Second

var ErrNotReady = errors.New("registration form is not ready to submit")

type Details struct {
	Name  string
	Email string
	Phone string
}

type Registration struct {
	Details
	Selfie []byte
}

// Registrar stores a completed registration.
type Registrar interface {
	Register(ctx context.Context, r Registration) (*models.Participant, error)
}

type Snapshot struct {
	Step        Step
	Details     Details
	HasSelfie   bool
	Err         error
	Participant *models.Participant
	Submitting  bool
}

type Option func(*Wizard)

func WithClock(c capture.Clock) Option {
	return func(w *Wizard) { w.clock = c }
}

// WithWelcome starts on the welcome screen instead of the camera.
func WithWelcome() Option {
	return func(w *Wizard) { w.step = Welcome }
}

type Wizard struct {
	mu        sync.Mutex
	registrar Registrar
	clock     capture.Clock
	capture   *capture.Flow

	step        Step
	details     Details
	selfie      []byte
	err         error
	participant *models.Participant
	submitting  bool
	resets      int
	gen         uint64
	timer       capture.Timer
}

func New(camera capture.Camera, registrar Registrar, opts ...Option) *Wizard {
	w := &Wizard{
		registrar: registrar,
		clock:     capture.RealClock(),
		step:      Camera,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.capture = capture.New(camera, capture.WithClock(w.clock), capture.OnConfirm(w.selfieConfirmed))
	return w
}

func (w *Wizard) Capture() *capture.Flow { return w.capture }

func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{
		Step:        w.step,
		Details:     w.details,
		HasSelfie:   w.selfie != nil,
		Err:         w.err,
		Participant: w.participant,
		Submitting:  w.submitting,
	}
}

func (w *Wizard) Begin() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != Welcome {
		return false
	}
	w.step = Camera
	return true
}

func (w *Wizard) selfieConfirmed(frame []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != Camera {
		return
	}
	w.selfie = frame
	w.err = nil
	w.step = Form
}

// Retake discards the selfie and sends the participant back to the camera.
func (w *Wizard) Retake() bool {
	w.mu.Lock()
	if w.step != Form || w.submitting {
		w.mu.Unlock()
		return false
	}
	w.selfie = nil
	w.err = nil
	w.step = Camera
	w.resets++
	counter := w.resets
	w.mu.Unlock()

	w.capture.Reset(counter)
	return true
}

// Submit sends the form and the confirmed selfie to the registrar. On failure
// the wizard stays on the form with everything entered so far.
func (w *Wizard) Submit(ctx context.Context, d Details) error {
	w.mu.Lock()
	if w.step != Form || w.submitting {
		w.mu.Unlock()
		return ErrNotReady
	}
	w.details = d
	w.submitting = true
	reg := Registration{Details: d, Selfie: w.selfie}
	w.mu.Unlock()

	participant, err := w.registrar.Register(ctx, reg)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if err != nil {
		w.err = err
		return err
	}

	w.err = nil
	w.participant = participant
	w.step = Success
	w.gen++
	gen := w.gen
	w.timer = w.clock.AfterFunc(ReturnDelay, func() { w.restart(gen) })
	return nil
}

func (w *Wizard) restart(gen uint64) {
	w.mu.Lock()
	if gen != w.gen || w.step != Success {
		w.mu.Unlock()
		return
	}
	w.step = Camera
	w.details = Details{}
	w.selfie = nil
	w.participant = nil
	w.timer = nil
	w.resets++
	counter := w.resets
	w.mu.Unlock()

	w.capture.Reset(counter)
}

// Close cancels a pending return to the camera.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.gen++
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
