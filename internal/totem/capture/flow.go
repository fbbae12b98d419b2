// Package capture drives the selfie camera on the totem: a live preview, a
// three second countdown, the captured frame and its confirmation.
package capture

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

type State int

const (
	Live State = iota
	Countdown
	Captured
	Confirmed
	Unavailable
)

func (s State) String() string {
	switch s {
	case Live:
		return "live"
	case Countdown:
		return "countdown"
	case Captured:
		return "captured"
	case Confirmed:
		return "confirmed"
	case Unavailable:
		return "unavailable"
	}
	return "unknown"
}

const (
	CountdownFrom = 3
	TickInterval  = time.Second
)

var ErrEmptyFrame = errors.New("camera returned an empty frame")

// Camera is the webcam behind the preview.
type Camera interface {
	Open() error
	Grab() ([]byte, error)
}

type Snapshot struct {
	State     State
	Remaining int
	Mirrored  bool
	Frame     []byte
	Err       error
}

type Option func(*Flow)

func WithClock(c Clock) Option {
	return func(f *Flow) { f.clock = c }
}

// OnConfirm registers the callback that receives the confirmed frame.
func OnConfirm(fn func(frame []byte)) Option {
	return func(f *Flow) { f.onConfirm = fn }
}

// Flow is safe for concurrent use. Every transition bumps or checks gen so
// that countdown ticks scheduled before a reset or failure are dropped.
type Flow struct {
	mu        sync.Mutex
	camera    Camera
	clock     Clock
	onConfirm func([]byte)

	state     State
	remaining int
	frame     []byte
	mirrored  bool
	err       error
	gen       uint64
	timer     Timer
	lastReset int
}

func New(camera Camera, opts ...Option) *Flow {
	f := &Flow{
		camera:   camera,
		clock:    RealClock(),
		mirrored: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.open()
	return f
}

func (f *Flow) open() {
	if err := f.camera.Open(); err != nil {
		slog.Warn("camera unavailable", "error", err)
		f.state = Unavailable
		f.err = err
		return
	}
	f.state = Live
	f.err = nil
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot{
		State:     f.state,
		Remaining: f.remaining,
		Mirrored:  f.mirrored,
		Frame:     f.frame,
		Err:       f.err,
	}
}

// Start begins the countdown. It is a no-op unless the preview is live, so
// overlapping taps and clicks start a single countdown.
func (f *Flow) Start() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != Live {
		return false
	}
	f.state = Countdown
	f.remaining = CountdownFrom
	f.schedule(f.gen)
	return true
}

func (f *Flow) schedule(gen uint64) {
	f.timer = f.clock.AfterFunc(TickInterval, func() { f.tick(gen) })
}

func (f *Flow) tick(gen uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.gen || f.state != Countdown {
		return
	}
	f.remaining--
	if f.remaining > 0 {
		f.schedule(gen)
		return
	}

	f.timer = nil
	frame, err := f.camera.Grab()
	if err == nil && len(frame) == 0 {
		err = ErrEmptyFrame
	}
	if err != nil {
		slog.Warn("frame grab failed", "error", err)
		f.state = Live
		return
	}
	f.frame = frame
	f.state = Captured
}

// Retake drops the captured frame and returns to the live preview. The
// mirror setting is kept.
func (f *Flow) Retake() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != Captured {
		return false
	}
	f.frame = nil
	f.state = Live
	return true
}

// Confirm hands the captured frame to the OnConfirm callback.
func (f *Flow) Confirm() ([]byte, bool) {
	f.mu.Lock()
	if f.state != Captured {
		f.mu.Unlock()
		return nil, false
	}
	f.state = Confirmed
	frame := f.frame
	cb := f.onConfirm
	f.mu.Unlock()

	if cb != nil {
		cb(frame)
	}
	return frame, true
}

// CameraFailed reports a permission or hardware error from any state.
func (f *Flow) CameraFailed(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	slog.Warn("camera failed", "state", f.state.String(), "error", err)
	f.cancelCountdown()
	f.frame = nil
	f.state = Unavailable
	f.err = err
}

// Retry re-acquires the camera after a failure.
func (f *Flow) Retry() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != Unavailable {
		return false
	}
	f.open()
	return f.state == Live
}

// Reset forces the flow back to a fresh live preview. counter must grow with
// every reset request; repeated or older values are ignored. An unavailable
// camera is opened again, so the flow may stay unavailable.
func (f *Flow) Reset(counter int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if counter <= f.lastReset {
		return false
	}
	f.lastReset = counter
	f.cancelCountdown()
	f.frame = nil
	f.err = nil
	f.mirrored = true
	if f.state == Unavailable {
		f.open()
		return true
	}
	f.state = Live
	return true
}

func (f *Flow) ToggleMirror() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mirrored = !f.mirrored
	return f.mirrored
}

func (f *Flow) cancelCountdown() {
	f.gen++
	f.remaining = 0
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}
