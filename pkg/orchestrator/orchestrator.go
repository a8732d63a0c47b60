// Package orchestrator runs dual-camera recording sessions.
//
// A session owns two sources and two recorders and services them from a
// single goroutine: each tick reads the left frame, publishes it for
// preview and encodes it, then does the same for the right side.
package orchestrator

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/user/camrecord/pkg/adapters/logger"
	"github.com/user/camrecord/pkg/metrics"
	"github.com/user/camrecord/pkg/ports"
	"github.com/user/camrecord/pkg/recorder"
)

var (
	// ErrAlreadyRecording is returned while a session is active.
	ErrAlreadyRecording = fmt.Errorf("%w: recording already in progress", ports.ErrOrchestrator)
	// ErrNotImplemented is returned for source combinations that are
	// declared but not supported.
	ErrNotImplemented = fmt.Errorf("%w: not implemented", ports.ErrOrchestrator)
)

// Side indexes the two halves of a session.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Config holds the fixed parameters of every session.
type Config struct {
	// Width and Height of device and synthetic frames.
	Width  int
	Height int
}

// DefaultConfig returns 640x480.
func DefaultConfig() Config {
	return Config{Width: 640, Height: 480}
}

// Reporter receives the result of every finished session.
type Reporter interface {
	Report(result SessionResult) error
}

// Deps are the collaborators of a DualRecorder.
type Deps struct {
	Sources  SourceFactory
	Recorder recorder.Options
	Metrics  *metrics.Metrics
	Reporter Reporter
	Logger   ports.Logger

	// Sleep paces ticks. Defaults to time.Sleep.
	Sleep func(time.Duration)
	// Now defaults to time.Now.
	Now func() time.Time
}

// SessionResult describes a finished session.
type SessionResult struct {
	ID        string
	Spec      SourceSpec
	OutputDir string
	FPS       int
	Started   time.Time
	Ended     time.Time

	// Recordings holds the metadata of every recorder that finalized.
	Recordings []recorder.Metadata
	// Frames counts encoded frames per side.
	Frames [2]int
	// Dropped counts skipped ticks per side.
	Dropped [2]int

	// Err is set when the session could not be set up.
	Err error
	// FinalizeErrors collects teardown failures.
	FinalizeErrors []error
}

// Duration returns the wall time of the session.
func (r SessionResult) Duration() time.Duration {
	return r.Ended.Sub(r.Started)
}

// Status is a snapshot of the recorder.
type Status struct {
	Recording bool
	SessionID string
	Spec      string
	Elapsed   time.Duration
	Frames    [2]int
	Dropped   [2]int
}

// DualRecorder records two sources at once. It is created once and
// reused across sessions; at most one session runs at a time.
type DualRecorder struct {
	cfg     Config
	deps    Deps
	logger  ports.Logger
	metrics *metrics.Metrics

	running atomic.Bool
	slots   [2]frameSlot

	mu      sync.Mutex
	current *session
	last    *SessionResult
}

// New creates a DualRecorder.
func New(cfg Config, deps Deps) *DualRecorder {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		d := DefaultConfig()
		cfg.Width, cfg.Height = d.Width, d.Height
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNoop()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New(nil)
	}
	if deps.Sleep == nil {
		deps.Sleep = time.Sleep
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &DualRecorder{
		cfg:     cfg,
		deps:    deps,
		logger:  deps.Logger.WithComponent("dual"),
		metrics: deps.Metrics,
	}
}

// StartRecording starts a session in the background and returns at once.
// The session ends after duration (zero records until stopped) or on
// StopRecording. It fails with ErrAlreadyRecording while a session is
// active and with ErrNotImplemented for mixed sources.
func (d *DualRecorder) StartRecording(spec SourceSpec, outputDir string, fps int, duration time.Duration) error {
	if spec.Kind == KindMixed {
		return fmt.Errorf("%w: %s", ErrNotImplemented, spec)
	}
	if fps <= 0 {
		return fmt.Errorf("%w: invalid fps %d", ports.ErrOrchestrator, fps)
	}
	if d.deps.Sources == nil {
		return fmt.Errorf("%w: no source factory", ports.ErrOrchestrator)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current != nil && !d.current.finished() {
		return ErrAlreadyRecording
	}
	if !d.running.CompareAndSwap(false, true) {
		return ErrAlreadyRecording
	}

	s := &session{
		owner:    d,
		id:       uuid.NewString(),
		spec:     spec,
		dir:      outputDir,
		fps:      fps,
		duration: duration,
		done:     make(chan struct{}),
	}
	s.logger = d.logger.WithComponent(s.id[:8])
	d.current = s

	d.metrics.RecordSessionStart()
	go s.run()
	return nil
}

// StopRecording asks the running session to end. It returns at once;
// use Wait to block until the recordings are finalized. A new session
// can start once the previous one has finished.
func (d *DualRecorder) StopRecording() {
	d.running.Store(false)
}

// IsRecording reports whether a session is active.
func (d *DualRecorder) IsRecording() bool {
	return d.running.Load()
}

// Wait blocks until the current session, if any, has finished.
func (d *DualRecorder) Wait() {
	d.mu.Lock()
	s := d.current
	d.mu.Unlock()
	if s != nil {
		<-s.done
	}
}

// LeftFrame returns a copy of the newest left frame, or nil.
func (d *DualRecorder) LeftFrame() []byte { return d.slots[Left].get() }

// RightFrame returns a copy of the newest right frame, or nil.
func (d *DualRecorder) RightFrame() []byte { return d.slots[Right].get() }

// LastSession returns the result of the most recently finished session.
func (d *DualRecorder) LastSession() (SessionResult, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.last == nil {
		return SessionResult{}, false
	}
	return *d.last, true
}

// Status returns a snapshot of the current or last session.
func (d *DualRecorder) Status() Status {
	d.mu.Lock()
	s := d.current
	d.mu.Unlock()

	st := Status{Recording: d.IsRecording()}
	if s == nil {
		return st
	}
	st.SessionID = s.id
	st.Spec = s.spec.String()
	for i := range s.frames {
		st.Frames[i] = int(s.frames[i].Load())
		st.Dropped[i] = int(s.dropped[i].Load())
	}
	if started := s.startedAt.Load(); started != nil {
		end := d.deps.Now()
		if ended := s.endedAt.Load(); ended != nil {
			end = *ended
		}
		st.Elapsed = end.Sub(*started)
	}
	return st
}

func (d *DualRecorder) finish(s *session, result SessionResult) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = &result
	d.running.Store(false)
	close(s.done)
}

// frameSlot holds the newest frame of one side.
type frameSlot struct {
	mu    sync.Mutex
	frame []byte
}

func (f *frameSlot) set(frame []byte) {
	buf := make([]byte, len(frame))
	copy(buf, frame)
	f.mu.Lock()
	f.frame = buf
	f.mu.Unlock()
}

func (f *frameSlot) get() []byte {
	f.mu.Lock()
	frame := f.frame
	f.mu.Unlock()
	if frame == nil {
		return nil
	}
	out := make([]byte, len(frame))
	copy(out, frame)
	return out
}

// errSetup marks failures before the first tick.
var errSetup = errors.New("session setup failed")
