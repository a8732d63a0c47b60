// Package playback replays stored recordings as frame sources.
package playback

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/user/camrecord/pkg/adapters/logger"
	"github.com/user/camrecord/pkg/adapters/osfilesystem"
	"github.com/user/camrecord/pkg/ports"
)

// DefaultPullTimeout bounds each wait for a decoded frame.
const DefaultPullTimeout = time.Second

// Options configures how recordings are opened.
type Options struct {
	// Width and Height are used when the container cannot be probed.
	Width  int
	Height int
	// FPS is used when the container does not report a rate.
	FPS float64
	// PullTimeout bounds each frame pull.
	PullTimeout time.Duration

	// Decoders opens the decode pipeline. Required.
	Decoders ports.DecoderFactory
	// Prober reads frame count and dimensions. Optional.
	Prober ports.MediaProber
	// FS checks paths and lists directories. Defaults to the OS.
	FS ports.FileSystem

	Logger ports.Logger
}

// DefaultOptions returns 640x480 at 30 fps with a one second pull timeout.
func DefaultOptions() Options {
	return Options{
		Width:       640,
		Height:      480,
		FPS:         30,
		PullTimeout: DefaultPullTimeout,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 || o.Height <= 0 {
		o.Width, o.Height = d.Width, d.Height
	}
	if o.FPS <= 0 {
		o.FPS = d.FPS
	}
	if o.PullTimeout <= 0 {
		o.PullTimeout = d.PullTimeout
	}
	if o.FS == nil {
		o.FS = osfilesystem.New()
	}
	if o.Logger == nil {
		o.Logger = logger.NewNoop()
	}
	return o
}

// Source is a stored recording exposed as a ports.FrameSource.
//
// Without looping the source finishes after its last frame and every
// further NextFrame fails with ports.ErrRead. With looping, end of stream
// rewinds the decoder and the caller never observes it.
type Source struct {
	path    string
	loop    bool
	size    ports.Dimension
	fps     float64
	timeout time.Duration
	decoder ports.FrameDecoder
	logger  ports.Logger

	mu         sync.Mutex
	current    int
	frameCount int
	finished   bool
	// next holds the frame read ahead when not looping, so that the
	// source knows it is finished as soon as the last frame is returned.
	next    []byte
	nextErr error
	primed  bool
}

// Open opens the recording at path. The error wraps ports.ErrOpen when the
// file does not exist or no decoder accepts it.
func Open(path string, loop bool, opts Options) (*Source, error) {
	opts = opts.withDefaults()
	if opts.Decoders == nil {
		return nil, fmt.Errorf("%w: %s: no decoder configured", ports.ErrOpen, path)
	}
	exists, err := opts.FS.Exists(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ports.ErrOpen, path, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: file not found: %s", ports.ErrOpen, path)
	}

	log := opts.Logger.WithComponent("playback")
	size := ports.Dimension{Width: opts.Width, Height: opts.Height}
	fps := opts.FPS
	frameCount := 0
	if opts.Prober != nil {
		info, err := opts.Prober.Probe(path)
		if err != nil {
			log.Debug("Could not read container info of %s: %v", filepath.Base(path), err)
		} else {
			if info.Width > 0 && info.Height > 0 {
				size = ports.Dimension{Width: info.Width, Height: info.Height}
			}
			if info.FPS > 0 {
				fps = info.FPS
			}
			frameCount = info.FrameCount
		}
	}

	dec, err := opts.Decoders.Open(ports.DecoderConfig{Path: path, Width: size.Width, Height: size.Height})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ports.ErrOpen, path, err)
	}

	return &Source{
		path:       path,
		loop:       loop,
		size:       size,
		fps:        fps,
		timeout:    opts.PullTimeout,
		decoder:    dec,
		logger:     log,
		frameCount: frameCount,
	}, nil
}

// Start is a no-op; decoding begins at Open.
func (s *Source) Start() error { return nil }

// NextFrame returns the next frame of the recording.
func (s *Source) NextFrame() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return nil, fmt.Errorf("%w: %s: end of recording", ports.ErrRead, s.path)
	}
	if s.loop {
		frame, err := s.pullLooping()
		if err != nil {
			return nil, err
		}
		s.advance()
		return frame, nil
	}

	if !s.primed {
		s.next, s.nextErr = s.pull()
		s.primed = true
	}
	frame, err := s.next, s.nextErr
	if errors.Is(err, io.EOF) {
		s.finished = true
		return nil, fmt.Errorf("%w: %s: end of recording", ports.ErrRead, s.path)
	}
	if err != nil {
		s.primed = false
		return nil, err
	}

	s.advance()
	s.next, s.nextErr = s.pull()
	if errors.Is(s.nextErr, io.EOF) {
		s.finished = true
		if s.frameCount < s.current {
			s.frameCount = s.current
		}
	}
	return frame, nil
}

// pullLooping reads a frame and rewinds once on end of stream.
func (s *Source) pullLooping() ([]byte, error) {
	frame, err := s.pull()
	if !errors.Is(err, io.EOF) {
		return frame, err
	}
	if s.frameCount < s.current {
		s.frameCount = s.current
	}
	if err := s.reset(); err != nil {
		return nil, fmt.Errorf("%w: %s: rewind: %w", ports.ErrRead, s.path, err)
	}
	frame, err = s.pull()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: recording has no frames", ports.ErrRead, s.path)
	}
	return frame, err
}

// pull reads one frame. io.EOF is returned unwrapped.
func (s *Source) pull() ([]byte, error) {
	frame, err := s.decoder.Next(s.timeout)
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ports.ErrRead, s.path, err)
	}
	if err := ports.ValidateFrame(frame, s.size); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ports.ErrRead, s.path, err)
	}
	return frame, nil
}

func (s *Source) advance() {
	s.current++
	if s.frameCount > 0 && s.current > s.frameCount {
		s.frameCount = s.current
	}
}

// Reset seeks to the first frame and clears the finished state.
func (s *Source) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reset()
}

func (s *Source) reset() error {
	if err := s.decoder.Rewind(); err != nil {
		return fmt.Errorf("%w: %s: %w", ports.ErrOpen, s.path, err)
	}
	s.current = 0
	s.finished = false
	s.primed = false
	s.next, s.nextErr = nil, nil
	return nil
}

// Stop closes the decoder.
func (s *Source) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.decoder.Close()
}

// Size returns the frame size.
func (s *Source) Size() ports.Dimension { return s.size }

// Path returns the recording path.
func (s *Source) Path() string { return s.path }

// FPS returns the recording frame rate.
func (s *Source) FPS() float64 { return s.fps }

// Loop reports whether the source loops.
func (s *Source) Loop() bool { return s.loop }

// Backend returns the decoder in use.
func (s *Source) Backend() string { return s.decoder.Backend() }

// CurrentFrame returns how many frames were returned since the last reset.
func (s *Source) CurrentFrame() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// FrameCount returns the number of frames in the recording, or 0 when
// unknown.
func (s *Source) FrameCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameCount
}

// Progress returns the position in the recording as a fraction in [0,1].
func (s *Source) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frameCount <= 0 {
		return 0
	}
	p := float64(s.current) / float64(s.frameCount)
	if p > 1 {
		return 1
	}
	return p
}

// IsFinished reports whether a non-looping source returned its last frame.
func (s *Source) IsFinished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

var _ ports.FrameSource = (*Source)(nil)
