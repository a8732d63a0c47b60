// Package smartencoder provides an encoder factory that automatically
// selects the best available backend with fallback support.
package smartencoder

import (
	"errors"
	"fmt"
	"sync"

	"github.com/user/camrecord/pkg/adapters/ffmpeg"
	"github.com/user/camrecord/pkg/adapters/gstreamer"
	"github.com/user/camrecord/pkg/ports"
)

// Backend represents the encoding backend used.
type Backend string

const (
	// BackendAuto tries GStreamer first, then FFmpeg.
	BackendAuto Backend = "auto"
	// BackendGStreamer represents the appsrc ! x264enc ! mp4mux pipeline.
	BackendGStreamer Backend = "gstreamer"
	// BackendFFmpeg represents an ffmpeg child process.
	BackendFFmpeg Backend = "ffmpeg"
)

// ParseBackend converts a configuration value into a Backend.
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case "", BackendAuto:
		return BackendAuto, nil
	case BackendGStreamer, BackendFFmpeg:
		return Backend(s), nil
	default:
		return "", fmt.Errorf("smartencoder: unknown backend %q", s)
	}
}

// Info contains information about the selected encoder.
type Info struct {
	// Backend is the encoding backend being used.
	Backend Backend
	// Requested is the backend that was asked for.
	Requested Backend
	// FallbackUsed indicates whether a fallback occurred.
	FallbackUsed bool
}

// Options configures the smart encoder behavior.
type Options struct {
	// Preferred selects the backend. BackendAuto allows every backend.
	Preferred Backend
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string
	// Logger is used to log fallback warnings.
	Logger ports.Logger
}

// ErrNoEncoderAvailable is returned when no encoder is available.
var ErrNoEncoderAvailable = errors.New("smartencoder: no encoder available")

// Candidate is one backend in selection order.
type Candidate struct {
	Backend   Backend
	Available func() bool
	Factory   ports.EncoderFactory
}

// DefaultCandidates returns GStreamer then FFmpeg.
func DefaultCandidates() []Candidate {
	return []Candidate{
		{Backend: BackendGStreamer, Available: gstreamer.IsEncoderAvailable, Factory: gstreamer.NewEncoderFactory()},
		{Backend: BackendFFmpeg, Available: ffmpeg.IsAvailable, Factory: ffmpeg.NewEncoderFactory()},
	}
}

// Factory implements ports.EncoderFactory over an ordered candidate list.
type Factory struct {
	opts       Options
	candidates []Candidate

	mu   sync.Mutex
	last Info
}

// New creates a Factory with the default candidates.
func New(opts Options) *Factory {
	if opts.FFmpegPath != "" {
		ffmpeg.SetFFmpegPath(opts.FFmpegPath)
	}
	return NewWithCandidates(opts, DefaultCandidates())
}

// NewWithCandidates creates a Factory over explicit candidates.
func NewWithCandidates(opts Options, candidates []Candidate) *Factory {
	if opts.Preferred == "" {
		opts.Preferred = BackendAuto
	}
	return &Factory{opts: opts, candidates: candidates}
}

// NewPipeline opens a pipeline on the first candidate that is available
// and starts successfully. A preferred backend other than auto is tried
// first, and the rest are fallbacks.
func (f *Factory) NewPipeline(cfg ports.EncoderConfig) (ports.EncodePipeline, error) {
	var lastErr error
	for i, c := range f.ordered() {
		if c.Available != nil && !c.Available() {
			lastErr = fmt.Errorf("%s not available", c.Backend)
			continue
		}
		p, err := c.Factory.NewPipeline(cfg)
		if err != nil {
			if f.opts.Logger != nil {
				f.opts.Logger.Warn("Encoder backend %s failed: %v", c.Backend, err)
			}
			lastErr = err
			continue
		}

		info := Info{
			Backend:      c.Backend,
			Requested:    f.opts.Preferred,
			FallbackUsed: i > 0,
		}
		if info.FallbackUsed && f.opts.Logger != nil {
			f.opts.Logger.Warn("Falling back to %s encoder", c.Backend)
		}
		f.mu.Lock()
		f.last = info
		f.mu.Unlock()
		return p, nil
	}
	if lastErr == nil {
		return nil, ErrNoEncoderAvailable
	}
	return nil, fmt.Errorf("%w: %w", ErrNoEncoderAvailable, lastErr)
}

// LastInfo returns the selection made by the most recent NewPipeline.
func (f *Factory) LastInfo() Info {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

func (f *Factory) ordered() []Candidate {
	if f.opts.Preferred == BackendAuto {
		return f.candidates
	}
	out := make([]Candidate, 0, len(f.candidates))
	for _, c := range f.candidates {
		if c.Backend == f.opts.Preferred {
			out = append(out, c)
		}
	}
	for _, c := range f.candidates {
		if c.Backend != f.opts.Preferred {
			out = append(out, c)
		}
	}
	return out
}

// IsAvailable reports whether any default backend can encode.
func IsAvailable() bool {
	for _, c := range DefaultCandidates() {
		if c.Available() {
			return true
		}
	}
	return false
}

var _ ports.EncoderFactory = (*Factory)(nil)
