// Package smartdecoder provides a decoder factory that picks the first
// working backend for a recording.
package smartdecoder

import (
	"errors"
	"fmt"
	"sync"

	"github.com/user/camrecord/pkg/adapters/ffmpeg"
	"github.com/user/camrecord/pkg/adapters/gstreamer"
	"github.com/user/camrecord/pkg/ports"
)

// Backend represents the decoding backend used.
type Backend string

const (
	// BackendGStreamer represents filesrc ! decodebin.
	BackendGStreamer Backend = "gstreamer"
	// BackendFFmpeg represents an ffmpeg rawvideo pipe.
	BackendFFmpeg Backend = "ffmpeg"
)

// Info contains information about the selected decoder.
type Info struct {
	// Path is the file that was opened.
	Path string
	// Backend is the decoding backend being used.
	Backend Backend
	// FallbackUsed indicates whether the first backend was skipped.
	FallbackUsed bool
}

// Options configures the smart decoder behavior.
type Options struct {
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string
	// Logger is used to log fallback warnings.
	Logger ports.Logger
}

// ErrNoDecoderAvailable is returned when no backend could open the file.
var ErrNoDecoderAvailable = errors.New("smartdecoder: no decoder available")

// Candidate is one backend in selection order.
type Candidate struct {
	Backend   Backend
	Available func() bool
	Factory   ports.DecoderFactory
}

// DefaultCandidates returns GStreamer then FFmpeg.
func DefaultCandidates() []Candidate {
	return []Candidate{
		{Backend: BackendGStreamer, Available: gstreamer.IsDecoderAvailable, Factory: gstreamer.NewDecoderFactory()},
		{Backend: BackendFFmpeg, Available: ffmpeg.IsAvailable, Factory: ffmpeg.NewDecoderFactory()},
	}
}

// Factory implements ports.DecoderFactory over an ordered candidate list.
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
	return &Factory{opts: opts, candidates: candidates}
}

// Open returns a decoder from the first backend that opens cfg.Path.
func (f *Factory) Open(cfg ports.DecoderConfig) (ports.FrameDecoder, error) {
	var lastErr error
	for i, c := range f.candidates {
		if c.Available != nil && !c.Available() {
			lastErr = fmt.Errorf("%s not available", c.Backend)
			continue
		}
		d, err := c.Factory.Open(cfg)
		if err != nil {
			if f.opts.Logger != nil {
				f.opts.Logger.Warn("Decoder backend %s failed: %v", c.Backend, err)
			}
			lastErr = err
			continue
		}
		f.mu.Lock()
		f.last = Info{Path: cfg.Path, Backend: c.Backend, FallbackUsed: i > 0}
		f.mu.Unlock()
		return d, nil
	}
	if lastErr == nil {
		return nil, ErrNoDecoderAvailable
	}
	return nil, fmt.Errorf("%w: %w", ErrNoDecoderAvailable, lastErr)
}

// LastInfo returns the selection made by the most recent Open.
func (f *Factory) LastInfo() Info {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

var _ ports.DecoderFactory = (*Factory)(nil)
