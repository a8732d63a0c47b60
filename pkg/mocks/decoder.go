package mocks

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/user/camrecord/pkg/ports"
)

// FrameDecoder is a mock implementation of ports.FrameDecoder that
// replays a fixed list of frames and then reports io.EOF.
type FrameDecoder struct {
	NextFunc   func(timeout time.Duration) ([]byte, error)
	RewindFunc func() error

	mu      sync.Mutex
	frames  [][]byte
	pos     int
	rewinds int
	closed  bool
}

// NewFrameDecoder creates a decoder over frames.
func NewFrameDecoder(frames [][]byte) *FrameDecoder {
	return &FrameDecoder{frames: frames}
}

func (m *FrameDecoder) Next(timeout time.Duration) ([]byte, error) {
	if m.NextFunc != nil {
		return m.NextFunc(timeout)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, errors.New("mock decoder closed")
	}
	if m.pos >= len(m.frames) {
		return nil, io.EOF
	}
	f := m.frames[m.pos]
	m.pos++
	return append([]byte(nil), f...), nil
}

func (m *FrameDecoder) Rewind() error {
	m.mu.Lock()
	m.rewinds++
	m.pos = 0
	m.mu.Unlock()
	if m.RewindFunc != nil {
		return m.RewindFunc()
	}
	return nil
}

func (m *FrameDecoder) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *FrameDecoder) Backend() string { return "mock" }

// Rewinds returns how often Rewind was called.
func (m *FrameDecoder) Rewinds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rewinds
}

// Closed reports whether Close was called.
func (m *FrameDecoder) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// DecoderFactory is a mock implementation of ports.DecoderFactory.
// Every Open returns a new FrameDecoder over FramesFor(path), falling back
// to the default frames.
type DecoderFactory struct {
	OpenFunc func(cfg ports.DecoderConfig) (ports.FrameDecoder, error)

	mu       sync.Mutex
	frames   [][]byte
	byPath   map[string][][]byte
	Opened   []ports.DecoderConfig
	Decoders []*FrameDecoder
}

// NewDecoderFactory creates a factory whose decoders replay frames.
func NewDecoderFactory(frames [][]byte) *DecoderFactory {
	return &DecoderFactory{frames: frames, byPath: make(map[string][][]byte)}
}

// SetFrames configures the frames returned for a specific path.
func (m *DecoderFactory) SetFrames(path string, frames [][]byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byPath[path] = frames
}

func (m *DecoderFactory) Open(cfg ports.DecoderConfig) (ports.FrameDecoder, error) {
	m.mu.Lock()
	m.Opened = append(m.Opened, cfg)
	frames, ok := m.byPath[cfg.Path]
	if !ok {
		frames = m.frames
	}
	m.mu.Unlock()

	if m.OpenFunc != nil {
		return m.OpenFunc(cfg)
	}
	d := NewFrameDecoder(frames)
	m.mu.Lock()
	m.Decoders = append(m.Decoders, d)
	m.mu.Unlock()
	return d, nil
}

var (
	_ ports.FrameDecoder   = (*FrameDecoder)(nil)
	_ ports.DecoderFactory = (*DecoderFactory)(nil)
)
