package mocks

import (
	"errors"
	"sync"

	"github.com/user/camrecord/pkg/ports"
)

// FrameSource is a mock implementation of ports.FrameSource.
// By default every NextFrame returns a frame filled with the call number.
type FrameSource struct {
	StartFunc     func() error
	NextFrameFunc func(call int) ([]byte, error)
	StopFunc      func() error

	size ports.Dimension

	mu      sync.Mutex
	started bool
	stopped bool
	calls   int
}

// NewFrameSource creates a source of the given size.
func NewFrameSource(width, height int) *FrameSource {
	return &FrameSource{size: ports.Dimension{Width: width, Height: height}}
}

func (m *FrameSource) Start() error {
	m.mu.Lock()
	m.started = true
	m.mu.Unlock()
	if m.StartFunc != nil {
		return m.StartFunc()
	}
	return nil
}

func (m *FrameSource) NextFrame() ([]byte, error) {
	m.mu.Lock()
	m.calls++
	call := m.calls
	stopped := m.stopped
	m.mu.Unlock()

	if m.NextFrameFunc != nil {
		return m.NextFrameFunc(call)
	}
	if stopped {
		return nil, errors.New("mock source stopped")
	}
	frame := make([]byte, m.size.FrameBytes())
	for i := range frame {
		frame[i] = byte(call)
	}
	return frame, nil
}

func (m *FrameSource) Stop() error {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()
	if m.StopFunc != nil {
		return m.StopFunc()
	}
	return nil
}

func (m *FrameSource) Size() ports.Dimension { return m.size }

// Started reports whether Start was called.
func (m *FrameSource) Started() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started
}

// Stopped reports whether Stop was called.
func (m *FrameSource) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

// Calls returns how many times NextFrame was called.
func (m *FrameSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var _ ports.FrameSource = (*FrameSource)(nil)
