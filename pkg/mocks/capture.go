package mocks

import (
	"sync"

	"github.com/user/camrecord/pkg/ports"
)

// DeviceProber is a mock implementation of ports.DeviceProber.
type DeviceProber struct {
	ProbeFunc func(index int) (ports.ProbeResult, error)
	ListFunc  func() ([]ports.DeviceInfo, error)

	Devices []ports.DeviceInfo
}

func (m *DeviceProber) Probe(index int) (ports.ProbeResult, error) {
	if m.ProbeFunc != nil {
		return m.ProbeFunc(index)
	}
	for _, d := range m.Devices {
		if d.Index == index {
			return ports.ProbeResult{Bayer: d.Bayer, Layout: d.Layout}, nil
		}
	}
	return ports.ProbeResult{}, nil
}

func (m *DeviceProber) List() ([]ports.DeviceInfo, error) {
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return m.Devices, nil
}

// CaptureBackend is a mock implementation of ports.CaptureBackend.
type CaptureBackend struct {
	BackendName string
	OpenFunc    func(req ports.CaptureRequest) (ports.CaptureStream, error)

	mu       sync.Mutex
	Requests []ports.CaptureRequest
}

func (m *CaptureBackend) Name() string {
	if m.BackendName == "" {
		return "mock"
	}
	return m.BackendName
}

func (m *CaptureBackend) Open(req ports.CaptureRequest) (ports.CaptureStream, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()
	if m.OpenFunc != nil {
		return m.OpenFunc(req)
	}
	return NewCaptureStream(req.Width, req.Height), nil
}

// CaptureStream is a mock implementation of ports.CaptureStream.
type CaptureStream struct {
	StartFunc func() error
	ReadFunc  func() ([]byte, error)
	StopFunc  func() error

	size ports.Dimension

	mu      sync.Mutex
	stopped bool
}

// NewCaptureStream creates a stream that yields zeroed frames.
func NewCaptureStream(width, height int) *CaptureStream {
	return &CaptureStream{size: ports.Dimension{Width: width, Height: height}}
}

func (m *CaptureStream) Start() error {
	if m.StartFunc != nil {
		return m.StartFunc()
	}
	return nil
}

func (m *CaptureStream) Read() ([]byte, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc()
	}
	return make([]byte, m.size.FrameBytes()), nil
}

func (m *CaptureStream) Stop() error {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()
	if m.StopFunc != nil {
		return m.StopFunc()
	}
	return nil
}

func (m *CaptureStream) Size() ports.Dimension { return m.size }

// Stopped reports whether Stop was called.
func (m *CaptureStream) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

// MediaProber is a mock implementation of ports.MediaProber.
type MediaProber struct {
	ProbeFunc func(path string) (ports.MediaInfo, error)
	Info      ports.MediaInfo
}

func (m *MediaProber) Probe(path string) (ports.MediaInfo, error) {
	if m.ProbeFunc != nil {
		return m.ProbeFunc(path)
	}
	return m.Info, nil
}

var (
	_ ports.DeviceProber   = (*DeviceProber)(nil)
	_ ports.CaptureBackend = (*CaptureBackend)(nil)
	_ ports.CaptureStream  = (*CaptureStream)(nil)
	_ ports.MediaProber    = (*MediaProber)(nil)
)
