package mocks

import (
	"sync"
	"time"

	"github.com/user/camrecord/pkg/ports"
)

// EncodePipeline is a mock implementation of ports.EncodePipeline.
// It is safe for use from the recording goroutine while a test inspects it.
type EncodePipeline struct {
	PushFunc   func(frame []byte, pts time.Duration) error
	FinishFunc func(timeout time.Duration) error

	mu            sync.Mutex
	pushes        []PushCall
	finishCalled  bool
	finishTimeout time.Duration
}

// PushCall records a call to Push.
type PushCall struct {
	Frame []byte
	PTS   time.Duration
}

func (m *EncodePipeline) Push(frame []byte, pts time.Duration) error {
	m.mu.Lock()
	m.pushes = append(m.pushes, PushCall{Frame: append([]byte(nil), frame...), PTS: pts})
	m.mu.Unlock()
	if m.PushFunc != nil {
		return m.PushFunc(frame, pts)
	}
	return nil
}

func (m *EncodePipeline) Finish(timeout time.Duration) error {
	m.mu.Lock()
	m.finishCalled = true
	m.finishTimeout = timeout
	m.mu.Unlock()
	if m.FinishFunc != nil {
		return m.FinishFunc(timeout)
	}
	return nil
}

func (m *EncodePipeline) Backend() string { return "mock" }

// Pushes returns the recorded Push calls.
func (m *EncodePipeline) Pushes() []PushCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PushCall(nil), m.pushes...)
}

// Finished reports whether Finish was called and with which timeout.
func (m *EncodePipeline) Finished() (bool, time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finishCalled, m.finishTimeout
}

// EncoderFactory is a mock implementation of ports.EncoderFactory.
type EncoderFactory struct {
	NewPipelineFunc func(cfg ports.EncoderConfig) (ports.EncodePipeline, error)

	mu        sync.Mutex
	Configs   []ports.EncoderConfig
	Pipelines []*EncodePipeline
}

// NewEncoderFactory creates a factory handing out fresh EncodePipeline mocks.
func NewEncoderFactory() *EncoderFactory {
	return &EncoderFactory{}
}

func (m *EncoderFactory) NewPipeline(cfg ports.EncoderConfig) (ports.EncodePipeline, error) {
	m.mu.Lock()
	m.Configs = append(m.Configs, cfg)
	m.mu.Unlock()
	if m.NewPipelineFunc != nil {
		return m.NewPipelineFunc(cfg)
	}
	p := &EncodePipeline{}
	m.mu.Lock()
	m.Pipelines = append(m.Pipelines, p)
	m.mu.Unlock()
	return p, nil
}

// PipelineFor returns the pipeline created for the output path, or nil.
func (m *EncoderFactory) PipelineFor(path string) *EncodePipeline {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, cfg := range m.Configs {
		if cfg.Path == path && i < len(m.Pipelines) {
			return m.Pipelines[i]
		}
	}
	return nil
}

// AllPipelines returns a snapshot of the created pipelines.
func (m *EncoderFactory) AllPipelines() []*EncodePipeline {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*EncodePipeline(nil), m.Pipelines...)
}

var (
	_ ports.EncodePipeline = (*EncodePipeline)(nil)
	_ ports.EncoderFactory = (*EncoderFactory)(nil)
)
