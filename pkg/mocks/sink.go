package mocks

import (
	"image"
	"sync"

	"github.com/user/camrecord/pkg/ports"
)

// SnapshotSink is a mock implementation of ports.SnapshotSink.
type SnapshotSink struct {
	SaveSnapshotFunc func(name string, img image.Image) error

	mu        sync.Mutex
	enabled   bool
	snapshots map[string]image.Image
	order     []string
}

// NewSnapshotSink creates a new mock SnapshotSink.
func NewSnapshotSink(enabled bool) *SnapshotSink {
	return &SnapshotSink{enabled: enabled, snapshots: make(map[string]image.Image)}
}

func (m *SnapshotSink) Enabled() bool {
	return m.enabled
}

func (m *SnapshotSink) SaveSnapshot(name string, img image.Image) error {
	if m.SaveSnapshotFunc != nil {
		return m.SaveSnapshotFunc(name, img)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[name] = img
	m.order = append(m.order, name)
	return nil
}

// Names returns the saved snapshot names in order.
func (m *SnapshotSink) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}

// Snapshot returns a saved image by name.
func (m *SnapshotSink) Snapshot(name string) (image.Image, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.snapshots[name]
	return img, ok
}

var _ ports.SnapshotSink = (*SnapshotSink)(nil)
