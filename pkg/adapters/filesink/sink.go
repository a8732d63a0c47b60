// Package filesink provides a file-based snapshot sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"
	"sync"

	"github.com/user/camrecord/pkg/ports"
)

// DefaultQuality is the JPEG quality of snapshots.
const DefaultQuality = 85

// Sink saves preview snapshots to files.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
	format   ports.ImageFormat
	quality  int

	once   sync.Once
	dirErr error
}

// New creates a new FileSink writing images in the given format.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer, format ports.ImageFormat) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
		format:   format,
		quality:  DefaultQuality,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// Dir returns the snapshot directory.
func (s *Sink) Dir() string {
	return s.baseDir
}

// SaveSnapshot encodes img and writes it as <baseDir>/<name><ext>.
// The directory is created on first use.
func (s *Sink) SaveSnapshot(name string, img image.Image) error {
	s.once.Do(func() {
		s.dirErr = s.fs.MkdirAll(s.baseDir)
	})
	if s.dirErr != nil {
		return fmt.Errorf("%w: snapshot dir %s: %w", ports.ErrWrite, s.baseDir, s.dirErr)
	}

	data, err := s.renderer.EncodeImage(img, s.format, s.quality)
	if err != nil {
		return fmt.Errorf("%w: encode snapshot %s: %w", ports.ErrWrite, name, err)
	}
	path := filepath.Join(s.baseDir, name+s.format.Extension())
	if err := s.fs.WriteFile(path, data); err != nil {
		return fmt.Errorf("%w: %s: %w", ports.ErrWrite, path, err)
	}
	return nil
}

// Ensure Sink implements ports.SnapshotSink
var _ ports.SnapshotSink = (*Sink)(nil)
