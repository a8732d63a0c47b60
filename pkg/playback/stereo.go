package playback

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/user/camrecord/pkg/ports"
)

// Side names one half of a stereo pair.
type Side string

const (
	Left  Side = "left"
	Right Side = "right"
)

// Stereo replays two recordings as left and right cameras. Both sides
// loop and advance independently.
type Stereo struct {
	opts Options

	mu    sync.Mutex
	left  *Source
	right *Source
}

// NewStereo creates an empty system. Load sides with SetLeft and SetRight.
func NewStereo(opts Options) *Stereo {
	return &Stereo{opts: opts.withDefaults()}
}

// LoadFromDirectory opens the first two recordings in dir as left and
// right. A single recording backs both sides. The error wraps
// ports.ErrOpen when dir is missing or holds no recordings.
func LoadFromDirectory(dir string, opts Options) (*Stereo, error) {
	s := NewStereo(opts)
	fs := s.opts.FS

	exists, err := fs.Exists(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ports.ErrOpen, dir, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: directory not found: %s", ports.ErrOpen, dir)
	}
	names, err := ListRecordings(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ports.ErrOpen, dir, err)
	}

	log := s.opts.Logger.WithComponent("stereo")
	var leftPath, rightPath string
	switch {
	case len(names) >= 2:
		leftPath = filepath.Join(dir, names[0])
		rightPath = filepath.Join(dir, names[1])
	case len(names) == 1:
		leftPath = filepath.Join(dir, names[0])
		rightPath = leftPath
		log.Info("Only one recording found, using it for both cameras")
	default:
		return nil, fmt.Errorf("%w: no recordings in %s", ports.ErrOpen, dir)
	}

	if err := s.SetLeft(leftPath); err != nil {
		return nil, err
	}
	if err := s.SetRight(rightPath); err != nil {
		s.Close()
		return nil, err
	}
	log.Info("Left camera: %s", leftPath)
	log.Info("Right camera: %s", rightPath)
	return s, nil
}

// SetLeft replaces the left source.
func (s *Stereo) SetLeft(path string) error {
	return s.set(Left, path)
}

// SetRight replaces the right source.
func (s *Stereo) SetRight(path string) error {
	return s.set(Right, path)
}

func (s *Stereo) set(side Side, path string) error {
	src, err := Open(path, true, s.opts)
	if err != nil {
		return err
	}
	s.mu.Lock()
	var old *Source
	if side == Left {
		old, s.left = s.left, src
	} else {
		old, s.right = s.right, src
	}
	s.mu.Unlock()
	if old != nil {
		old.Stop()
	}
	return nil
}

// Source returns the source for side, or nil when not loaded.
func (s *Stereo) Source(side Side) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	if side == Left {
		return s.left
	}
	return s.right
}

// LeftFrame returns the next left frame.
func (s *Stereo) LeftFrame() ([]byte, error) {
	return s.frame(Left)
}

// RightFrame returns the next right frame.
func (s *Stereo) RightFrame() ([]byte, error) {
	return s.frame(Right)
}

func (s *Stereo) frame(side Side) ([]byte, error) {
	src := s.Source(side)
	if src == nil {
		return nil, fmt.Errorf("%w: %s camera not loaded", ports.ErrOpen, side)
	}
	return src.NextFrame()
}

// BothFrames returns the next frame from each side.
func (s *Stereo) BothFrames() ([]byte, []byte, error) {
	left, err := s.LeftFrame()
	if err != nil {
		return nil, nil, err
	}
	right, err := s.RightFrame()
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// Reset rewinds both sides.
func (s *Stereo) Reset() error {
	for _, side := range []Side{Left, Right} {
		if src := s.Source(side); src != nil {
			if err := src.Reset(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Status reports the file and position of each side, one line per side.
func (s *Stereo) Status() string {
	return s.status(Left) + "\n" + s.status(Right)
}

func (s *Stereo) status(side Side) string {
	src := s.Source(side)
	if src == nil {
		return fmt.Sprintf("%s: not loaded", side)
	}
	return fmt.Sprintf("%s: %s (%d/%d)", side, filepath.Base(src.Path()), src.CurrentFrame(), src.FrameCount())
}

// Close stops both sides.
func (s *Stereo) Close() error {
	s.mu.Lock()
	left, right := s.left, s.right
	s.left, s.right = nil, nil
	s.mu.Unlock()

	var firstErr error
	for _, src := range []*Source{left, right} {
		if src == nil {
			continue
		}
		if err := src.Stop(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
