package orchestrator

import (
	"github.com/user/camrecord/pkg/camera"
	"github.com/user/camrecord/pkg/playback"
	"github.com/user/camrecord/pkg/ports"
	"github.com/user/camrecord/pkg/virtualcam"
)

// SourceFactory opens the frame sources of a session.
type SourceFactory interface {
	Device(index int, size ports.Dimension, fps int) (ports.FrameSource, error)
	Synthetic(id int, size ports.Dimension, fps int) (ports.FrameSource, error)
	Playback(dir string) (left, right ports.FrameSource, err error)
}

// Sources opens cameras, generators and recordings with fixed options.
type Sources struct {
	CameraOptions   camera.Options
	PlaybackOptions playback.Options
}

// Device opens a physical camera.
func (s *Sources) Device(index int, size ports.Dimension, fps int) (ports.FrameSource, error) {
	opts := s.CameraOptions
	opts.Width = size.Width
	opts.Height = size.Height
	opts.FPS = fps
	return camera.Open(index, opts)
}

// Synthetic creates a pattern generator.
func (s *Sources) Synthetic(id int, size ports.Dimension, fps int) (ports.FrameSource, error) {
	return virtualcam.New(id, size.Width, size.Height, fps)
}

// Playback opens the stereo pair stored in dir. Stopping a side closes
// its decoder.
func (s *Sources) Playback(dir string) (ports.FrameSource, ports.FrameSource, error) {
	stereo, err := playback.LoadFromDirectory(dir, s.PlaybackOptions)
	if err != nil {
		return nil, nil, err
	}
	return stereo.Source(playback.Left), stereo.Source(playback.Right), nil
}

var _ SourceFactory = (*Sources)(nil)
