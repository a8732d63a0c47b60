// Package mediacam captures standard (non-Bayer) cameras through
// pion/mediadevices.
package mediacam

import (
	"errors"
	"fmt"
	"image"
	"regexp"
	"strconv"
	"sync"

	"github.com/pion/mediadevices"
	_ "github.com/pion/mediadevices/pkg/driver/camera"
	"github.com/pion/mediadevices/pkg/io/video"
	"github.com/pion/mediadevices/pkg/prop"
	"github.com/user/camrecord/pkg/ports"
)

// BackendName identifies the standard capture path.
const BackendName = "mediadevices"

// ErrNoVideoTrack is returned when the driver opened but produced no track.
var ErrNoVideoTrack = errors.New("mediacam: no video track")

var videoIndexRe = regexp.MustCompile(`video(\d+)`)

// Backend implements ports.CaptureBackend.
type Backend struct{}

// New creates a new Backend.
func New() *Backend {
	return &Backend{}
}

// Name returns the backend name.
func (b *Backend) Name() string { return BackendName }

// ListDevices returns the video inputs known to mediadevices.
// Devices whose label carries a videoN node keep that index; the others
// are numbered by position.
func ListDevices() []ports.DeviceInfo {
	var out []ports.DeviceInfo
	for i, d := range videoInputs() {
		index := i
		if n, ok := labelIndex(d.Label); ok {
			index = n
		}
		out = append(out, ports.DeviceInfo{Index: index, Name: d.Label, Path: d.DeviceID})
	}
	return out
}

func videoInputs() []mediadevices.MediaDeviceInfo {
	var inputs []mediadevices.MediaDeviceInfo
	for _, d := range mediadevices.EnumerateDevices() {
		if d.Kind == mediadevices.VideoInput {
			inputs = append(inputs, d)
		}
	}
	return inputs
}

func labelIndex(label string) (int, bool) {
	m := videoIndexRe.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	return n, err == nil
}

// deviceID maps a numeric index to a mediadevices device id.
func deviceID(index int) (string, error) {
	inputs := videoInputs()
	for _, d := range inputs {
		if n, ok := labelIndex(d.Label); ok && n == index {
			return d.DeviceID, nil
		}
	}
	if index >= 0 && index < len(inputs) {
		return inputs[index].DeviceID, nil
	}
	return "", fmt.Errorf("%w: camera %d (%d video inputs)", ports.ErrNotFound, index, len(inputs))
}

// constraints returns the negotiation policy for a strategy. Without a
// strategy the requested size is only a preference, so the driver may
// still pick another mode and ToRGB scales.
func constraints(id string, req ports.CaptureRequest) func(*mediadevices.MediaTrackConstraints) {
	return func(c *mediadevices.MediaTrackConstraints) {
		c.DeviceID = prop.String(id)
		switch req.Strategy {
		case ports.StrategyNone:
			if req.Width > 0 && req.Height > 0 {
				c.Width = prop.Int(req.Width)
				c.Height = prop.Int(req.Height)
			}
		case ports.StrategyHighestFrameRate:
			c.FrameRate = prop.Float(120)
		case ports.StrategyHighestResolution:
			c.Width = prop.Int(3840)
			c.Height = prop.Int(2160)
		}
	}
}

// Open negotiates a stream with the requested strategy.
func (b *Backend) Open(req ports.CaptureRequest) (ports.CaptureStream, error) {
	id, err := deviceID(req.Index)
	if err != nil {
		return nil, err
	}

	stream, err := mediadevices.GetUserMedia(mediadevices.MediaStreamConstraints{
		Video: constraints(id, req),
	})
	if err != nil {
		return nil, fmt.Errorf("mediacam: %s: %w", req.Strategy, err)
	}
	tracks := stream.GetVideoTracks()
	if len(tracks) == 0 {
		return nil, ErrNoVideoTrack
	}
	track, ok := tracks[0].(*mediadevices.VideoTrack)
	if !ok {
		tracks[0].Close()
		return nil, ErrNoVideoTrack
	}

	return &Stream{
		track: track,
		size:  ports.Dimension{Width: req.Width, Height: req.Height},
	}, nil
}

// Stream reads images from a video track and converts them to RGB.
type Stream struct {
	mu      sync.Mutex
	track   *mediadevices.VideoTrack
	reader  video.Reader
	size    ports.Dimension
	native  image.Point
	stopped bool
}

// Start creates the frame reader. The device is already streaming once
// GetUserMedia returned.
func (s *Stream) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return errors.New("mediacam: stream stopped")
	}
	if s.reader == nil {
		s.reader = s.track.NewReader(false)
	}
	return nil
}

// Read returns the next frame as packed RGB at the requested size.
func (s *Stream) Read() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.reader == nil {
		return nil, errors.New("mediacam: stream not started")
	}

	img, release, err := s.reader.Read()
	if err != nil {
		return nil, fmt.Errorf("mediacam: read: %w", err)
	}
	defer release()

	s.native = img.Bounds().Size()
	return ToRGB(img, s.size.Width, s.size.Height), nil
}

// NativeSize returns the size of the last image delivered by the driver.
func (s *Stream) NativeSize() image.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.native
}

// Stop closes the track.
func (s *Stream) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil
	}
	s.stopped = true
	return s.track.Close()
}

// Size returns the output frame size.
func (s *Stream) Size() ports.Dimension { return s.size }

var (
	_ ports.CaptureBackend = (*Backend)(nil)
	_ ports.CaptureStream  = (*Stream)(nil)
)
