package gstreamer

import (
	"fmt"
	"sync"
	"time"

	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"
	"github.com/user/camrecord/pkg/ports"
)

// BayerBackendName identifies the raw-sensor capture path.
const BayerBackendName = "gstreamer-bayer"

// DefaultPullTimeout bounds one appsink pull during capture.
const DefaultPullTimeout = 2 * time.Second

// BayerCapture opens raw Bayer sensors through v4l2src and bayer2rgb.
type BayerCapture struct {
	// PullTimeout bounds each frame pull. Zero means DefaultPullTimeout.
	PullTimeout time.Duration
}

// NewBayerCapture creates a new BayerCapture.
func NewBayerCapture() *BayerCapture {
	return &BayerCapture{}
}

// Name returns the backend name.
func (b *BayerCapture) Name() string { return BayerBackendName }

// BayerPipeline returns the launch description for a raw sensor.
// appsink keeps only the newest buffer, so a slow reader always gets the
// latest frame rather than a backlog.
func BayerPipeline(req ports.CaptureRequest) string {
	layout := req.Layout
	if layout == "" {
		layout = ports.BayerRGGB
	}
	fps := req.FPS
	if fps <= 0 {
		fps = 30
	}
	return fmt.Sprintf(
		"v4l2src device=/dev/video%d ! "+
			"video/x-bayer,format=%s,width=%d,height=%d,framerate=%d/1 ! "+
			"bayer2rgb ! videoconvert ! video/x-raw,format=RGB ! "+
			"appsink name=sink emit-signals=false sync=false max-buffers=1 drop=true",
		req.Index, layout, req.Width, req.Height, fps)
}

// Open builds the pipeline without starting it.
func (b *BayerCapture) Open(req ports.CaptureRequest) (ports.CaptureStream, error) {
	if err := requireElements("v4l2src", "bayer2rgb", "videoconvert", "appsink"); err != nil {
		return nil, err
	}
	pipeline, elem, err := launch(BayerPipeline(req), "sink")
	if err != nil {
		return nil, err
	}
	timeout := b.PullTimeout
	if timeout <= 0 {
		timeout = DefaultPullTimeout
	}
	return &bayerStream{
		pipeline: pipeline,
		sink:     app.SinkFromElement(elem),
		size:     ports.Dimension{Width: req.Width, Height: req.Height},
		timeout:  timeout,
	}, nil
}

type bayerStream struct {
	mu       sync.Mutex
	pipeline *gst.Pipeline
	sink     *app.Sink
	size     ports.Dimension
	timeout  time.Duration
	stopped  bool
}

func (s *bayerStream) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return ErrClosed
	}
	if err := s.pipeline.SetState(gst.StatePlaying); err != nil {
		return fmt.Errorf("gstreamer: start capture: %w", err)
	}
	return busError(s.pipeline)
}

func (s *bayerStream) Read() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil, ErrClosed
	}
	frame, err := pullFrame(s.sink, s.timeout, s.size.Width, s.size.Height)
	if err != nil {
		if berr := busError(s.pipeline); berr != nil {
			return nil, berr
		}
		return nil, err
	}
	return frame, nil
}

func (s *bayerStream) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil
	}
	s.stopped = true
	return s.pipeline.SetState(gst.StateNull)
}

func (s *bayerStream) Size() ports.Dimension { return s.size }

var _ ports.CaptureBackend = (*BayerCapture)(nil)
