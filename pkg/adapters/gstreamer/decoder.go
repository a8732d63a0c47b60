package gstreamer

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"
	"github.com/user/camrecord/pkg/ports"
)

// DecoderFactory opens filesrc ! decodebin pipelines.
type DecoderFactory struct{}

// NewDecoderFactory creates a new DecoderFactory.
func NewDecoderFactory() *DecoderFactory {
	return &DecoderFactory{}
}

// DecodeQueue is the number of decoded frames buffered ahead of the reader.
const DecodeQueue = 4

// IsDecoderAvailable reports whether the decode path is installed.
func IsDecoderAvailable() bool {
	return HasElements("filesrc", "decodebin", "videoconvert", "videoscale", "appsink")
}

// DecodePipeline returns the launch description for a recording.
// videoscale forces the decoded frames to the requested size. The appsink
// holds at most DecodeQueue frames and blocks decodebin until the reader
// catches up.
func DecodePipeline(cfg ports.DecoderConfig) string {
	return fmt.Sprintf(
		"filesrc location=%q ! decodebin ! videoconvert ! videoscale ! "+
			"video/x-raw,format=RGB,width=%d,height=%d ! "+
			"appsink name=sink sync=false max-buffers=%d drop=false",
		cfg.Path, cfg.Width, cfg.Height, DecodeQueue)
}

// Open builds and starts the decode pipeline.
func (f *DecoderFactory) Open(cfg ports.DecoderConfig) (ports.FrameDecoder, error) {
	if err := requireElements("filesrc", "decodebin", "videoconvert", "videoscale", "appsink"); err != nil {
		return nil, err
	}
	pipeline, elem, err := launch(DecodePipeline(cfg), "sink")
	if err != nil {
		return nil, err
	}
	if err := pipeline.SetState(gst.StatePlaying); err != nil {
		pipeline.SetState(gst.StateNull)
		return nil, fmt.Errorf("gstreamer: start decoder: %w", err)
	}
	return &Decoder{
		pipeline: pipeline,
		sink:     app.SinkFromElement(elem),
		size:     ports.Dimension{Width: cfg.Width, Height: cfg.Height},
	}, nil
}

// Decoder pulls decoded frames from an appsink.
type Decoder struct {
	mu       sync.Mutex
	pipeline *gst.Pipeline
	sink     *app.Sink
	size     ports.Dimension
	closed   bool
}

// Next pulls one frame, mapping end-of-stream to io.EOF.
func (d *Decoder) Next(timeout time.Duration) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrClosed
	}

	frame, err := pullFrame(d.sink, timeout, d.size.Width, d.size.Height)
	switch {
	case err == nil:
		return frame, nil
	case errors.Is(err, ErrEOS):
		return nil, io.EOF
	default:
		if berr := busError(d.pipeline); berr != nil {
			return nil, berr
		}
		return nil, err
	}
}

// Rewind performs a flushing seek to the first key frame.
func (d *Decoder) Rewind() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if !d.pipeline.SeekSimple(0, gst.FormatTime, gst.SeekFlagFlush|gst.SeekFlagKeyUnit) {
		return fmt.Errorf("gstreamer: seek to start failed")
	}
	return nil
}

// Close tears the pipeline down.
func (d *Decoder) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	return d.pipeline.SetState(gst.StateNull)
}

// Backend returns "gstreamer".
func (d *Decoder) Backend() string { return BackendName }

var (
	_ ports.DecoderFactory = (*DecoderFactory)(nil)
	_ ports.FrameDecoder   = (*Decoder)(nil)
)
