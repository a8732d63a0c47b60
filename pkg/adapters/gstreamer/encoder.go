package gstreamer

import (
	"fmt"
	"sync"
	"time"

	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"
	"github.com/user/camrecord/pkg/ports"
)

// BackendName identifies the GStreamer encode and decode paths.
const BackendName = "gstreamer"

// EncoderFactory builds appsrc ! x264enc ! mp4mux pipelines.
type EncoderFactory struct{}

// NewEncoderFactory creates a new EncoderFactory.
func NewEncoderFactory() *EncoderFactory {
	return &EncoderFactory{}
}

// IsEncoderAvailable reports whether the x264 encode path is installed.
func IsEncoderAvailable() bool {
	return HasElements("appsrc", "videoconvert", "x264enc", "mp4mux", "filesink")
}

// EncodePipeline returns the launch description for one output file.
func EncodePipeline(cfg ports.EncoderConfig) string {
	preset := cfg.Preset
	if preset == "" {
		preset = "fast"
	}
	enc := fmt.Sprintf("x264enc speed-preset=%s tune=zerolatency", preset)
	if cfg.Bitrate > 0 {
		enc += fmt.Sprintf(" bitrate=%d", cfg.Bitrate)
	}
	return fmt.Sprintf("appsrc name=src ! videoconvert ! %s ! mp4mux ! filesink location=%q", enc, cfg.Path)
}

// NewPipeline creates and starts an encode pipeline writing cfg.Path.
func (f *EncoderFactory) NewPipeline(cfg ports.EncoderConfig) (ports.EncodePipeline, error) {
	if err := requireElements("appsrc", "videoconvert", "x264enc", "mp4mux", "filesink"); err != nil {
		return nil, err
	}
	pipeline, elem, err := launch(EncodePipeline(cfg), "src")
	if err != nil {
		return nil, err
	}

	src := app.SrcFromElement(elem)
	caps := gst.NewCapsFromString(fmt.Sprintf(
		"video/x-raw,format=RGB,width=%d,height=%d,framerate=%d/1",
		cfg.Width, cfg.Height, cfg.FPS))
	src.SetCaps(caps)
	// block=true turns a full queue into back-pressure on Push instead of drops
	for prop, value := range map[string]interface{}{
		"format":  gst.FormatTime,
		"block":   true,
		"is-live": false,
	} {
		if err := src.SetProperty(prop, value); err != nil {
			pipeline.SetState(gst.StateNull)
			return nil, fmt.Errorf("gstreamer: appsrc %s: %w", prop, err)
		}
	}

	if err := pipeline.SetState(gst.StatePlaying); err != nil {
		pipeline.SetState(gst.StateNull)
		return nil, fmt.Errorf("gstreamer: start encoder: %w", err)
	}

	frameDur := time.Second
	if cfg.FPS > 0 {
		frameDur = time.Second / time.Duration(cfg.FPS)
	}
	return &Pipeline{
		pipeline:  pipeline,
		src:       src,
		frameSize: cfg.Width * cfg.Height * ports.BytesPerPixel,
		frameDur:  frameDur,
	}, nil
}

// Pipeline is a running appsrc encode pipeline.
type Pipeline struct {
	mu        sync.Mutex
	pipeline  *gst.Pipeline
	src       *app.Source
	frameSize int
	frameDur  time.Duration
	closed    bool
}

// Push copies frame into a GStreamer buffer stamped with pts.
func (p *Pipeline) Push(frame []byte, pts time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if len(frame) != p.frameSize {
		return fmt.Errorf("gstreamer: frame is %d bytes, want %d", len(frame), p.frameSize)
	}

	buf := gst.NewBufferFromBytes(frame)
	buf.SetPresentationTimestamp(pts)
	buf.SetDuration(p.frameDur)
	if ret := p.src.PushBuffer(buf); ret != gst.FlowOK {
		if err := busError(p.pipeline); err != nil {
			return err
		}
		return fmt.Errorf("gstreamer: push buffer: %v", ret)
	}
	return nil
}

// Finish sends end-of-stream, waits for mp4mux to write the index and
// tears the pipeline down. The pipeline is released even on timeout.
func (p *Pipeline) Finish(timeout time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	p.closed = true

	var waitErr error
	if ret := p.src.EndStream(); ret != gst.FlowOK {
		waitErr = fmt.Errorf("gstreamer: end stream: %v", ret)
	} else {
		waitErr = waitBus(p.pipeline, timeout)
	}
	if err := p.pipeline.SetState(gst.StateNull); err != nil && waitErr == nil {
		waitErr = fmt.Errorf("gstreamer: stop encoder: %w", err)
	}
	return waitErr
}

// Backend returns "gstreamer".
func (p *Pipeline) Backend() string { return BackendName }

var (
	_ ports.EncoderFactory = (*EncoderFactory)(nil)
	_ ports.EncodePipeline = (*Pipeline)(nil)
)
