// Package recorder encodes a stream of raw frames into a video file and
// writes a metadata sidecar next to it.
package recorder

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/user/camrecord/pkg/adapters/logger"
	"github.com/user/camrecord/pkg/adapters/osfilesystem"
	"github.com/user/camrecord/pkg/ports"
)

// DefaultFinishTimeout bounds the wait for the encoder at Finalize.
const DefaultFinishTimeout = 5 * time.Second

// TimestampLayout formats the creation time in file names.
const TimestampLayout = "20060102_150405"

var (
	// ErrPipeline is returned when the encode pipeline cannot be created.
	ErrPipeline = errors.New("recorder: pipeline could not be created")
	// ErrFinalized is returned by every call after Finalize.
	ErrFinalized = errors.New("recorder: already finalized")
)

// Metadata is the sidecar record written at Finalize.
type Metadata struct {
	CameraID     int     `json:"camera_id"`
	Timestamp    string  `json:"timestamp"`
	DurationSecs float64 `json:"duration_secs"`
	FPS          float64 `json:"fps"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	Filename     string  `json:"filename"`
	Frames       int     `json:"frames"`
}

// Options configures a Recorder.
type Options struct {
	// Encoders creates the encode pipeline. Required.
	Encoders ports.EncoderFactory
	// FS creates the output directory and writes the sidecar.
	FS ports.FileSystem
	// Preset and Bitrate are passed to the encoder.
	Preset  string
	Bitrate int
	// FinishTimeout bounds Finalize.
	FinishTimeout time.Duration
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	Logger ports.Logger
}

// Filename returns the recording file name for a camera and creation time.
func Filename(cameraID int, created time.Time) string {
	return fmt.Sprintf("camera_%d__%s.mp4", cameraID, created.Format(TimestampLayout))
}

// SidecarPath returns the metadata path for a recording.
func SidecarPath(videoPath string) string {
	return strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".json"
}

// Recorder writes one camera's frames to a file. After Finalize the
// recorder is spent and every further call returns ErrFinalized.
type Recorder struct {
	cameraID int
	size     ports.Dimension
	fps      int
	path     string
	created  time.Time
	pipeline ports.EncodePipeline
	fs       ports.FileSystem
	timeout  time.Duration
	now      func() time.Time
	logger   ports.Logger

	mu        sync.Mutex
	frames    int
	finalized bool
}

// New creates the output directory and opens an encode pipeline for
// camera_<id>__<timestamp>.mp4 in outputDir. Failures wrap ports.ErrOpen
// and ErrPipeline.
func New(cameraID, width, height, fps int, outputDir string, opts Options) (*Recorder, error) {
	if width <= 0 || height <= 0 || fps <= 0 {
		return nil, fmt.Errorf("%w: %w: invalid format %dx%d@%d", ports.ErrOpen, ErrPipeline, width, height, fps)
	}
	if opts.Encoders == nil {
		return nil, fmt.Errorf("%w: %w: no encoder configured", ports.ErrOpen, ErrPipeline)
	}
	if opts.FS == nil {
		opts.FS = osfilesystem.New()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.FinishTimeout <= 0 {
		opts.FinishTimeout = DefaultFinishTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNoop()
	}

	if err := opts.FS.MkdirAll(outputDir); err != nil {
		return nil, fmt.Errorf("%w: %w: create %s: %w", ports.ErrOpen, ErrPipeline, outputDir, err)
	}

	created := opts.Now()
	path := filepath.Join(outputDir, Filename(cameraID, created))
	pipeline, err := opts.Encoders.NewPipeline(ports.EncoderConfig{
		Path:    path,
		Width:   width,
		Height:  height,
		FPS:     fps,
		Preset:  opts.Preset,
		Bitrate: opts.Bitrate,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %s: %w", ports.ErrOpen, ErrPipeline, path, err)
	}

	log := opts.Logger.WithComponent(fmt.Sprintf("recorder %d", cameraID))
	log.Debug("Recording to %s with %s", path, pipeline.Backend())

	return &Recorder{
		cameraID: cameraID,
		size:     ports.Dimension{Width: width, Height: height},
		fps:      fps,
		path:     path,
		created:  created,
		pipeline: pipeline,
		fs:       opts.FS,
		timeout:  opts.FinishTimeout,
		now:      opts.Now,
		logger:   log,
	}, nil
}

// WriteFrame submits one frame. Frames shorter than width*height*3 are
// rejected with ports.ErrWrite; longer ones are cut to size. The call
// blocks while the encoder applies back-pressure.
func (r *Recorder) WriteFrame(raw []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finalized {
		return fmt.Errorf("%w: %w", ports.ErrWrite, ErrFinalized)
	}
	need := r.size.FrameBytes()
	if len(raw) < need {
		return fmt.Errorf("%w: frame too small: %d < %d", ports.ErrWrite, len(raw), need)
	}

	buf := make([]byte, need)
	copy(buf, raw[:need])
	pts := time.Duration(r.frames) * time.Second / time.Duration(r.fps)
	if err := r.pipeline.Push(buf, pts); err != nil {
		return fmt.Errorf("%w: frame %d: %w", ports.ErrWrite, r.frames, err)
	}
	r.frames++
	return nil
}

// Finalize ends the stream, waits for the encoder and writes the sidecar.
// Failures wrap ports.ErrFinalize.
func (r *Recorder) Finalize() (Metadata, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finalized {
		return Metadata{}, fmt.Errorf("%w: %w", ports.ErrFinalize, ErrFinalized)
	}
	r.finalized = true

	elapsed := r.now().Sub(r.created)
	if err := r.pipeline.Finish(r.timeout); err != nil {
		return Metadata{}, fmt.Errorf("%w: %s: %w", ports.ErrFinalize, r.path, err)
	}

	meta := Metadata{
		CameraID:     r.cameraID,
		Timestamp:    r.created.Format(time.RFC3339),
		DurationSecs: elapsed.Seconds(),
		FPS:          float64(r.fps),
		Width:        r.size.Width,
		Height:       r.size.Height,
		Filename:     filepath.Base(r.path),
		Frames:       r.frames,
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: metadata: %w", ports.ErrFinalize, err)
	}
	if err := r.fs.WriteFile(SidecarPath(r.path), data); err != nil {
		return Metadata{}, fmt.Errorf("%w: metadata: %w", ports.ErrFinalize, err)
	}

	r.logger.Info("Recording saved: %s (%d frames, %.2fs)", r.path, r.frames, meta.DurationSecs)
	return meta, nil
}

// Path returns the output file path.
func (r *Recorder) Path() string { return r.path }

// CameraID returns the source identifier.
func (r *Recorder) CameraID() int { return r.cameraID }

// Frames returns how many frames were written.
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Backend returns the encoder backend in use.
func (r *Recorder) Backend() string { return r.pipeline.Backend() }

// ReadMetadata loads a sidecar written by Finalize.
func ReadMetadata(fs ports.FileSystem, path string) (Metadata, error) {
	var meta Metadata
	data, err := fs.ReadFile(path)
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("%s: %w", path, err)
	}
	return meta, nil
}
