package ports

import "time"

// EncoderConfig describes one output file.
type EncoderConfig struct {
	Path   string
	Width  int
	Height int
	FPS    int
	// Preset is the x264 speed preset.
	Preset string
	// Bitrate in kbps; zero leaves the encoder default.
	Bitrate int
}

// EncodePipeline accepts raw RGB frames and produces a video file.
type EncodePipeline interface {
	// Push submits one frame with its presentation timestamp.
	// It blocks when the pipeline applies back-pressure.
	Push(frame []byte, pts time.Duration) error

	// Finish signals end-of-stream and waits up to timeout for the
	// file to be completed, then releases the pipeline.
	Finish(timeout time.Duration) error

	// Backend returns the name of the implementation in use.
	Backend() string
}

// EncoderFactory creates encode pipelines.
type EncoderFactory interface {
	NewPipeline(cfg EncoderConfig) (EncodePipeline, error)
}
