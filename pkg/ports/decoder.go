package ports

import "time"

// DecoderConfig describes a file to decode into raw RGB frames.
type DecoderConfig struct {
	Path   string
	Width  int
	Height int
}

// FrameDecoder pulls decoded frames from a file one at a time.
type FrameDecoder interface {
	// Next returns the next frame, io.EOF at end of stream, or an error
	// when no frame arrives within timeout.
	Next(timeout time.Duration) ([]byte, error)

	// Rewind repositions the decoder at the first frame.
	Rewind() error

	// Close releases decoder resources.
	Close() error

	// Backend returns the name of the implementation in use.
	Backend() string
}

// DecoderFactory opens frame decoders.
type DecoderFactory interface {
	Open(cfg DecoderConfig) (FrameDecoder, error)
}

// MediaInfo holds container-level facts about a recording.
type MediaInfo struct {
	Codec      string
	Width      int
	Height     int
	FrameCount int
	Duration   time.Duration
	FPS        float64
}

// MediaProber reads container metadata without decoding.
type MediaProber interface {
	Probe(path string) (MediaInfo, error)
}
