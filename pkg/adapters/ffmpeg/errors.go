package ffmpeg

import "errors"

var (
	// ErrFFmpegNotFound is returned when no ffmpeg binary can be located.
	ErrFFmpegNotFound = errors.New("ffmpeg: ffmpeg not found")

	// ErrClosed is returned when a finished pipeline or closed decoder is used.
	ErrClosed = errors.New("ffmpeg: pipeline closed")

	// ErrTimeout is returned when ffmpeg does not produce or finish in time.
	ErrTimeout = errors.New("ffmpeg: timed out")
)
