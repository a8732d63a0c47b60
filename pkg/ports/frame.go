package ports

import "fmt"

// BytesPerPixel is the size of one interleaved RGB pixel.
const BytesPerPixel = 3

// Dimension is a frame size in pixels.
type Dimension struct {
	Width  int
	Height int
}

// FrameBytes returns the exact byte length of one raw RGB frame.
func (d Dimension) FrameBytes() int {
	return d.Width * d.Height * BytesPerPixel
}

// String returns "WxH".
func (d Dimension) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// FrameSource abstracts anything that produces raw RGB frames.
// Every frame returned by NextFrame is exactly Size().FrameBytes() long,
// row-major, top-left origin, no padding.
type FrameSource interface {
	// Start begins streaming. Calling NextFrame before Start is undefined.
	Start() error

	// NextFrame returns the next frame. An error never comes with partial data.
	NextFrame() ([]byte, error)

	// Stop ends streaming and releases the underlying resources.
	Stop() error

	// Size returns the fixed frame dimensions.
	Size() Dimension
}

// ValidateFrame checks that data holds exactly one frame of the given size.
func ValidateFrame(data []byte, size Dimension) error {
	if len(data) != size.FrameBytes() {
		return fmt.Errorf("%w: got %d bytes, want %d for %s", ErrFrame, len(data), size.FrameBytes(), size)
	}
	return nil
}
