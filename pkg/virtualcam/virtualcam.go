// Package virtualcam provides a synthetic frame source that draws a
// scrolling test pattern. It performs no I/O and never fails once created.
package virtualcam

import (
	"fmt"
	"math"
	"time"

	"github.com/user/camrecord/pkg/ports"
)

// Pattern constants.
const (
	// ScrollSpeed is the bar offset in pixels per second.
	ScrollSpeed = 50
	// BarWidth is the lit width at the start of each band.
	BarWidth = 10
	// Background is the gray level of unlit pixels.
	Background = 50
)

// Clock abstracts time for tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// Camera is a synthetic ports.FrameSource.
type Camera struct {
	id    int
	size  ports.Dimension
	fps   int
	clock Clock
	start time.Time
}

// New creates a generator. The pattern colour is chosen by id mod 3.
func New(id, width, height, fps int) (*Camera, error) {
	return NewWithClock(id, width, height, fps, realClock{})
}

// NewWithClock creates a generator driven by clock.
func NewWithClock(id, width, height, fps int, clock Clock) (*Camera, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: virtual camera %d: invalid size %dx%d", ports.ErrOpen, id, width, height)
	}
	if fps <= 0 {
		return nil, fmt.Errorf("%w: virtual camera %d: invalid fps %d", ports.ErrOpen, id, fps)
	}
	return &Camera{
		id:    id,
		size:  ports.Dimension{Width: width, Height: height},
		fps:   fps,
		clock: clock,
		start: clock.Now(),
	}, nil
}

// Pair returns the two default generators, ids 0 and 1.
func Pair(width, height, fps int) (*Camera, *Camera, error) {
	left, err := New(0, width, height, fps)
	if err != nil {
		return nil, nil, err
	}
	right, err := New(1, width, height, fps)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// Start resets the pattern clock.
func (c *Camera) Start() error {
	c.start = c.clock.Now()
	return nil
}

// NextFrame renders the pattern for the time elapsed since Start.
func (c *Camera) NextFrame() ([]byte, error) {
	return c.FrameAt(c.clock.Now().Sub(c.start)), nil
}

// Stop is a no-op.
func (c *Camera) Stop() error { return nil }

// Size returns the frame size.
func (c *Camera) Size() ports.Dimension { return c.size }

// ID returns the generator identifier.
func (c *Camera) ID() int { return c.id }

// FPS returns the configured frame rate.
func (c *Camera) FPS() int { return c.fps }

// FrameInterval is the pause between frames.
func (c *Camera) FrameInterval() time.Duration {
	return time.Duration(1000/c.fps) * time.Millisecond
}

// Pace blocks for one frame interval.
func (c *Camera) Pace() {
	c.clock.Sleep(c.FrameInterval())
}

// FrameAt renders the pattern at a given elapsed time. Identical inputs
// always give identical frames.
func (c *Camera) FrameAt(elapsed time.Duration) []byte {
	return Render(c.id, c.size.Width, c.size.Height, elapsed)
}

// Render draws the scrolling bar pattern.
func Render(id, width, height int, elapsed time.Duration) []byte {
	frame := make([]byte, width*height*ports.BytesPerPixel)
	offset := int(math.Floor(elapsed.Seconds()*ScrollSpeed)) % width
	band := width / 4
	if band == 0 {
		band = 1
	}
	lit := litColour(id)

	row := make([]byte, width*ports.BytesPerPixel)
	for x := 0; x < width; x++ {
		px := row[x*3 : x*3+3]
		if (x+offset)%band < BarWidth {
			copy(px, lit[:])
		} else {
			px[0], px[1], px[2] = Background, Background, Background
		}
	}
	for y := 0; y < height; y++ {
		copy(frame[y*len(row):], row)
	}
	return frame
}

func litColour(id int) [3]byte {
	switch ((id % 3) + 3) % 3 {
	case 0:
		return [3]byte{255, 0, 0}
	case 1:
		return [3]byte{0, 255, 0}
	default:
		return [3]byte{0, 0, 255}
	}
}

var _ ports.FrameSource = (*Camera)(nil)
