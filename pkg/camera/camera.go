// Package camera opens physical capture devices as frame sources.
//
// A device index is first probed: raw Bayer sensors are read through a
// debayering pipeline at a fixed size and rate, and everything else goes
// through the standard backend, which tries a list of format negotiation
// strategies until one opens.
package camera

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/user/camrecord/pkg/adapters/logger"
	"github.com/user/camrecord/pkg/ports"
)

// Options configures how a device is opened.
type Options struct {
	Width  int
	Height int
	FPS    int

	// Prober classifies devices. Nil treats every device as standard.
	Prober ports.DeviceProber
	// Bayer opens raw sensors. Nil disables the raw path.
	Bayer ports.CaptureBackend
	// Standard opens everything else.
	Standard ports.CaptureBackend
	// Strategies are tried in order on the standard backend.
	Strategies []ports.CaptureStrategy

	Logger ports.Logger
}

// DefaultStrategies is the negotiation order for standard devices.
var DefaultStrategies = []ports.CaptureStrategy{
	ports.StrategyNone,
	ports.StrategyHighestFrameRate,
	ports.StrategyHighestResolution,
}

// DefaultOptions returns 640x480 at 30 fps with the default strategies.
// Backends must still be supplied by the caller.
func DefaultOptions() Options {
	return Options{
		Width:      640,
		Height:     480,
		FPS:        30,
		Strategies: DefaultStrategies,
	}
}

// Device is a physical camera exposed as a ports.FrameSource.
type Device struct {
	index   int
	backend string
	bayer   bool
	stream  ports.CaptureStream
	size    ports.Dimension
	logger  ports.Logger

	mu          sync.Mutex
	sizeChecked bool
}

// nativeSizer is implemented by streams that scale driver output.
type nativeSizer interface {
	NativeSize() image.Point
}

// Open selects a backend for the device at index and opens it.
// The returned error wraps ports.ErrNotFound when no such device exists
// and ports.ErrOpen for any other failure.
func Open(index int, opts Options) (*Device, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: camera %d: invalid size %dx%d", ports.ErrOpen, index, opts.Width, opts.Height)
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if len(opts.Strategies) == 0 {
		opts.Strategies = DefaultStrategies
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoop()
	}
	log = log.WithComponent(fmt.Sprintf("camera %d", index))

	d := &Device{
		index:  index,
		size:   ports.Dimension{Width: opts.Width, Height: opts.Height},
		logger: log,
	}

	var probe ports.ProbeResult
	if opts.Prober != nil {
		res, err := opts.Prober.Probe(index)
		if err != nil {
			log.Warn("Probe failed, assuming standard camera: %v", err)
		} else {
			probe = res
		}
	}

	if probe.Bayer && opts.Bayer != nil {
		log.Info("Bayer sensor detected (%s)", probe.Layout)
		stream, err := opts.Bayer.Open(ports.CaptureRequest{
			Index:  index,
			Width:  opts.Width,
			Height: opts.Height,
			FPS:    opts.FPS,
			Layout: probe.Layout,
		})
		if err == nil {
			d.stream = stream
			d.backend = opts.Bayer.Name()
			d.bayer = true
			return d, nil
		}
		log.Warn("Bayer capture failed, falling back to standard capture: %v", err)
	}

	if opts.Standard == nil {
		return nil, fmt.Errorf("%w: camera %d: no capture backend", ports.ErrOpen, index)
	}

	attempts := make([]attempt[ports.CaptureStream], 0, len(opts.Strategies))
	for _, s := range opts.Strategies {
		req := ports.CaptureRequest{
			Index:    index,
			Width:    opts.Width,
			Height:   opts.Height,
			FPS:      opts.FPS,
			Strategy: s,
		}
		attempts = append(attempts, attempt[ports.CaptureStream]{
			name: s.String(),
			run:  func() (ports.CaptureStream, error) { return opts.Standard.Open(req) },
		})
	}

	stream, strategy, err := trySequence(attempts, func(name string, err error) {
		log.Debug("Strategy %s failed: %v", name, err)
	})
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, fmt.Errorf("%w: camera %d: %w", ports.ErrNotFound, index, err)
		}
		return nil, fmt.Errorf("%w: camera %d: %w", ports.ErrOpen, index, err)
	}
	log.Debug("Opened with strategy %s", strategy)

	d.stream = stream
	d.backend = opts.Standard.Name()
	return d, nil
}

// Start begins streaming.
func (d *Device) Start() error {
	if err := d.stream.Start(); err != nil {
		return fmt.Errorf("%w: camera %d: start: %w", ports.ErrOpen, d.index, err)
	}
	return nil
}

// NextFrame captures one frame. A failed frame leaves the device usable.
func (d *Device) NextFrame() ([]byte, error) {
	frame, err := d.stream.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: camera %d: %w", ports.ErrFrame, d.index, err)
	}
	if err := ports.ValidateFrame(frame, d.size); err != nil {
		return nil, fmt.Errorf("camera %d: %w", d.index, err)
	}
	d.checkNativeSize()
	return frame, nil
}

// checkNativeSize warns once when the driver ignored the requested size.
func (d *Device) checkNativeSize() {
	ns, ok := d.stream.(nativeSizer)
	if !ok {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sizeChecked {
		return
	}
	d.sizeChecked = true
	native := ns.NativeSize()
	if native.X != d.size.Width || native.Y != d.size.Height {
		d.logger.Warn("Could not set resolution %s, scaling from %dx%d", d.size, native.X, native.Y)
	}
}

// Stop ends streaming.
func (d *Device) Stop() error {
	if err := d.stream.Stop(); err != nil {
		return fmt.Errorf("%w: camera %d: stop: %w", ports.ErrOpen, d.index, err)
	}
	return nil
}

// Size returns the frame size.
func (d *Device) Size() ports.Dimension { return d.size }

// Index returns the device index.
func (d *Device) Index() int { return d.index }

// Backend returns the name of the capture backend in use.
func (d *Device) Backend() string { return d.backend }

// IsBayer reports whether the raw sensor path is in use.
func (d *Device) IsBayer() bool { return d.bayer }

var _ ports.FrameSource = (*Device)(nil)
