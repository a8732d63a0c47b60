package ports

// BayerLayout names the colour filter arrangement of a raw sensor.
type BayerLayout string

const (
	BayerRGGB BayerLayout = "rggb"
	BayerBGGR BayerLayout = "bggr"
	BayerGRBG BayerLayout = "grbg"
	BayerGBRG BayerLayout = "gbrg"
)

// ProbeResult describes what a device index offers.
type ProbeResult struct {
	Bayer  bool
	Layout BayerLayout
}

// DeviceInfo is one entry of a device listing.
type DeviceInfo struct {
	Index  int
	Name   string
	Path   string
	Bayer  bool
	Layout BayerLayout
}

// DeviceProber inspects capture devices without opening a stream.
type DeviceProber interface {
	// Probe classifies the device at index. A device that cannot be
	// inspected is reported as non-Bayer rather than as an error.
	Probe(index int) (ProbeResult, error)

	// List returns the capture devices present on the machine.
	List() ([]DeviceInfo, error)
}

// CaptureRequest selects a device and the requested stream geometry.
type CaptureRequest struct {
	Index  int
	Width  int
	Height int
	FPS    int
	Layout BayerLayout
	// Strategy is the format negotiation policy for standard devices.
	Strategy CaptureStrategy
}

// CaptureStrategy is a format negotiation policy for standard devices.
type CaptureStrategy int

const (
	// StrategyNone accepts whatever the driver proposes.
	StrategyNone CaptureStrategy = iota
	// StrategyHighestFrameRate prefers the fastest mode.
	StrategyHighestFrameRate
	// StrategyHighestResolution prefers the largest mode.
	StrategyHighestResolution
)

// String returns the strategy name used in logs.
func (s CaptureStrategy) String() string {
	switch s {
	case StrategyNone:
		return "none"
	case StrategyHighestFrameRate:
		return "highest-framerate"
	case StrategyHighestResolution:
		return "highest-resolution"
	default:
		return "unknown"
	}
}

// CaptureStream is an opened device stream.
// Read returns whatever the backend produced; callers normalise it to RGB.
type CaptureStream interface {
	Start() error
	Read() ([]byte, error)
	Stop() error
	Size() Dimension
}

// CaptureBackend opens device streams.
type CaptureBackend interface {
	Name() string
	Open(req CaptureRequest) (CaptureStream, error)
}
