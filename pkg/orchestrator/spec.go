package orchestrator

import "fmt"

// SourceKind selects what feeds a session.
type SourceKind int

const (
	// KindReal records two physical cameras.
	KindReal SourceKind = iota
	// KindVirtual records two synthetic generators.
	KindVirtual
	// KindMixed pairs one camera with a generator. Not implemented.
	KindMixed
	// KindPlayback re-records a stereo pair of stored recordings.
	KindPlayback
)

func (k SourceKind) String() string {
	switch k {
	case KindReal:
		return "real"
	case KindVirtual:
		return "virtual"
	case KindMixed:
		return "mixed"
	case KindPlayback:
		return "playback"
	default:
		return fmt.Sprintf("SourceKind(%d)", int(k))
	}
}

// SourceSpec describes the two sources of a session.
type SourceSpec struct {
	Kind SourceKind
	// Left and Right are device indices for KindReal.
	Left  int
	Right int
	// Device and DeviceLeft place the camera for KindMixed.
	Device     int
	DeviceLeft bool
	// Dir holds the recordings for KindPlayback.
	Dir string
}

// RealSources records cameras a (left) and b (right).
func RealSources(a, b int) SourceSpec {
	return SourceSpec{Kind: KindReal, Left: a, Right: b}
}

// VirtualSources records two synthetic generators.
func VirtualSources() SourceSpec {
	return SourceSpec{Kind: KindVirtual, Left: 0, Right: 1}
}

// MixedSources pairs camera index with a generator on the other side.
func MixedSources(index int, left bool) SourceSpec {
	return SourceSpec{Kind: KindMixed, Device: index, DeviceLeft: left}
}

// PlaybackSources replays the first two recordings in dir.
func PlaybackSources(dir string) SourceSpec {
	return SourceSpec{Kind: KindPlayback, Left: 0, Right: 1, Dir: dir}
}

func (s SourceSpec) String() string {
	switch s.Kind {
	case KindReal:
		return fmt.Sprintf("cameras %d and %d", s.Left, s.Right)
	case KindVirtual:
		return "virtual cameras"
	case KindMixed:
		side := "right"
		if s.DeviceLeft {
			side = "left"
		}
		return fmt.Sprintf("camera %d (%s) and virtual camera", s.Device, side)
	case KindPlayback:
		return fmt.Sprintf("recordings in %s", s.Dir)
	default:
		return s.Kind.String()
	}
}
