package ports

import (
	"image"
)

// SnapshotSink stores preview images taken while recording or replaying.
type SnapshotSink interface {
	// Enabled returns true if snapshots should be produced at all.
	// Callers skip the rendering work when it returns false.
	Enabled() bool

	// SaveSnapshot stores one preview image under name (without extension).
	SaveSnapshot(name string, img image.Image) error
}
