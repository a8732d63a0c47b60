package juxtapose

import (
	"fmt"

	"github.com/user/camrecord/pkg/adapters/filesink"
	"github.com/user/camrecord/pkg/adapters/ggrenderer"
	"github.com/user/camrecord/pkg/adapters/logger"
	"github.com/user/camrecord/pkg/adapters/osfilesystem"
	"github.com/user/camrecord/pkg/ports"
)

// Snapshotter saves composed previews to a ports.SnapshotSink.
type Snapshotter struct {
	composer *Composer
	sink     ports.SnapshotSink
	logger   ports.Logger
	count    int
}

// NewSnapshotter creates a Snapshotter. Nothing is rendered when the sink
// is disabled.
func NewSnapshotter(composer *Composer, sink ports.SnapshotSink, log ports.Logger) *Snapshotter {
	if log == nil {
		log = logger.NewNoop()
	}
	return &Snapshotter{composer: composer, sink: sink, logger: log}
}

// Save composes left and right and stores the result as "<prefix>-NNNN".
// Failures are logged and returned.
func (s *Snapshotter) Save(prefix string, left, right Panel) error {
	if s.sink == nil || !s.sink.Enabled() {
		return nil
	}
	img, err := s.composer.Compose(left, right)
	if err != nil {
		s.logger.Warn("Snapshot failed: %v", err)
		return err
	}
	name := snapshotName(prefix, s.count)
	s.count++
	if err := s.sink.SaveSnapshot(name, img); err != nil {
		s.logger.Warn("Snapshot failed: %v", err)
		return err
	}
	s.logger.Debug("Snapshot saved: %s", name)
	return nil
}

// Count returns the number of snapshots attempted.
func (s *Snapshotter) Count() int {
	return s.count
}

// NewFileSnapshotter builds a Snapshotter writing to dir with the
// default adapters.
//
// Example with custom dependencies:
//
//	snap := juxtapose.NewSnapshotter(
//	    juxtapose.New(ggrenderer.New(), juxtapose.DefaultOptions()),
//	    filesink.New(dir, osfilesystem.New(), ggrenderer.New(), ports.FormatPNG),
//	    myLogger,
//	)
func NewFileSnapshotter(dir string, format ports.ImageFormat, opts Options, log ports.Logger) *Snapshotter {
	renderer := ggrenderer.New()
	sink := filesink.New(dir, osfilesystem.New(), renderer, format)
	return NewSnapshotter(New(renderer, opts), sink, log)
}

func snapshotName(prefix string, n int) string {
	return fmt.Sprintf("%s-%04d", prefix, n)
}
