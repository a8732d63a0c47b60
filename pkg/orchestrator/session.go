package orchestrator

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/user/camrecord/pkg/ports"
	"github.com/user/camrecord/pkg/recorder"
)

// session is one start-to-stop recording run.
type session struct {
	owner    *DualRecorder
	id       string
	spec     SourceSpec
	dir      string
	fps      int
	duration time.Duration
	logger   ports.Logger
	done     chan struct{}

	sources   [2]ports.FrameSource
	recorders [2]*recorder.Recorder

	frames    [2]atomic.Int64
	dropped   [2]atomic.Int64
	startedAt atomic.Pointer[time.Time]
	endedAt   atomic.Pointer[time.Time]
}

func (s *session) finished() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func (s *session) run() {
	d := s.owner
	result := SessionResult{
		ID:        s.id,
		Spec:      s.spec,
		OutputDir: s.dir,
		FPS:       s.fps,
		Started:   d.deps.Now(),
	}
	s.logger.Info("Starting recording from %s", s.spec)

	if err := s.setup(); err != nil {
		s.logger.Error("Recording error: %v", err)
		s.teardown(&result)
		result.Err = err
		result.Ended = d.deps.Now()
		d.metrics.RecordSessionFailed()
		s.report(result)
		d.finish(s, result)
		return
	}

	start := d.deps.Now()
	s.startedAt.Store(&start)
	result.Started = start
	interval := s.interval()

	for d.running.Load() {
		if s.duration > 0 && d.deps.Now().Sub(start) >= s.duration {
			break
		}
		s.service(Left)
		s.service(Right)
		if interval > 0 {
			d.deps.Sleep(interval)
		}
	}

	end := d.deps.Now()
	s.endedAt.Store(&end)
	s.teardown(&result)
	result.Ended = end
	for i := range result.Frames {
		result.Frames[i] = int(s.frames[i].Load())
		result.Dropped[i] = int(s.dropped[i].Load())
	}
	d.metrics.RecordSessionStop(end.Sub(start).Seconds())
	s.logger.Info("Recording finished")
	s.report(result)
	d.finish(s, result)
}

// setup opens and starts both sources, then creates both recorders.
// Whatever was opened stays in s for teardown.
func (s *session) setup() error {
	d := s.owner
	size := ports.Dimension{Width: d.cfg.Width, Height: d.cfg.Height}
	src := d.deps.Sources

	switch s.spec.Kind {
	case KindReal:
		for side, index := range [2]int{s.spec.Left, s.spec.Right} {
			fs, err := src.Device(index, size, s.fps)
			if err != nil {
				return fmt.Errorf("%w: camera %d: %w", errSetup, index, err)
			}
			s.sources[side] = fs
		}
	case KindVirtual:
		for side, id := range [2]int{s.spec.Left, s.spec.Right} {
			fs, err := src.Synthetic(id, size, s.fps)
			if err != nil {
				return fmt.Errorf("%w: virtual camera %d: %w", errSetup, id, err)
			}
			s.sources[side] = fs
		}
	case KindPlayback:
		left, right, err := src.Playback(s.spec.Dir)
		if err != nil {
			return fmt.Errorf("%w: %w", errSetup, err)
		}
		s.sources = [2]ports.FrameSource{left, right}
	default:
		return fmt.Errorf("%w: %w: %s", errSetup, ErrNotImplemented, s.spec)
	}

	for side, fs := range s.sources {
		if err := fs.Start(); err != nil {
			return fmt.Errorf("%w: %s source: %w", errSetup, Side(side), err)
		}
	}

	for side, id := range [2]int{s.spec.Left, s.spec.Right} {
		fsize := s.sources[side].Size()
		rec, err := recorder.New(id, fsize.Width, fsize.Height, s.fps, s.dir, d.deps.Recorder)
		if err != nil {
			return fmt.Errorf("%w: %w", errSetup, err)
		}
		s.recorders[side] = rec
	}
	return nil
}

// interval is the pause between ticks. Recordings pace themselves.
func (s *session) interval() time.Duration {
	if s.spec.Kind == KindPlayback {
		return 0
	}
	return time.Duration(1000/s.fps) * time.Millisecond
}

// service reads, publishes and encodes one frame of one side.
// Failures skip the tick for that side only.
func (s *session) service(side Side) {
	d := s.owner
	frame, err := s.sources[side].NextFrame()
	if err != nil {
		s.dropped[side].Add(1)
		d.metrics.RecordDrop(side.String(), "read")
		s.logger.Debug("%s frame skipped: %v", side, err)
		return
	}
	d.metrics.RecordFrame(side.String())
	d.slots[side].set(frame)

	if err := s.recorders[side].WriteFrame(frame); err != nil {
		s.dropped[side].Add(1)
		d.metrics.RecordDrop(side.String(), "write")
		s.logger.Warn("%s frame not recorded: %v", side, err)
		return
	}
	s.frames[side].Add(1)
	d.metrics.RecordEncoded(side.String())
}

// teardown stops sources and finalizes recorders. Errors are logged and
// collected; teardown always runs to completion.
func (s *session) teardown(result *SessionResult) {
	d := s.owner
	for side, src := range s.sources {
		if src == nil {
			continue
		}
		if err := src.Stop(); err != nil {
			s.logger.Warn("Could not stop %s source: %v", Side(side), err)
		}
	}
	for _, rec := range s.recorders {
		if rec == nil {
			continue
		}
		began := time.Now()
		meta, err := rec.Finalize()
		d.metrics.RecordFinalize(time.Since(began).Seconds(), err)
		if err != nil {
			s.logger.Error("Finalize failed: %v", err)
			result.FinalizeErrors = append(result.FinalizeErrors, err)
			continue
		}
		result.Recordings = append(result.Recordings, meta)
	}
}

func (s *session) report(result SessionResult) {
	r := s.owner.deps.Reporter
	if r == nil {
		return
	}
	if err := r.Report(result); err != nil {
		s.logger.Warn("Could not write session summary: %v", err)
	}
}
