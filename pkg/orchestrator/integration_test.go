package orchestrator_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/user/camrecord/pkg/adapters/ffmpeg"
	"github.com/user/camrecord/pkg/adapters/mp4probe"
	"github.com/user/camrecord/pkg/adapters/osfilesystem"
	"github.com/user/camrecord/pkg/metrics"
	"github.com/user/camrecord/pkg/orchestrator"
	"github.com/user/camrecord/pkg/playback"
	"github.com/user/camrecord/pkg/recorder"
	"github.com/user/camrecord/pkg/summarizer"
)

func skipWithoutFFmpeg(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if !ffmpeg.IsAvailable() {
		t.Skip("ffmpeg not available")
	}
}

func newIntegrationRecorder(t *testing.T) *orchestrator.DualRecorder {
	t.Helper()
	fs := osfilesystem.New()
	popts := playback.DefaultOptions()
	popts.Width, popts.Height = 160, 120
	popts.Decoders = ffmpeg.NewDecoderFactory()
	popts.Prober = mp4probe.New()

	return orchestrator.New(orchestrator.Config{Width: 160, Height: 120}, orchestrator.Deps{
		Sources: &orchestrator.Sources{PlaybackOptions: popts},
		Recorder: recorder.Options{
			Encoders: ffmpeg.NewEncoderFactory(),
			FS:       fs,
			Preset:   "ultrafast",
		},
		Metrics:  metrics.New(nil),
		Reporter: summarizer.NewReporter(fs),
	})
}

// TestVirtualThenPlayback records two synthetic cameras with ffmpeg, then
// records the replay of those files into a second directory.
func TestVirtualThenPlayback(t *testing.T) {
	skipWithoutFFmpeg(t)

	first := t.TempDir()
	dual := newIntegrationRecorder(t)

	if err := dual.StartRecording(orchestrator.VirtualSources(), first, 10, time.Second); err != nil {
		t.Fatalf("StartRecording failed: %v", err)
	}
	dual.Wait()

	result, ok := dual.LastSession()
	if !ok || result.Err != nil {
		t.Fatalf("virtual session failed: %+v", result)
	}
	if len(result.Recordings) != 2 {
		t.Fatalf("expected 2 recordings, got %d (%v)", len(result.Recordings), result.FinalizeErrors)
	}
	for _, m := range result.Recordings {
		if m.Frames == 0 {
			t.Errorf("camera %d recorded no frames", m.CameraID)
		}
		if _, err := os.Stat(filepath.Join(first, m.Filename)); err != nil {
			t.Errorf("missing recording: %v", err)
		}
		sidecar := recorder.SidecarPath(filepath.Join(first, m.Filename))
		if _, err := os.Stat(sidecar); err != nil {
			t.Errorf("missing sidecar: %v", err)
		}
	}
	if _, err := os.Stat(filepath.Join(first, summarizer.FileName(result.ID))); err != nil {
		t.Errorf("missing session summary: %v", err)
	}

	names, err := playback.ListRecordings(osfilesystem.New(), first)
	if err != nil || len(names) != 2 {
		t.Fatalf("expected 2 recordings listed, got %v (%v)", names, err)
	}

	second := t.TempDir()
	if err := dual.StartRecording(orchestrator.PlaybackSources(first), second, 10, 500*time.Millisecond); err != nil {
		t.Fatalf("StartRecording failed: %v", err)
	}
	dual.Wait()

	replay, _ := dual.LastSession()
	if replay.Err != nil {
		t.Fatalf("playback session failed: %v", replay.Err)
	}
	if len(replay.Recordings) != 2 {
		t.Fatalf("expected 2 recordings from the replay, got %d", len(replay.Recordings))
	}
	for _, m := range replay.Recordings {
		if m.Width != 160 || m.Height != 120 {
			t.Errorf("expected 160x120 replay, got %dx%d", m.Width, m.Height)
		}
		if !strings.HasPrefix(m.Filename, "camera_") {
			t.Errorf("unexpected filename %q", m.Filename)
		}
	}
}
