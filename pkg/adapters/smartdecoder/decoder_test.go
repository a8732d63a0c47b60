package smartdecoder

import (
	"errors"
	"testing"

	"github.com/user/camrecord/pkg/mocks"
	"github.com/user/camrecord/pkg/ports"
)

func TestFactory_UsesFirstBackend(t *testing.T) {
	gst := mocks.NewDecoderFactory(nil)
	f := NewWithCandidates(Options{}, []Candidate{
		{Backend: BackendGStreamer, Factory: gst},
		{Backend: BackendFFmpeg, Factory: mocks.NewDecoderFactory(nil)},
	})

	d, err := f.Open(ports.DecoderConfig{Path: "left.mp4", Width: 2, Height: 2})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer d.Close()

	info := f.LastInfo()
	if info.Backend != BackendGStreamer || info.FallbackUsed || info.Path != "left.mp4" {
		t.Errorf("unexpected info %+v", info)
	}
}

func TestFactory_FallsBackOnOpenError(t *testing.T) {
	gst := mocks.NewDecoderFactory(nil)
	gst.OpenFunc = func(cfg ports.DecoderConfig) (ports.FrameDecoder, error) {
		return nil, errors.New("no decodebin")
	}
	f := NewWithCandidates(Options{}, []Candidate{
		{Backend: BackendGStreamer, Factory: gst},
		{Backend: BackendFFmpeg, Factory: mocks.NewDecoderFactory(nil)},
	})

	if _, err := f.Open(ports.DecoderConfig{Path: "left.mp4"}); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if info := f.LastInfo(); info.Backend != BackendFFmpeg || !info.FallbackUsed {
		t.Errorf("expected ffmpeg fallback, got %+v", info)
	}
}

func TestFactory_AllFail(t *testing.T) {
	f := NewWithCandidates(Options{}, []Candidate{
		{Backend: BackendFFmpeg, Available: func() bool { return false }, Factory: mocks.NewDecoderFactory(nil)},
	})
	if _, err := f.Open(ports.DecoderConfig{Path: "x.mp4"}); !errors.Is(err, ErrNoDecoderAvailable) {
		t.Errorf("expected ErrNoDecoderAvailable, got %v", err)
	}
}
