package playback

import (
	"errors"
	"strings"
	"testing"

	"github.com/user/camrecord/pkg/mocks"
	"github.com/user/camrecord/pkg/ports"
)

func TestLoadFromDirectory_NoRecordings(t *testing.T) {
	fs := newFS("/rec/notes.txt")
	_, err := LoadFromDirectory("/rec", testOpts(fs, mocks.NewDecoderFactory(nil)))
	if !errors.Is(err, ports.ErrOpen) {
		t.Errorf("expected ErrOpen, got %v", err)
	}
}

func TestLoadFromDirectory_MissingDir(t *testing.T) {
	_, err := LoadFromDirectory("/nowhere", testOpts(newFS(), mocks.NewDecoderFactory(nil)))
	if !errors.Is(err, ports.ErrOpen) {
		t.Errorf("expected ErrOpen, got %v", err)
	}
}

func TestLoadFromDirectory_SingleRecording(t *testing.T) {
	fs := newFS("/rec/a.mp4", "/rec/a.json")
	s, err := LoadFromDirectory("/rec", testOpts(fs, mocks.NewDecoderFactory(testFrames(2))))
	if err != nil {
		t.Fatalf("LoadFromDirectory failed: %v", err)
	}
	defer s.Close()
	if s.Source(Left).Path() != "/rec/a.mp4" || s.Source(Right).Path() != "/rec/a.mp4" {
		t.Errorf("expected both sides on a.mp4, got %s and %s", s.Source(Left).Path(), s.Source(Right).Path())
	}
}

func TestLoadFromDirectory_SortedPair(t *testing.T) {
	fs := newFS("/rec/c.mkv", "/rec/b.avi", "/rec/a.mp4")
	s, err := LoadFromDirectory("/rec", testOpts(fs, mocks.NewDecoderFactory(testFrames(2))))
	if err != nil {
		t.Fatalf("LoadFromDirectory failed: %v", err)
	}
	defer s.Close()
	if s.Source(Left).Path() != "/rec/a.mp4" {
		t.Errorf("expected left a.mp4, got %s", s.Source(Left).Path())
	}
	if s.Source(Right).Path() != "/rec/b.avi" {
		t.Errorf("expected right b.avi, got %s", s.Source(Right).Path())
	}
	if !s.Source(Left).Loop() || !s.Source(Right).Loop() {
		t.Error("expected both sides to loop")
	}
}

func TestStereo_IndependentCursors(t *testing.T) {
	fs := newFS("/rec/a.mp4", "/rec/b.mp4")
	s, _ := LoadFromDirectory("/rec", testOpts(fs, mocks.NewDecoderFactory(testFrames(3))))
	defer s.Close()

	for i := 0; i < 2; i++ {
		if _, err := s.LeftFrame(); err != nil {
			t.Fatalf("LeftFrame failed: %v", err)
		}
	}
	if _, err := s.RightFrame(); err != nil {
		t.Fatalf("RightFrame failed: %v", err)
	}
	if s.Source(Left).CurrentFrame() != 2 || s.Source(Right).CurrentFrame() != 1 {
		t.Errorf("unexpected cursors %d/%d", s.Source(Left).CurrentFrame(), s.Source(Right).CurrentFrame())
	}

	left, right, err := s.BothFrames()
	if err != nil {
		t.Fatalf("BothFrames failed: %v", err)
	}
	if left[0] != 3 || right[0] != 2 {
		t.Errorf("expected frames 3 and 2, got %d and %d", left[0], right[0])
	}
}

func TestStereo_Status(t *testing.T) {
	s := NewStereo(testOpts(newFS(), mocks.NewDecoderFactory(nil)))
	if got := s.Status(); got != "left: not loaded\nright: not loaded" {
		t.Errorf("unexpected empty status %q", got)
	}

	fs := newFS("/rec/a.mp4", "/rec/b.mp4")
	opts := testOpts(fs, mocks.NewDecoderFactory(testFrames(3)))
	opts.Prober = &mocks.MediaProber{Info: ports.MediaInfo{Width: 2, Height: 2, FrameCount: 3}}
	s, _ = LoadFromDirectory("/rec", opts)
	defer s.Close()
	s.LeftFrame()

	lines := strings.Split(s.Status(), "\n")
	if len(lines) != 2 || lines[0] != "left: a.mp4 (1/3)" || lines[1] != "right: b.mp4 (0/3)" {
		t.Errorf("unexpected status %q", s.Status())
	}
}

func TestStereo_NotLoaded(t *testing.T) {
	s := NewStereo(testOpts(newFS(), mocks.NewDecoderFactory(nil)))
	if _, err := s.LeftFrame(); !errors.Is(err, ports.ErrOpen) {
		t.Errorf("expected ErrOpen, got %v", err)
	}
}

func TestStereo_SetLeftReplaces(t *testing.T) {
	fs := newFS("/rec/a.mp4", "/rec/b.mp4", "/other/c.mp4")
	dec := mocks.NewDecoderFactory(testFrames(2))
	s, _ := LoadFromDirectory("/rec", testOpts(fs, dec))
	defer s.Close()
	first := dec.Decoders[0]

	if err := s.SetLeft("/other/c.mp4"); err != nil {
		t.Fatalf("SetLeft failed: %v", err)
	}
	if s.Source(Left).Path() != "/other/c.mp4" {
		t.Errorf("expected new left source, got %s", s.Source(Left).Path())
	}
	if !first.Closed() {
		t.Error("expected replaced source to be closed")
	}
}

func TestStereo_Reset(t *testing.T) {
	fs := newFS("/rec/a.mp4", "/rec/b.mp4")
	s, _ := LoadFromDirectory("/rec", testOpts(fs, mocks.NewDecoderFactory(testFrames(3))))
	defer s.Close()
	s.BothFrames()
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if s.Source(Left).CurrentFrame() != 0 || s.Source(Right).CurrentFrame() != 0 {
		t.Error("expected both cursors at 0")
	}
}

func TestListRecordings(t *testing.T) {
	fs := newFS("/rec/b.MP4", "/rec/a.mkv", "/rec/a.json", "/rec/sub/c.mp4")
	names, err := ListRecordings(fs, "/rec")
	if err != nil {
		t.Fatalf("ListRecordings failed: %v", err)
	}
	if len(names) != 2 || names[0] != "a.mkv" || names[1] != "b.MP4" {
		t.Errorf("unexpected names %v", names)
	}

	names, err = ListRecordings(fs, "/missing")
	if err != nil || len(names) != 0 {
		t.Errorf("expected empty list for missing dir, got %v, %v", names, err)
	}
}
