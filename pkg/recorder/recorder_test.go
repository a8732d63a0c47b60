package recorder

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/user/camrecord/pkg/mocks"
	"github.com/user/camrecord/pkg/ports"
)

type stepClock struct {
	t time.Time
}

func (c *stepClock) now() time.Time { return c.t }

func newTestRecorder(t *testing.T, clock *stepClock) (*Recorder, *mocks.EncoderFactory, *mocks.FileSystem) {
	t.Helper()
	enc := mocks.NewEncoderFactory()
	fs := mocks.NewFileSystem()
	r, err := New(3, 4, 2, 10, "/out", Options{Encoders: enc, FS: fs, Now: clock.now})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return r, enc, fs
}

func TestNew_Filename(t *testing.T) {
	clock := &stepClock{t: time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)}
	r, enc, fs := newTestRecorder(t, clock)

	want := "/out/camera_3__20240309_140507.mp4"
	if r.Path() != want {
		t.Errorf("expected path %s, got %s", want, r.Path())
	}
	if enc.Configs[0].Width != 4 || enc.Configs[0].Height != 2 || enc.Configs[0].FPS != 10 {
		t.Errorf("unexpected encoder config %+v", enc.Configs[0])
	}
	if ok, _ := fs.Exists("/out"); !ok {
		t.Error("expected output directory to be created")
	}
}

func TestNew_PipelineFailure(t *testing.T) {
	enc := mocks.NewEncoderFactory()
	enc.NewPipelineFunc = func(cfg ports.EncoderConfig) (ports.EncodePipeline, error) {
		return nil, errors.New("x264enc missing")
	}
	_, err := New(0, 4, 2, 10, "/out", Options{Encoders: enc, FS: mocks.NewFileSystem()})
	if !errors.Is(err, ErrPipeline) || !errors.Is(err, ports.ErrOpen) {
		t.Errorf("expected ErrPipeline and ErrOpen, got %v", err)
	}
}

func TestNew_MkdirFailure(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.MkdirAllFunc = func(string) error { return errors.New("read-only") }
	_, err := New(0, 4, 2, 10, "/out", Options{Encoders: mocks.NewEncoderFactory(), FS: fs})
	if !errors.Is(err, ErrPipeline) {
		t.Errorf("expected ErrPipeline, got %v", err)
	}
}

func TestWriteFrame_PTS(t *testing.T) {
	r, enc, _ := newTestRecorder(t, &stepClock{t: time.Now()})
	frame := make([]byte, 4*2*3)
	for i := 0; i < 3; i++ {
		if err := r.WriteFrame(frame); err != nil {
			t.Fatalf("WriteFrame %d failed: %v", i, err)
		}
	}
	pushes := enc.Pipelines[0].Pushes()
	want := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}
	for i, p := range pushes {
		if p.PTS != want[i] {
			t.Errorf("frame %d: expected pts %v, got %v", i, want[i], p.PTS)
		}
	}
	if r.Frames() != 3 {
		t.Errorf("expected 3 frames, got %d", r.Frames())
	}
}

func TestWriteFrame_RejectsUndersized(t *testing.T) {
	r, enc, _ := newTestRecorder(t, &stepClock{t: time.Now()})
	err := r.WriteFrame(make([]byte, 4*2*3-1))
	if !errors.Is(err, ports.ErrWrite) {
		t.Errorf("expected ErrWrite, got %v", err)
	}
	if len(enc.Pipelines[0].Pushes()) != 0 {
		t.Error("undersized frame must not reach the encoder")
	}
	if r.Frames() != 0 {
		t.Error("frame counter must not advance")
	}
}

func TestWriteFrame_TruncatesOversized(t *testing.T) {
	r, enc, _ := newTestRecorder(t, &stepClock{t: time.Now()})
	if err := r.WriteFrame(make([]byte, 100)); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	if got := len(enc.Pipelines[0].Pushes()[0].Frame); got != 24 {
		t.Errorf("expected 24 bytes pushed, got %d", got)
	}
}

func TestWriteFrame_PushError(t *testing.T) {
	enc := mocks.NewEncoderFactory()
	enc.NewPipelineFunc = func(cfg ports.EncoderConfig) (ports.EncodePipeline, error) {
		return &mocks.EncodePipeline{PushFunc: func([]byte, time.Duration) error { return errors.New("flow error") }}, nil
	}
	r, _ := New(0, 4, 2, 10, "/out", Options{Encoders: enc, FS: mocks.NewFileSystem()})
	if err := r.WriteFrame(make([]byte, 24)); !errors.Is(err, ports.ErrWrite) {
		t.Errorf("expected ErrWrite, got %v", err)
	}
}

func TestFinalize_WritesSidecar(t *testing.T) {
	start := time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)
	clock := &stepClock{t: start}
	r, enc, fs := newTestRecorder(t, clock)
	for i := 0; i < 20; i++ {
		r.WriteFrame(make([]byte, 24))
	}
	clock.t = start.Add(2 * time.Second)

	meta, err := r.Finalize()
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if called, timeout := enc.Pipelines[0].Finished(); !called || timeout != DefaultFinishTimeout {
		t.Errorf("expected Finish with %v, got %v %v", DefaultFinishTimeout, called, timeout)
	}
	if meta.DurationSecs != 2 || meta.Frames != 20 || meta.CameraID != 3 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Filename != "camera_3__20240309_140507.mp4" {
		t.Errorf("unexpected filename %s", meta.Filename)
	}
	if meta.Timestamp != start.Format(time.RFC3339) {
		t.Errorf("unexpected timestamp %s", meta.Timestamp)
	}

	data, ok := fs.GetFile("/out/camera_3__20240309_140507.json")
	if !ok {
		t.Fatal("expected sidecar to be written")
	}
	for _, key := range []string{`"camera_id": 3`, `"duration_secs": 2`, `"fps": 10`, `"width": 4`, `"height": 2`, `"filename"`, `"timestamp"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("sidecar missing %s:\n%s", key, data)
		}
	}

	back, err := ReadMetadata(fs, "/out/camera_3__20240309_140507.json")
	if err != nil || back != meta {
		t.Errorf("expected sidecar to read back, got %+v, %v", back, err)
	}
}

func TestFinalize_Once(t *testing.T) {
	r, _, _ := newTestRecorder(t, &stepClock{t: time.Now()})
	if _, err := r.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if _, err := r.Finalize(); !errors.Is(err, ErrFinalized) || !errors.Is(err, ports.ErrFinalize) {
		t.Errorf("expected ErrFinalized, got %v", err)
	}
	if err := r.WriteFrame(make([]byte, 24)); !errors.Is(err, ErrFinalized) || !errors.Is(err, ports.ErrWrite) {
		t.Errorf("expected ErrFinalized from WriteFrame, got %v", err)
	}
}

func TestFinalize_PipelineError(t *testing.T) {
	enc := mocks.NewEncoderFactory()
	enc.NewPipelineFunc = func(cfg ports.EncoderConfig) (ports.EncodePipeline, error) {
		return &mocks.EncodePipeline{FinishFunc: func(time.Duration) error { return errors.New("timeout waiting for EOS") }}, nil
	}
	fs := mocks.NewFileSystem()
	r, _ := New(0, 4, 2, 10, "/out", Options{Encoders: enc, FS: fs})
	if _, err := r.Finalize(); !errors.Is(err, ports.ErrFinalize) {
		t.Errorf("expected ErrFinalize, got %v", err)
	}
	if _, ok := fs.GetFile(SidecarPath(r.Path())); ok {
		t.Error("sidecar must not be written for a failed recording")
	}
}

func TestSidecarPath(t *testing.T) {
	if got := SidecarPath("/a/b/camera_0__x.mp4"); got != "/a/b/camera_0__x.json" {
		t.Errorf("unexpected sidecar path %s", got)
	}
}
