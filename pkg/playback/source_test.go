package playback

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/user/camrecord/pkg/mocks"
	"github.com/user/camrecord/pkg/ports"
)

const testPath = "/rec/camera_0__20240101_120000.mp4"

func testFrames(k int) [][]byte {
	frames := make([][]byte, k)
	for i := range frames {
		frames[i] = bytes.Repeat([]byte{byte(i + 1)}, 2*2*3)
	}
	return frames
}

func testOpts(fs *mocks.FileSystem, dec ports.DecoderFactory) Options {
	return Options{Width: 2, Height: 2, FS: fs, Decoders: dec}
}

func newFS(paths ...string) *mocks.FileSystem {
	fs := mocks.NewFileSystem()
	for _, p := range paths {
		fs.AddFile(p, []byte("mp4"))
	}
	return fs
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open("/rec/missing.mp4", false, testOpts(newFS(), mocks.NewDecoderFactory(nil)))
	if !errors.Is(err, ports.ErrOpen) {
		t.Errorf("expected ErrOpen, got %v", err)
	}
}

func TestOpen_DecoderFailure(t *testing.T) {
	dec := mocks.NewDecoderFactory(nil)
	dec.OpenFunc = func(cfg ports.DecoderConfig) (ports.FrameDecoder, error) {
		return nil, errors.New("no decodebin")
	}
	_, err := Open(testPath, false, testOpts(newFS(testPath), dec))
	if !errors.Is(err, ports.ErrOpen) {
		t.Errorf("expected ErrOpen, got %v", err)
	}
}

func TestOpen_UsesProbedSize(t *testing.T) {
	dec := mocks.NewDecoderFactory(nil)
	opts := testOpts(newFS(testPath), dec)
	opts.Prober = &mocks.MediaProber{Info: ports.MediaInfo{Width: 320, Height: 240, FrameCount: 90, FPS: 15}}

	src, err := Open(testPath, false, opts)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if src.Size() != (ports.Dimension{Width: 320, Height: 240}) {
		t.Errorf("unexpected size %v", src.Size())
	}
	if src.FrameCount() != 90 || src.FPS() != 15 {
		t.Errorf("unexpected count/fps %d/%v", src.FrameCount(), src.FPS())
	}
	if dec.Opened[0].Width != 320 || dec.Opened[0].Height != 240 {
		t.Errorf("decoder opened with %+v", dec.Opened[0])
	}
}

func TestNextFrame_Loop(t *testing.T) {
	const k = 3
	frames := testFrames(k)
	dec := mocks.NewDecoderFactory(frames)
	src, err := Open(testPath, true, testOpts(newFS(testPath), dec))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	var got [][]byte
	for i := 0; i < k+1; i++ {
		f, err := src.NextFrame()
		if err != nil {
			t.Fatalf("call %d: %v", i+1, err)
		}
		got = append(got, f)
	}
	if !bytes.Equal(got[k], got[0]) {
		t.Error("expected frame after loop to equal the first frame")
	}
	if dec.Decoders[0].Rewinds() != 1 {
		t.Errorf("expected 1 rewind, got %d", dec.Decoders[0].Rewinds())
	}
	if src.IsFinished() {
		t.Error("looping source should never finish")
	}
	if src.CurrentFrame() != 1 {
		t.Errorf("expected cursor 1 after loop, got %d", src.CurrentFrame())
	}
	if src.FrameCount() != k {
		t.Errorf("expected frame count %d learned from the stream, got %d", k, src.FrameCount())
	}
}

func TestNextFrame_NoLoop(t *testing.T) {
	const k = 3
	src, err := Open(testPath, false, testOpts(newFS(testPath), mocks.NewDecoderFactory(testFrames(k))))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	for i := 1; i <= k; i++ {
		if src.IsFinished() {
			t.Fatalf("finished before call %d", i)
		}
		f, err := src.NextFrame()
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if f[0] != byte(i) {
			t.Errorf("call %d: expected frame %d, got %d", i, i, f[0])
		}
	}
	if !src.IsFinished() {
		t.Error("expected finished right after the last frame")
	}
	if src.Progress() != 1 {
		t.Errorf("expected progress 1, got %v", src.Progress())
	}
	if _, err := src.NextFrame(); !errors.Is(err, ports.ErrRead) {
		t.Errorf("expected ErrRead after end, got %v", err)
	}
	if _, err := src.NextFrame(); !errors.Is(err, ports.ErrRead) {
		t.Errorf("expected finished state to be terminal, got %v", err)
	}
}

func TestReset_ClearsFinished(t *testing.T) {
	src, _ := Open(testPath, false, testOpts(newFS(testPath), mocks.NewDecoderFactory(testFrames(1))))
	if _, err := src.NextFrame(); err != nil {
		t.Fatalf("NextFrame failed: %v", err)
	}
	if !src.IsFinished() {
		t.Fatal("expected finished")
	}
	if err := src.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if src.IsFinished() || src.CurrentFrame() != 0 {
		t.Error("expected reset to clear state")
	}
	f, err := src.NextFrame()
	if err != nil || f[0] != 1 {
		t.Errorf("expected first frame after reset, got %v, %v", f, err)
	}
}

func TestReset_Failure(t *testing.T) {
	dec := mocks.NewDecoderFactory(testFrames(1))
	src, _ := Open(testPath, false, testOpts(newFS(testPath), dec))
	dec.Decoders[0].RewindFunc = func() error { return errors.New("seek failed") }
	if err := src.Reset(); !errors.Is(err, ports.ErrOpen) {
		t.Errorf("expected ErrOpen, got %v", err)
	}
}

func TestNextFrame_TimeoutIsReadError(t *testing.T) {
	dec := mocks.NewDecoderFactory(nil)
	var timeouts []time.Duration
	dec.OpenFunc = func(cfg ports.DecoderConfig) (ports.FrameDecoder, error) {
		d := mocks.NewFrameDecoder(nil)
		d.NextFunc = func(timeout time.Duration) ([]byte, error) {
			timeouts = append(timeouts, timeout)
			return nil, errors.New("no sample within timeout")
		}
		return d, nil
	}
	src, _ := Open(testPath, true, testOpts(newFS(testPath), dec))
	if _, err := src.NextFrame(); !errors.Is(err, ports.ErrRead) {
		t.Errorf("expected ErrRead, got %v", err)
	}
	if len(timeouts) != 1 || timeouts[0] != DefaultPullTimeout {
		t.Errorf("expected one pull with the default timeout, got %v", timeouts)
	}
}

func TestNextFrame_EmptyLoopingRecording(t *testing.T) {
	src, _ := Open(testPath, true, testOpts(newFS(testPath), mocks.NewDecoderFactory(nil)))
	if _, err := src.NextFrame(); !errors.Is(err, ports.ErrRead) {
		t.Errorf("expected ErrRead, got %v", err)
	}
}

func TestNextFrame_WrongSizeIsReadError(t *testing.T) {
	dec := mocks.NewDecoderFactory([][]byte{make([]byte, 5)})
	src, _ := Open(testPath, false, testOpts(newFS(testPath), dec))
	if _, err := src.NextFrame(); !errors.Is(err, ports.ErrRead) {
		t.Errorf("expected ErrRead, got %v", err)
	}
}

func TestNextFrame_ErrorIsRecoverable(t *testing.T) {
	calls := 0
	dec := mocks.NewDecoderFactory(nil)
	dec.OpenFunc = func(cfg ports.DecoderConfig) (ports.FrameDecoder, error) {
		d := mocks.NewFrameDecoder(nil)
		d.NextFunc = func(time.Duration) ([]byte, error) {
			calls++
			switch calls {
			case 1:
				return nil, errors.New("stall")
			case 2:
				return make([]byte, 12), nil
			}
			return nil, io.EOF
		}
		return d, nil
	}
	src, _ := Open(testPath, false, testOpts(newFS(testPath), dec))
	if _, err := src.NextFrame(); err == nil {
		t.Fatal("expected first call to fail")
	}
	if _, err := src.NextFrame(); err != nil {
		t.Errorf("expected recovery, got %v", err)
	}
	if !src.IsFinished() {
		t.Error("expected finished after last frame")
	}
}

func TestStop_ClosesDecoder(t *testing.T) {
	dec := mocks.NewDecoderFactory(testFrames(1))
	src, _ := Open(testPath, true, testOpts(newFS(testPath), dec))
	if err := src.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if !dec.Decoders[0].Closed() {
		t.Error("expected decoder to be closed")
	}
}
