package ffmpeg

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/user/camrecord/pkg/ports"
)

// BackendName identifies this implementation in logs and metadata.
const BackendName = "ffmpeg"

// EncoderFactory starts one ffmpeg process per output file.
type EncoderFactory struct{}

// NewEncoderFactory creates a new EncoderFactory.
func NewEncoderFactory() *EncoderFactory {
	return &EncoderFactory{}
}

// NewPipeline starts ffmpeg reading rgb24 frames on stdin and writing an
// H.264 MP4 to cfg.Path.
func (f *EncoderFactory) NewPipeline(cfg ports.EncoderConfig) (ports.EncodePipeline, error) {
	bin, err := FindFFmpeg()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(bin, encodeArgs(cfg)...)
	p := &Pipeline{
		cmd:       cmd,
		frameSize: cfg.Width * cfg.Height * ports.BytesPerPixel,
		done:      make(chan struct{}),
	}
	cmd.Stderr = &p.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg: stdin pipe: %w", err)
	}
	p.stdin = stdin

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg: start: %w", err)
	}
	go func() {
		p.waitErr = cmd.Wait()
		close(p.done)
	}()
	return p, nil
}

func encodeArgs(cfg ports.EncoderConfig) []string {
	preset := cfg.Preset
	if preset == "" {
		preset = "fast"
	}
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"-r", strconv.Itoa(cfg.FPS),
		"-i", "pipe:0",
		"-c:v", "libx264",
		"-preset", preset,
		"-tune", "zerolatency",
		"-pix_fmt", "yuv420p",
	}
	if cfg.Bitrate > 0 {
		args = append(args, "-b:v", fmt.Sprintf("%dk", cfg.Bitrate))
	}
	return append(args, "-movflags", "+faststart", cfg.Path)
}

// Pipeline is a running ffmpeg encode process.
// Frames are written in order; the raw input is constant-rate so the
// presentation timestamps are implied by frame order.
type Pipeline struct {
	mu        sync.Mutex
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stderr    bytes.Buffer
	frameSize int
	closed    bool

	done    chan struct{}
	waitErr error
}

// Push writes one frame to ffmpeg's stdin. A full pipe blocks the caller.
func (p *Pipeline) Push(frame []byte, _ time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if len(frame) != p.frameSize {
		return fmt.Errorf("ffmpeg: frame is %d bytes, want %d", len(frame), p.frameSize)
	}
	if _, err := p.stdin.Write(frame); err != nil {
		return fmt.Errorf("ffmpeg: write frame: %w", err)
	}
	return nil
}

// Finish closes stdin and waits for ffmpeg to write the trailer.
// On timeout the process is killed.
func (p *Pipeline) Finish(timeout time.Duration) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	p.closed = true
	p.stdin.Close()
	p.mu.Unlock()

	select {
	case <-p.done:
	case <-time.After(timeout):
		p.cmd.Process.Kill()
		<-p.done
		return fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
	if p.waitErr != nil {
		return fmt.Errorf("ffmpeg encoding failed: %w\nstderr: %s", p.waitErr, p.stderr.String())
	}
	return nil
}

// Backend returns "ffmpeg".
func (p *Pipeline) Backend() string { return BackendName }

var (
	_ ports.EncoderFactory = (*EncoderFactory)(nil)
	_ ports.EncodePipeline = (*Pipeline)(nil)
)
