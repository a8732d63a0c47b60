package ffmpeg

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/user/camrecord/pkg/ports"
)

// DecoderFactory opens ffmpeg rawvideo decoders.
type DecoderFactory struct{}

// NewDecoderFactory creates a new DecoderFactory.
func NewDecoderFactory() *DecoderFactory {
	return &DecoderFactory{}
}

// Open starts decoding cfg.Path scaled to cfg.Width x cfg.Height.
func (f *DecoderFactory) Open(cfg ports.DecoderConfig) (ports.FrameDecoder, error) {
	bin, err := FindFFmpeg()
	if err != nil {
		return nil, err
	}
	d := &Decoder{
		bin:       bin,
		cfg:       cfg,
		frameSize: cfg.Width * cfg.Height * ports.BytesPerPixel,
	}
	if err := d.start(); err != nil {
		return nil, err
	}
	return d, nil
}

type decoded struct {
	frame []byte
	err   error
}

// Decoder reads rgb24 frames from an ffmpeg child process.
// Rewinding restarts the process, which is how ffmpeg seeks to zero.
type Decoder struct {
	bin       string
	cfg       ports.DecoderConfig
	frameSize int

	mu     sync.Mutex
	cmd    *exec.Cmd
	stderr bytes.Buffer
	frames chan decoded
	stop   chan struct{}
	closed bool
}

func (d *Decoder) start() error {
	cmd := exec.Command(d.bin,
		"-hide_banner",
		"-loglevel", "error",
		"-i", d.cfg.Path,
		"-an",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", d.cfg.Width, d.cfg.Height),
		"pipe:1",
	)
	d.stderr.Reset()
	cmd.Stderr = &d.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg: stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg: start: %w", err)
	}

	d.cmd = cmd
	d.frames = make(chan decoded, 1)
	d.stop = make(chan struct{})
	go d.readLoop(stdout, d.frames, d.stop)
	return nil
}

// readLoop reads whole frames until EOF or stop. It always ends by
// sending a terminal error, then closes the channel.
func (d *Decoder) readLoop(r io.Reader, out chan<- decoded, stop <-chan struct{}) {
	defer close(out)
	for {
		buf := make([]byte, d.frameSize)
		_, err := io.ReadFull(r, buf)
		if err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				err = io.EOF
			}
			select {
			case out <- decoded{err: err}:
			case <-stop:
			}
			return
		}
		select {
		case out <- decoded{frame: buf}:
		case <-stop:
			return
		}
	}
}

func (d *Decoder) kill() {
	if d.cmd == nil {
		return
	}
	close(d.stop)
	d.cmd.Process.Kill()
	d.cmd.Wait()
	d.cmd = nil
}

// Next returns the next frame, io.EOF at the end of the file, or
// ErrTimeout when ffmpeg produces nothing within timeout.
func (d *Decoder) Next(timeout time.Duration) ([]byte, error) {
	d.mu.Lock()
	frames := d.frames
	closed := d.closed
	d.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	select {
	case f, ok := <-frames:
		if !ok {
			return nil, io.EOF
		}
		if f.err != nil {
			return nil, f.err
		}
		return f.frame, nil
	case <-time.After(timeout):
		return nil, fmt.Errorf("%w waiting for frame", ErrTimeout)
	}
}

// Rewind restarts decoding from the first frame.
func (d *Decoder) Rewind() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.kill()
	return d.start()
}

// Close stops the ffmpeg process.
func (d *Decoder) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	d.kill()
	return nil
}

// Backend returns "ffmpeg".
func (d *Decoder) Backend() string { return BackendName }

var (
	_ ports.DecoderFactory = (*DecoderFactory)(nil)
	_ ports.FrameDecoder   = (*Decoder)(nil)
)
