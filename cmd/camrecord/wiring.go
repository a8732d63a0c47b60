package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"

	"github.com/user/camrecord/pkg/adapters/gstreamer"
	"github.com/user/camrecord/pkg/adapters/logger"
	"github.com/user/camrecord/pkg/adapters/mediacam"
	"github.com/user/camrecord/pkg/adapters/mp4probe"
	"github.com/user/camrecord/pkg/adapters/nullsink"
	"github.com/user/camrecord/pkg/adapters/osfilesystem"
	"github.com/user/camrecord/pkg/adapters/smartdecoder"
	"github.com/user/camrecord/pkg/adapters/smartencoder"
	"github.com/user/camrecord/pkg/adapters/statusserver"
	"github.com/user/camrecord/pkg/adapters/v4l2"
	"github.com/user/camrecord/pkg/camera"
	"github.com/user/camrecord/pkg/config"
	"github.com/user/camrecord/pkg/juxtapose"
	"github.com/user/camrecord/pkg/metrics"
	"github.com/user/camrecord/pkg/playback"
	"github.com/user/camrecord/pkg/ports"
	"github.com/user/camrecord/pkg/recorder"
)

// env holds what every command needs: the merged configuration, the
// logger and the shared adapters.
type env struct {
	cfg      config.Config
	log      ports.Logger
	fs       ports.FileSystem
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

// loadEnv merges defaults, the config file and command-line flags.
func loadEnv(c *cli.Context) (*env, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		cfg = loaded
	}
	applyFlags(c, &cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var log ports.Logger
	if cfg.Quiet {
		log = logger.NewNoop()
	} else {
		level, _ := ports.ParseLogLevel(cfg.LogLevel)
		log = logger.NewConsole(level).WithTimestamps(cfg.LogTimestamps)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &env{
		cfg:      cfg,
		log:      log,
		fs:       osfilesystem.New(),
		registry: registry,
		metrics:  metrics.New(registry),
	}, nil
}

// applyFlags overrides configuration values with explicitly set flags.
func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.Bool("quiet") {
		cfg.Quiet = true
	}
	if c.Bool("log-timestamps") {
		cfg.LogTimestamps = true
	}
	if c.IsSet("encoder") {
		cfg.Encoder.Backend = c.String("encoder")
	}
	if c.IsSet("ffmpeg-path") {
		cfg.Encoder.FFmpegPath = c.String("ffmpeg-path")
	}
	if c.Bool("no-bayer") {
		cfg.Camera.Bayer = false
	}
	if c.IsSet("status-addr") {
		cfg.Status.Addr = c.String("status-addr")
	}
	if c.IsSet("snapshot-dir") {
		cfg.Preview.SnapshotDir = c.String("snapshot-dir")
	}
	if c.IsSet("output") {
		cfg.OutputDir = c.String("output")
	}
	if c.IsSet("fps") {
		cfg.FPS = c.Int("fps")
	}
	if c.IsSet("duration") {
		cfg.DurationSec = c.Int("duration")
	}
	if c.Bool("loop") {
		cfg.Playback.Loop = true
	}
}

// signalContext is cancelled on Ctrl-C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func (e *env) prober() *v4l2.Prober {
	p := v4l2.New()
	p.Tool = e.cfg.Camera.ProbeTool
	return p
}

func (e *env) cameraOptions() camera.Options {
	opts := camera.DefaultOptions()
	opts.Width = e.cfg.Width
	opts.Height = e.cfg.Height
	opts.FPS = e.cfg.FPS
	opts.Prober = e.prober()
	opts.Standard = mediacam.New()
	if e.cfg.Camera.Bayer {
		bayer := gstreamer.NewBayerCapture()
		bayer.PullTimeout = config.Millis(e.cfg.Camera.PullTimeoutMs, gstreamer.DefaultPullTimeout)
		opts.Bayer = bayer
	}
	opts.Logger = e.log.WithComponent("camera")
	return opts
}

func (e *env) encoders() (ports.EncoderFactory, error) {
	backend, err := smartencoder.ParseBackend(e.cfg.Encoder.Backend)
	if err != nil {
		return nil, err
	}
	return smartencoder.New(smartencoder.Options{
		Preferred:  backend,
		FFmpegPath: e.cfg.Encoder.FFmpegPath,
		Logger:     e.log.WithComponent("encoder"),
	}), nil
}

func (e *env) recorderOptions() (recorder.Options, error) {
	encoders, err := e.encoders()
	if err != nil {
		return recorder.Options{}, err
	}
	return recorder.Options{
		Encoders:      encoders,
		FS:            e.fs,
		Preset:        e.cfg.Encoder.Preset,
		Bitrate:       e.cfg.Encoder.Bitrate,
		FinishTimeout: config.Millis(e.cfg.Encoder.FinishTimeoutMs, recorder.DefaultFinishTimeout),
		Logger:        e.log.WithComponent("recorder"),
	}, nil
}

func (e *env) playbackOptions() playback.Options {
	opts := playback.DefaultOptions()
	opts.Width = e.cfg.Width
	opts.Height = e.cfg.Height
	opts.FPS = float64(e.cfg.FPS)
	opts.PullTimeout = config.Millis(e.cfg.Playback.PullTimeoutMs, opts.PullTimeout)
	opts.Decoders = smartdecoder.New(smartdecoder.Options{
		FFmpegPath: e.cfg.Encoder.FFmpegPath,
		Logger:     e.log.WithComponent("decoder"),
	})
	opts.Prober = mp4probe.New()
	opts.FS = e.fs
	opts.Logger = e.log.WithComponent("playback")
	return opts
}

// snapshotter returns a preview snapshotter; it discards everything
// when no snapshot directory is configured.
func (e *env) snapshotter() *juxtapose.Snapshotter {
	p := e.cfg.Preview
	opts := juxtapose.DefaultOptions()
	if p.Scale > 0 {
		opts.Scale = p.Scale
	}
	if p.BackgroundColor != "" {
		opts.Background = config.ParseColor(p.BackgroundColor)
	}
	if p.LabelColor != "" {
		opts.LabelColor = config.ParseColor(p.LabelColor)
	}
	opts.FontPath = p.FontPath

	log := e.log.WithComponent("preview")
	if p.SnapshotDir == "" {
		return juxtapose.NewSnapshotter(juxtapose.New(nil, opts), nullsink.New(), log)
	}
	return juxtapose.NewFileSnapshotter(p.SnapshotDir, p.ImageFormat(), opts, log)
}

// serveStatus starts the status server in the background when an address
// is configured. It stops with ctx.
func (e *env) serveStatus(ctx context.Context, rec statusserver.Recorder, pb statusserver.PlaybackStatus) {
	if e.cfg.Status.Addr == "" {
		return
	}
	srv := statusserver.New(rec, pb, e.registry, e.log)
	go func() {
		if err := srv.Run(ctx, e.cfg.Status.Addr); err != nil {
			e.log.Error("Status server stopped: %v", err)
		}
	}()
}

// every returns a channel that ticks at interval, or nil when interval
// is zero.
func every(interval time.Duration) (<-chan time.Time, func()) {
	if interval <= 0 {
		return nil, func() {}
	}
	t := time.NewTicker(interval)
	return t.C, t.Stop
}

// encoderSummary names the backend of the last encode pipeline, or ""
// when nothing was opened yet.
func encoderSummary(encoders ports.EncoderFactory) string {
	f, ok := encoders.(*smartencoder.Factory)
	if !ok {
		return ""
	}
	info := f.LastInfo()
	switch {
	case info.Backend == "":
		return ""
	case info.FallbackUsed:
		return l10n.F("%s (fallback from %s)", info.Backend, info.Requested)
	default:
		return string(info.Backend)
	}
}

// decoderSummary names the backend of the last opened recording.
func decoderSummary(decoders ports.DecoderFactory) string {
	f, ok := decoders.(*smartdecoder.Factory)
	if !ok {
		return ""
	}
	info := f.LastInfo()
	switch {
	case info.Backend == "":
		return ""
	case info.FallbackUsed:
		return l10n.F("%s (fallback)", info.Backend)
	default:
		return string(info.Backend)
	}
}
