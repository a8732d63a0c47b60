package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/camrecord/pkg/playback"
	"github.com/user/camrecord/pkg/ports"
	"github.com/user/camrecord/pkg/recorder"
)

func listRecordingsCommand() *cli.Command {
	return &cli.Command{
		Name:   "list-recordings",
		Usage:  l10n.T("List all recordings"),
		Flags:  []cli.Flag{dirFlag()},
		Action: runListRecordings,
	}
}

// recordingsDir is --dir, falling back to the output directory.
func recordingsDir(c *cli.Context, e *env) string {
	if dir := c.String("dir"); dir != "" {
		return dir
	}
	return e.cfg.OutputDir
}

func runListRecordings(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	dir := recordingsDir(c, e)

	fmt.Println(l10n.F("Recordings in %s:", dir))
	names, err := playback.ListRecordings(e.fs, dir)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println(l10n.T("  No recordings found!"))
		return nil
	}
	for i, name := range names {
		fmt.Printf("  %d. %s\n", i+1, name)
		if details := recordingDetails(e.fs, dir, name); details != "" {
			fmt.Printf("     %s\n", details)
		}
	}
	return nil
}

// recordingDetails describes a recording from its sidecar, or returns ""
// when there is none.
func recordingDetails(fs ports.FileSystem, dir, name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	meta, err := recorder.ReadMetadata(fs, filepath.Join(dir, stem+".json"))
	if err != nil {
		return ""
	}
	return l10n.F("%dx%d, %.1fs, %d frames, recorded %s",
		meta.Width, meta.Height, meta.DurationSecs, meta.Frames, meta.Timestamp)
}

func playCommand() *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     l10n.T("Play a recording"),
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			dirFlag(),
			&cli.BoolFlag{
				Name:  "loop",
				Usage: l10n.T("Restart at the end of the file until stopped"),
			},
		},
		Action: runPlay,
	}
}

func runPlay(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New(l10n.T("File name of the recording is required"))
	}
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	path := filepath.Join(recordingsDir(c, e), c.Args().First())

	fmt.Println(l10n.F("Loading video: %s", path))
	popts := e.playbackOptions()
	src, err := playback.Open(path, e.cfg.Playback.Loop, popts)
	if err != nil {
		return err
	}
	defer src.Stop()
	if dec := decoderSummary(popts.Decoders); dec != "" {
		fmt.Println(l10n.F("Decoder: %s", dec))
	}

	if n := src.FrameCount(); n > 0 && src.FPS() > 0 {
		fmt.Println(l10n.F("Video duration: %.2f seconds", float64(n)/src.FPS()))
	}

	ctx, stop := signalContext()
	defer stop()

	fps := src.FPS()
	if fps <= 0 {
		fps = float64(e.cfg.FPS)
	}
	interval := time.Duration(float64(time.Second) / fps)
	lastReport := time.Now()
	for ctx.Err() == nil && !src.IsFinished() {
		if _, err := src.NextFrame(); err != nil {
			return err
		}
		if time.Since(lastReport) >= time.Second {
			lastReport = time.Now()
			fmt.Println(l10n.F("Playing: %.0f%% (frame %d/%d)", src.Progress()*100, src.CurrentFrame(), src.FrameCount()))
		}
		time.Sleep(interval)
	}

	fmt.Println(l10n.F("Playback finished: %d frames", src.CurrentFrame()))
	return nil
}

func simulateCommand() *cli.Command {
	return &cli.Command{
		Name:  "simulate",
		Usage: l10n.T("Replay two recordings as a stereo pair"),
		Flags: []cli.Flag{
			dirFlag(),
			fpsFlag(),
			durationFlag("Simulation duration in seconds"),
		},
		Action: runSimulate,
	}
}

func runSimulate(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	dir := recordingsDir(c, e)

	popts := e.playbackOptions()
	stereo, err := playback.LoadFromDirectory(dir, popts)
	if err != nil {
		return err
	}
	defer stereo.Close()
	if dec := decoderSummary(popts.Decoders); dec != "" {
		fmt.Println(l10n.F("Decoder: %s", dec))
	}

	ctx, stop := signalContext()
	defer stop()
	e.serveStatus(ctx, nil, stereo)

	snap := e.snapshotter()
	left, right := stereo.Source(playback.Left), stereo.Source(playback.Right)

	duration := e.cfg.Duration()
	interval := time.Duration(1000/e.cfg.FPS) * time.Millisecond
	fmt.Println(l10n.F("Simulating stereo cameras for %d seconds...", e.cfg.DurationSec))

	start := time.Now()
	lastReport := start
	frames := 0
	for ctx.Err() == nil && (duration <= 0 || time.Since(start) < duration) {
		l, r, err := stereo.BothFrames()
		if err != nil {
			fmt.Fprintln(os.Stderr, l10n.F("Could not read frame: %v", err))
		} else {
			frames++
		}
		if time.Since(lastReport) >= time.Second {
			lastReport = time.Now()
			fmt.Println(stereo.Status())
			_ = snap.Save("stereo",
				panel(l, left.Size(), filepath.Base(left.Path())),
				panel(r, right.Size(), filepath.Base(right.Path())))
		}
		time.Sleep(interval)
	}

	fmt.Println()
	fmt.Println(l10n.F("Simulation finished: %d frame pairs", frames))
	fmt.Println(stereo.Status())
	return nil
}
