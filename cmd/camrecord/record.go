package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/camrecord/pkg/adapters/mediacam"
	"github.com/user/camrecord/pkg/camera"
	"github.com/user/camrecord/pkg/juxtapose"
	"github.com/user/camrecord/pkg/ports"
	"github.com/user/camrecord/pkg/recorder"
	"github.com/user/camrecord/pkg/virtualcam"
)

func listCamerasCommand() *cli.Command {
	return &cli.Command{
		Name:   "list-cameras",
		Usage:  l10n.T("List all available real cameras"),
		Action: runListCameras,
	}
}

func runListCameras(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	fmt.Println(l10n.T("Searching for available cameras..."))
	devices, err := camera.ListDevices(e.prober(), mediacam.ListDevices())
	if err != nil {
		e.log.Warn("Probe failed, assuming standard camera: %v", err)
		devices, _ = camera.ListDevices(nil, mediacam.ListDevices())
	}

	if len(devices) == 0 {
		fmt.Println(l10n.T("No cameras found!"))
		return nil
	}
	fmt.Println(l10n.T("Found cameras:"))
	for _, d := range devices {
		line := l10n.F("  - Camera %d", d.Index)
		if d.Name != "" {
			line += ": " + d.Name
		}
		if d.Bayer {
			line += fmt.Sprintf(" [Bayer %s]", strings.ToUpper(string(d.Layout)))
		}
		fmt.Println(line)
	}
	return nil
}

func recordCommand() *cli.Command {
	return &cli.Command{
		Name:  "record",
		Usage: l10n.T("Record from a real camera"),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "camera",
				Aliases:  []string{"c"},
				Usage:    l10n.T("Camera index (0, 1, ...)"),
				Required: true,
			},
			outputFlag(),
			fpsFlag(),
			durationFlag("Recording duration in seconds"),
		},
		Action: runRecord,
	}
}

func runRecord(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	index := c.Int("camera")

	fmt.Println(l10n.F("Opening camera %d...", index))
	cam, err := camera.Open(index, e.cameraOptions())
	if err != nil {
		return err
	}
	if err := cam.Start(); err != nil {
		_ = cam.Stop()
		return err
	}
	if cam.IsBayer() {
		fmt.Println(l10n.T("Raw sensor detected, debayering in GStreamer"))
	} else {
		fmt.Println(l10n.F("Standard camera via %s", cam.Backend()))
	}

	interval := time.Duration(1000/e.cfg.FPS) * time.Millisecond
	return e.recordSingle(cam, index, func() { time.Sleep(interval) })
}

func simRecordCommand() *cli.Command {
	return &cli.Command{
		Name:  "sim-record",
		Usage: l10n.T("Start a virtual camera and record it"),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "camera",
				Aliases: []string{"c"},
				Usage:   l10n.T("Virtual camera ID (0 or 1)"),
			},
			outputFlag(),
			fpsFlag(),
			durationFlag("Recording duration in seconds"),
		},
		Action: runSimRecord,
	}
}

func runSimRecord(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	id := c.Int("camera")
	if id < 0 || id > 1 {
		return errors.New(l10n.T("Virtual camera ID must be 0 or 1"))
	}

	fmt.Println(l10n.F("Starting virtual camera %d...", id))
	vcam, err := virtualcam.New(id, e.cfg.Width, e.cfg.Height, e.cfg.FPS)
	if err != nil {
		return err
	}
	if err := vcam.Start(); err != nil {
		return err
	}
	return e.recordSingle(vcam, id, vcam.Pace)
}

// recordSingle records one started source until the configured duration
// elapses or the user interrupts, then stops it and finalizes.
func (e *env) recordSingle(src ports.FrameSource, id int, pace func()) error {
	ropts, err := e.recorderOptions()
	if err != nil {
		_ = src.Stop()
		return err
	}
	size := src.Size()
	rec, err := recorder.New(id, size.Width, size.Height, e.cfg.FPS, e.cfg.OutputDir, ropts)
	if err != nil {
		_ = src.Stop()
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	fmt.Println(l10n.F("Recording for %d seconds...", e.cfg.DurationSec))
	frames, loopErr := captureLoop(ctx, src, rec, pace, e.cfg.Duration(), func(n int) {
		if n%30 == 0 {
			fmt.Println(l10n.F("Recorded: %d frames", n))
		}
	})
	if ctx.Err() != nil {
		fmt.Println()
		fmt.Println(l10n.T("Stopping recording..."))
	}

	if err := src.Stop(); err != nil {
		e.log.Warn("Could not stop %s source: %v", fmt.Sprintf("camera %d", id), err)
	}
	meta, err := rec.Finalize()
	if loopErr != nil {
		return loopErr
	}
	if err != nil {
		return err
	}

	fmt.Println(l10n.T("Recording complete!"))
	printRecording(meta, frames)
	if enc := encoderSummary(ropts.Encoders); enc != "" {
		fmt.Println(l10n.F("  Encoder: %s", enc))
	}
	return nil
}

// captureLoop copies frames from src to rec until duration elapses (zero
// means until ctx is cancelled). Read errors are reported and skipped;
// a write error ends the loop.
func captureLoop(ctx context.Context, src ports.FrameSource, rec *recorder.Recorder, pace func(), duration time.Duration, onFrame func(n int)) (int, error) {
	start := time.Now()
	frames := 0
	for ctx.Err() == nil {
		if duration > 0 && time.Since(start) >= duration {
			break
		}
		frame, err := src.NextFrame()
		if err != nil {
			fmt.Fprintln(os.Stderr, l10n.F("Could not read frame: %v", err))
		} else {
			if err := rec.WriteFrame(frame); err != nil {
				return frames, err
			}
			frames++
			onFrame(frames)
		}
		pace()
	}
	return frames, nil
}

func printRecording(meta recorder.Metadata, frames int) {
	fmt.Println(l10n.F("  File: %s", meta.Filename))
	fmt.Println(l10n.F("  Duration: %.2fs", meta.DurationSecs))
	fmt.Println(l10n.F("  Frames: %d", frames))
}

func testVirtualCommand() *cli.Command {
	return &cli.Command{
		Name:  "test-virtual",
		Usage: l10n.T("Test two virtual cameras"),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "duration",
				Aliases: []string{"t"},
				Usage:   l10n.T("Test duration in seconds"),
				Value:   5,
			},
		},
		Action: runTestVirtual,
	}
}

func runTestVirtual(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	// The test length is its own flag; the recording duration from the
	// configuration does not apply.
	duration := time.Duration(c.Int("duration")) * time.Second

	fmt.Println(l10n.T("Starting test with two virtual cameras..."))
	left, right, err := virtualcam.Pair(e.cfg.Width, e.cfg.Height, e.cfg.FPS)
	if err != nil {
		return err
	}
	cams := []*virtualcam.Camera{left, right}

	fmt.Println(l10n.T("Virtual cameras created:"))
	for _, cam := range cams {
		size := cam.Size()
		fmt.Println(l10n.F("  - Camera %d (%dx%d @ %d FPS)", cam.ID(), size.Width, size.Height, cam.FPS()))
		_ = cam.Start()
	}

	ctx, stop := signalContext()
	defer stop()

	snap := e.snapshotter()
	tick, stopTick := every(time.Second)
	defer stopTick()

	fmt.Println()
	fmt.Println(l10n.F("Generating frames for %d seconds...", c.Int("duration")))
	counts := make([]int, len(cams))
	last := make([][]byte, len(cams))
	start := time.Now()
	for ctx.Err() == nil && time.Since(start) < duration {
		for i, cam := range cams {
			frame, err := cam.NextFrame()
			if err != nil {
				fmt.Fprintln(os.Stderr, l10n.F("Error on camera %d: %v", i, err))
				continue
			}
			counts[i]++
			last[i] = frame
		}
		select {
		case <-tick:
			_ = snap.Save("virtual", panel(last[0], left.Size(), "camera 0"), panel(last[1], right.Size(), "camera 1"))
		default:
		}
		time.Sleep(left.FrameInterval())
	}

	fmt.Println()
	fmt.Println(l10n.T("Test complete!"))
	for i, n := range counts {
		fmt.Println(l10n.F("  Camera %d: %d frames generated", i, n))
	}
	return nil
}

func panel(frame []byte, size ports.Dimension, label string) juxtapose.Panel {
	return juxtapose.Panel{Frame: frame, Size: size, Label: label}
}
