package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/camrecord/pkg/juxtapose"
	"github.com/user/camrecord/pkg/orchestrator"
	"github.com/user/camrecord/pkg/ports"
	"github.com/user/camrecord/pkg/summarizer"
)

func dualRecordCommand() *cli.Command {
	return &cli.Command{
		Name:  "dual-record",
		Usage: l10n.T("Record two sources at once"),
		Description: l10n.T("Record two real cameras (--left, --right), two virtual cameras (--virtual) " +
			"or the recordings of a directory (--playback). A session summary is written next to the recordings."),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "left",
				Usage: l10n.T("Left camera index"),
				Value: -1,
			},
			&cli.IntFlag{
				Name:  "right",
				Usage: l10n.T("Right camera index"),
				Value: -1,
			},
			&cli.BoolFlag{
				Name:  "virtual",
				Usage: l10n.T("Use virtual cameras"),
			},
			&cli.StringFlag{
				Name:  "playback",
				Usage: l10n.T("Replay the recordings in this directory"),
			},
			outputFlag(),
			fpsFlag(),
			durationFlag("Recording duration in seconds (0 = until interrupted)"),
		},
		Action: runDualRecord,
	}
}

// sourceSpec maps the source flags to a SourceSpec.
func sourceSpec(c *cli.Context) (orchestrator.SourceSpec, error) {
	left, right := c.Int("left"), c.Int("right")
	switch {
	case c.String("playback") != "":
		return orchestrator.PlaybackSources(c.String("playback")), nil
	case c.Bool("virtual") && left >= 0:
		return orchestrator.MixedSources(left, true), nil
	case c.Bool("virtual") && right >= 0:
		return orchestrator.MixedSources(right, false), nil
	case c.Bool("virtual"):
		return orchestrator.VirtualSources(), nil
	case left >= 0 && right >= 0:
		return orchestrator.RealSources(left, right), nil
	default:
		return orchestrator.SourceSpec{}, errors.New(l10n.T("Specify --left and --right, --virtual or --playback"))
	}
}

func runDualRecord(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	spec, err := sourceSpec(c)
	if err != nil {
		return err
	}
	ropts, err := e.recorderOptions()
	if err != nil {
		return err
	}

	dual := orchestrator.New(e.cfg.ToOrchestratorConfig(), orchestrator.Deps{
		Sources: &orchestrator.Sources{
			CameraOptions:   e.cameraOptions(),
			PlaybackOptions: e.playbackOptions(),
		},
		Recorder: ropts,
		Metrics:  e.metrics,
		Reporter: summarizer.NewReporter(e.fs),
		Logger:   e.log,
	})

	ctx, stop := signalContext()
	defer stop()
	e.serveStatus(ctx, dual, nil)

	if err := dual.StartRecording(spec, e.cfg.OutputDir, e.cfg.FPS, e.cfg.Duration()); err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		dual.Wait()
		close(done)
	}()

	snap := e.snapshotter()
	size := e.cfg.Size()
	tick := time.NewTicker(time.Second)
	defer tick.Stop()

wait:
	for {
		select {
		case <-done:
			break wait
		case <-ctx.Done():
			fmt.Println()
			fmt.Println(l10n.T("Stopping recording..."))
			dual.StopRecording()
			<-done
			break wait
		case <-tick.C:
			st := dual.Status()
			fmt.Println(l10n.F("Recorded: left %d, right %d frames", st.Frames[orchestrator.Left], st.Frames[orchestrator.Right]))
			saveDualSnapshot(snap, dual, spec, size)
		}
	}

	result, ok := dual.LastSession()
	if !ok {
		return nil
	}
	if result.Err != nil {
		return result.Err
	}
	printSession(result)
	if enc := encoderSummary(ropts.Encoders); enc != "" {
		fmt.Println(l10n.F("  Encoder: %s", enc))
	}
	return nil
}

// saveDualSnapshot saves the newest frame pair. Playback sides may have
// their own size; those frames are only shown when they match.
func saveDualSnapshot(snap *juxtapose.Snapshotter, dual *orchestrator.DualRecorder, spec orchestrator.SourceSpec, size ports.Dimension) {
	left, right := dual.LeftFrame(), dual.RightFrame()
	if len(left) != size.FrameBytes() {
		left = nil
	}
	if len(right) != size.FrameBytes() {
		right = nil
	}
	_ = snap.Save("dual",
		panel(left, size, fmt.Sprintf("%s: %d", orchestrator.Left, spec.Left)),
		panel(right, size, fmt.Sprintf("%s: %d", orchestrator.Right, spec.Right)))
}

func printSession(r orchestrator.SessionResult) {
	fmt.Println(l10n.T("Recording complete!"))
	fmt.Println(l10n.F("  Session: %s", r.ID))
	for _, m := range r.Recordings {
		fmt.Println(l10n.F("  File: %s", m.Filename))
		fmt.Println(l10n.F("  Duration: %.2fs", m.DurationSecs))
		fmt.Println(l10n.F("  Frames: %d", m.Frames))
	}
	for i := range r.Dropped {
		if r.Dropped[i] > 0 {
			fmt.Println(l10n.F("  Skipped on %s: %d", orchestrator.Side(i), r.Dropped[i]))
		}
	}
	for _, err := range r.FinalizeErrors {
		fmt.Println(l10n.F("  Error: %v", err))
	}
	fmt.Println(l10n.F("  Summary: %s", summarizer.FileName(r.ID)))
}
