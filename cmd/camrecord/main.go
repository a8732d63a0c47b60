// Package main provides the CLI entry point for camrecord.
package main

import (
	"fmt"
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %v", err))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "camrecord",
		Usage:   l10n.T("Camera recording and simulation tool"),
		Version: version,
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			listCamerasCommand(),
			recordCommand(),
			simRecordCommand(),
			dualRecordCommand(),
			listRecordingsCommand(),
			playCommand(),
			simulateCommand(),
			testVirtualCommand(),
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "config",
			Usage:    l10n.T("YAML configuration file"),
			EnvVars:  []string{"CAMRECORD_CONFIG"},
			Category: l10n.T("Configuration"),
		},
		&cli.StringFlag{
			Name:     "log-level",
			Usage:    l10n.T("Log level (debug, info, warn, error)"),
			Category: l10n.T("Logging"),
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Aliases:  []string{"q"},
			Usage:    l10n.T("Suppress all log output"),
			Category: l10n.T("Logging"),
		},
		&cli.BoolFlag{
			Name:     "log-timestamps",
			Usage:    l10n.T("Prefix log lines with the time of day"),
			Category: l10n.T("Logging"),
		},
		&cli.StringFlag{
			Name:     "encoder",
			Usage:    l10n.T("Encoder backend (auto, gstreamer, ffmpeg)"),
			Category: l10n.T("Encoding"),
		},
		&cli.StringFlag{
			Name:     "ffmpeg-path",
			Usage:    l10n.T("Path to the ffmpeg executable"),
			Category: l10n.T("Encoding"),
		},
		&cli.BoolFlag{
			Name:     "no-bayer",
			Usage:    l10n.T("Disable the raw Bayer sensor pipeline"),
			Category: l10n.T("Cameras"),
		},
		&cli.StringFlag{
			Name:     "status-addr",
			Usage:    l10n.T("Serve status and metrics on this address (e.g., :8080)"),
			Category: l10n.T("Monitoring"),
		},
		&cli.StringFlag{
			Name:     "snapshot-dir",
			Usage:    l10n.T("Directory for preview snapshots"),
			Category: l10n.T("Monitoring"),
		},
	}
}

// Per-command flags. Defaults come from the configuration.

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   l10n.T("Output directory"),
	}
}

func dirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "dir",
		Aliases: []string{"d"},
		Usage:   l10n.T("Recordings directory"),
	}
}

func fpsFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "fps",
		Aliases: []string{"f"},
		Usage:   l10n.T("Frames per second"),
	}
}

func durationFlag(usage string) cli.Flag {
	return &cli.IntFlag{
		Name:    "duration",
		Aliases: []string{"t"},
		Usage:   l10n.T(usage),
	}
}
