// Package v4l2 inspects Video4Linux devices through the v4l2-ctl tool.
package v4l2

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/user/camrecord/pkg/ports"
)

// DefaultTool is the v4l2-ctl binary looked up on PATH.
const DefaultTool = "v4l2-ctl"

// Runner executes a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Prober implements ports.DeviceProber.
type Prober struct {
	// Tool is the v4l2-ctl binary. Empty means DefaultTool.
	Tool string
	// DevDir holds the videoN device nodes. Empty means /dev.
	DevDir string
	// Timeout bounds each v4l2-ctl invocation.
	Timeout time.Duration

	run Runner
}

// New creates a Prober that shells out to v4l2-ctl.
func New() *Prober {
	return &Prober{run: execRunner}
}

// NewWithRunner creates a Prober with a custom command runner.
func NewWithRunner(run Runner) *Prober {
	return &Prober{run: run}
}

func (p *Prober) tool() string {
	if p.Tool != "" {
		return p.Tool
	}
	return DefaultTool
}

func (p *Prober) devDir() string {
	if p.DevDir != "" {
		return p.DevDir
	}
	return "/dev"
}

// DevicePath returns the node for a device index.
func (p *Prober) DevicePath(index int) string {
	return filepath.Join(p.devDir(), fmt.Sprintf("video%d", index))
}

func (p *Prober) ctl(args ...string) (string, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	out, err := p.run(ctx, p.tool(), args...)
	return string(out), err
}

// Probe lists the pixel formats of a device and classifies it.
// A device that v4l2-ctl cannot inspect is reported as non-Bayer.
func (p *Prober) Probe(index int) (ports.ProbeResult, error) {
	out, err := p.ctl("--device", p.DevicePath(index), "--list-formats")
	if err != nil {
		return ports.ProbeResult{}, nil
	}
	layout, ok := ParseBayerLayout(out)
	return ports.ProbeResult{Bayer: ok, Layout: layout}, nil
}

// List enumerates videoN nodes sorted by index.
func (p *Prober) List() ([]ports.DeviceInfo, error) {
	matches, err := filepath.Glob(filepath.Join(p.devDir(), "video*"))
	if err != nil {
		return nil, err
	}

	var devices []ports.DeviceInfo
	for _, path := range matches {
		index, err := strconv.Atoi(strings.TrimPrefix(filepath.Base(path), "video"))
		if err != nil {
			continue
		}
		info := ports.DeviceInfo{Index: index, Path: path, Name: fmt.Sprintf("video%d", index)}
		if out, err := p.ctl("--device", path, "--info"); err == nil {
			if name := ParseCardName(out); name != "" {
				info.Name = name
			}
		}
		if res, err := p.Probe(index); err == nil {
			info.Bayer = res.Bayer
			info.Layout = res.Layout
		}
		devices = append(devices, info)
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i].Index < devices[j].Index })
	return devices, nil
}

// ParseBayerLayout looks for a Bayer pixel format in --list-formats output.
// Specific layouts are checked in a fixed order; a generic Bayer or 16-bit
// RG format maps to rggb.
func ParseBayerLayout(listFormats string) (ports.BayerLayout, bool) {
	lower := strings.ToLower(listFormats)
	for _, layout := range []ports.BayerLayout{ports.BayerRGGB, ports.BayerBGGR, ports.BayerGRBG, ports.BayerGBRG} {
		if strings.Contains(lower, string(layout)) {
			return layout, true
		}
	}
	if strings.Contains(lower, "bayer") || strings.Contains(lower, "rg16") {
		return ports.BayerRGGB, true
	}
	return "", false
}

// ParseCardName extracts the "Card type" line of --info output.
func ParseCardName(info string) string {
	for _, line := range strings.Split(info, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if ok && strings.TrimSpace(key) == "Card type" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

var _ ports.DeviceProber = (*Prober)(nil)
