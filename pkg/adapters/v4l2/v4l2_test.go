package v4l2

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/camrecord/pkg/ports"
)

const bayerFormats = `ioctl: VIDIOC_ENUM_FMT
	Type: Video Capture

	[0]: 'RGGB' (8-bit Bayer RGRG/GBGB)
	[1]: 'RG10' (10-bit Bayer RGRG/GBGB)
`

const yuyvFormats = `ioctl: VIDIOC_ENUM_FMT
	Type: Video Capture

	[0]: 'YUYV' (YUYV 4:2:2)
	[1]: 'MJPG' (Motion-JPEG, compressed)
`

const cardInfo = `Driver Info:
	Driver name      : uvcvideo
	Card type        : HD Pro Webcam C920
	Bus info         : usb-0000:00:14.0-1
`

func TestParseBayerLayout(t *testing.T) {
	cases := map[string]struct {
		out    string
		layout ports.BayerLayout
		bayer  bool
	}{
		"rggb":    {bayerFormats, ports.BayerRGGB, true},
		"bggr":    {"[0]: 'BGGR' (8-bit Bayer BGBG/GRGR)", ports.BayerBGGR, true},
		"grbg":    {"[0]: 'GRBG'", ports.BayerGRBG, true},
		"gbrg":    {"[0]: 'GBRG'", ports.BayerGBRG, true},
		"generic": {"[0]: 'XXXX' (Bayer something)", ports.BayerRGGB, true},
		"rg16":    {"[0]: 'RG16'", ports.BayerRGGB, true},
		"yuyv":    {yuyvFormats, "", false},
	}
	for name, c := range cases {
		layout, ok := ParseBayerLayout(c.out)
		if ok != c.bayer || layout != c.layout {
			t.Errorf("%s: expected (%q, %v), got (%q, %v)", name, c.layout, c.bayer, layout, ok)
		}
	}
}

func TestParseCardName(t *testing.T) {
	if got := ParseCardName(cardInfo); got != "HD Pro Webcam C920" {
		t.Errorf("unexpected card name %q", got)
	}
	if got := ParseCardName("nothing here"); got != "" {
		t.Errorf("expected empty name, got %q", got)
	}
}

func fakeRunner(outputs map[string]string) Runner {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		key := strings.Join(args, " ")
		if out, ok := outputs[key]; ok {
			return []byte(out), nil
		}
		return nil, errors.New("no such device")
	}
}

func TestProber_ProbeUnreadableIsNotBayer(t *testing.T) {
	p := NewWithRunner(fakeRunner(nil))
	res, err := p.Probe(3)
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if res.Bayer {
		t.Error("expected non-Bayer for unreadable device")
	}
}

func TestProber_List(t *testing.T) {
	dev := t.TempDir()
	for _, name := range []string{"video2", "video0", "video-meta"} {
		os.WriteFile(filepath.Join(dev, name), nil, 0644)
	}

	p := NewWithRunner(fakeRunner(map[string]string{
		"--device " + filepath.Join(dev, "video0") + " --info":         cardInfo,
		"--device " + filepath.Join(dev, "video0") + " --list-formats": yuyvFormats,
		"--device " + filepath.Join(dev, "video2") + " --list-formats": bayerFormats,
	}))
	p.DevDir = dev

	devices, err := p.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("expected 2 devices, got %d", len(devices))
	}
	if devices[0].Index != 0 || devices[0].Name != "HD Pro Webcam C920" || devices[0].Bayer {
		t.Errorf("unexpected device 0: %+v", devices[0])
	}
	if devices[1].Index != 2 || devices[1].Name != "video2" || !devices[1].Bayer || devices[1].Layout != ports.BayerRGGB {
		t.Errorf("unexpected device 2: %+v", devices[1])
	}
}
