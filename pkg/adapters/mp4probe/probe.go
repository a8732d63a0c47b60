// Package mp4probe reads codec, geometry and timing facts from MP4
// recordings without decoding any video.
package mp4probe

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Eyevinn/mp4ff/mp4"
	"github.com/user/camrecord/pkg/ports"
)

// Codec names reported in ports.MediaInfo.
const (
	CodecH264    = "h264"
	CodecH265    = "h265"
	CodecAV1     = "av1"
	CodecUnknown = "unknown"
)

// ErrNoVideoTrack is returned when the file has no video track.
var ErrNoVideoTrack = errors.New("mp4probe: no video track found")

// Prober implements ports.MediaProber for MP4 files.
type Prober struct{}

// New creates a new Prober.
func New() *Prober {
	return &Prober{}
}

// Probe opens path and reads its container metadata.
func (p *Prober) Probe(path string) (ports.MediaInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return ProbeReader(f)
}

// ProbeReader reads container metadata from an io.ReadSeeker.
// Progressive files are read lazily so mdat payloads are never loaded.
func ProbeReader(r io.ReadSeeker) (ports.MediaInfo, error) {
	file, err := mp4.DecodeFile(r, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("decode mp4: %w", err)
	}

	if file.IsFragmented() {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return ports.MediaInfo{}, fmt.Errorf("seek: %w", err)
		}
		file, err = mp4.DecodeFile(r)
		if err != nil {
			return ports.MediaInfo{}, fmt.Errorf("decode mp4: %w", err)
		}
		return probeFragmented(file)
	}
	return probeProgressive(file)
}

func findVideoTrack(moov *mp4.MoovBox) *mp4.TrakBox {
	if moov == nil {
		return nil
	}
	for _, trak := range moov.Traks {
		if trak.Mdia != nil && trak.Mdia.Hdlr != nil && trak.Mdia.Hdlr.HandlerType == "vide" {
			return trak
		}
	}
	return nil
}

// describeTrack fills codec, dimensions and timescale from the sample entry.
func describeTrack(trak *mp4.TrakBox) (ports.MediaInfo, uint32) {
	info := ports.MediaInfo{Codec: CodecUnknown}
	timescale := uint32(1000)
	if trak.Mdia.Mdhd != nil && trak.Mdia.Mdhd.Timescale != 0 {
		timescale = trak.Mdia.Mdhd.Timescale
	}
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return info, timescale
	}
	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		switch child.Type() {
		case "avc1", "avc3":
			info.Codec = CodecH264
		case "hvc1", "hev1":
			info.Codec = CodecH265
		case "av01":
			info.Codec = CodecAV1
		}
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
			info.Width = int(vse.Width)
			info.Height = int(vse.Height)
		}
	}
	return info, timescale
}

func probeProgressive(file *mp4.File) (ports.MediaInfo, error) {
	trak := findVideoTrack(file.Moov)
	if trak == nil {
		return ports.MediaInfo{}, ErrNoVideoTrack
	}
	info, timescale := describeTrack(trak)

	if stbl := trak.Mdia.Minf.Stbl; stbl != nil && stbl.Stsz != nil {
		info.FrameCount = int(stbl.Stsz.SampleNumber)
	}
	if trak.Mdia.Mdhd != nil {
		info.Duration = ticksToDuration(trak.Mdia.Mdhd.Duration, timescale)
	}
	info.FPS = frameRate(info.FrameCount, info.Duration)
	return info, nil
}

func probeFragmented(file *mp4.File) (ports.MediaInfo, error) {
	if file.Init == nil {
		return ports.MediaInfo{}, ErrNoVideoTrack
	}
	trak := findVideoTrack(file.Init.Moov)
	if trak == nil {
		return ports.MediaInfo{}, ErrNoVideoTrack
	}
	info, timescale := describeTrack(trak)

	trackID := trak.Tkhd.TrackID
	var trex *mp4.TrexBox
	if file.Init.Moov.Mvex != nil {
		for _, t := range file.Init.Moov.Mvex.Trexs {
			if t.TrackID == trackID {
				trex = t
			}
		}
	}

	var ticks uint64
	for _, seg := range file.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			samples, err := frag.GetFullSamples(trex)
			if err != nil {
				return ports.MediaInfo{}, fmt.Errorf("get samples: %w", err)
			}
			for _, s := range samples {
				ticks += uint64(s.Dur)
			}
			info.FrameCount += len(samples)
		}
	}
	info.Duration = ticksToDuration(ticks, timescale)
	info.FPS = frameRate(info.FrameCount, info.Duration)
	return info, nil
}

func ticksToDuration(ticks uint64, timescale uint32) time.Duration {
	if timescale == 0 {
		return 0
	}
	return time.Duration(ticks * uint64(time.Second) / uint64(timescale))
}

func frameRate(frames int, d time.Duration) float64 {
	if frames == 0 || d <= 0 {
		return 0
	}
	return float64(frames) / d.Seconds()
}

var _ ports.MediaProber = (*Prober)(nil)
