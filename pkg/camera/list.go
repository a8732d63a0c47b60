package camera

import (
	"fmt"
	"sort"

	"github.com/user/camrecord/pkg/ports"
)

// ListDevices merges the prober's listing with devices reported by other
// backends. Entries with the same index are combined: the prober's Bayer
// classification wins, and a name from extra replaces a bare node name.
func ListDevices(prober ports.DeviceProber, extra []ports.DeviceInfo) ([]ports.DeviceInfo, error) {
	byIndex := make(map[int]ports.DeviceInfo)
	if prober != nil {
		devices, err := prober.List()
		if err != nil {
			return nil, err
		}
		for _, d := range devices {
			byIndex[d.Index] = d
		}
	}
	for _, e := range extra {
		d, ok := byIndex[e.Index]
		if !ok {
			byIndex[e.Index] = e
			continue
		}
		if e.Name != "" && (d.Name == "" || d.Name == nodeName(d)) {
			d.Name = e.Name
		}
		byIndex[e.Index] = d
	}

	out := make([]ports.DeviceInfo, 0, len(byIndex))
	for _, d := range byIndex {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

func nodeName(d ports.DeviceInfo) string {
	return fmt.Sprintf("video%d", d.Index)
}
