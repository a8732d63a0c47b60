package playback

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/user/camrecord/pkg/ports"
)

// Extensions are the container types treated as recordings.
var Extensions = []string{".mp4", ".avi", ".mkv"}

// IsRecording reports whether name has a recording extension.
func IsRecording(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ListRecordings returns the sorted file names of recordings in dir.
// A missing directory yields an empty list.
func ListRecordings(fs ports.FileSystem, dir string) ([]string, error) {
	exists, err := fs.Exists(dir)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []string{}, nil
	}
	names, err := fs.ListDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if IsRecording(n) {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out, nil
}
