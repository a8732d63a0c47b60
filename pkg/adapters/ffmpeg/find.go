// Package ffmpeg drives an ffmpeg child process to encode raw RGB frames
// into MP4 files and to decode recordings back into raw RGB frames.
package ffmpeg

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"
)

var (
	pathMu     sync.RWMutex
	customPath string
)

// SetFFmpegPath overrides the ffmpeg lookup. An empty path restores the
// default search.
func SetFFmpegPath(path string) {
	pathMu.Lock()
	defer pathMu.Unlock()
	customPath = path
}

// IsAvailable reports whether an ffmpeg binary can be found.
func IsAvailable() bool {
	_, err := FindFFmpeg()
	return err == nil
}

// FindFFmpeg searches for ffmpeg.
// Priority: 1) SetFFmpegPath, 2) FFMPEG_PATH env, 3) PATH, 4) common locations.
func FindFFmpeg() (string, error) {
	pathMu.RLock()
	custom := customPath
	pathMu.RUnlock()

	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFmpegNotFound, custom)
	}

	if envPath := os.Getenv("FFMPEG_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: FFMPEG_PATH %s not found", ErrFFmpegNotFound, envPath)
	}

	execName := "ffmpeg"
	if runtime.GOOS == "windows" {
		execName = "ffmpeg.exe"
	}
	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	for _, p := range commonLocations() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", ErrFFmpegNotFound
}

func commonLocations() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
		}
	case "darwin":
		return []string{
			"/opt/homebrew/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/usr/bin/ffmpeg",
		}
	default:
		return []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/snap/bin/ffmpeg",
		}
	}
}
