package ffmpeg

import (
	"fmt"
	"os/exec"
	"time"
)

// FFmpeg wraps the ffprobe and ffplay binaries
type FFmpeg struct {
	ffprobePath string
	ffplayPath  string
	timeout     time.Duration
}

// New creates a new FFmpeg instance
func New(ffprobePath, ffplayPath string, timeout time.Duration) *FFmpeg {
	return &FFmpeg{
		ffprobePath: ffprobePath,
		ffplayPath:  ffplayPath,
		timeout:     timeout,
	}
}

// ValidateBinaries checks if ffprobe and ffplay are available
func (f *FFmpeg) ValidateBinaries() error {
	if _, err := exec.LookPath(f.ffprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFprobeNotFound, f.ffprobePath)
	}
	if _, err := exec.LookPath(f.ffplayPath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFplayNotFound, f.ffplayPath)
	}
	return nil
}

// playArgs builds the ffplay invocation that plays input from offset seconds
// without a window and exits at end of stream
func playArgs(input string, offset float64) []string {
	return []string{
		"-nodisp",
		"-autoexit",
		"-loglevel", "quiet",
		"-ss", fmt.Sprintf("%.3f", offset),
		input,
	}
}
