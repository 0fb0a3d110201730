package ffmpeg

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrFFprobeNotFound  = errors.New("ffprobe binary not found")
	ErrFFplayNotFound   = errors.New("ffplay binary not found")
	ErrInvalidAudioFile = errors.New("invalid or unsupported audio file")
	ErrPlayerClosed     = errors.New("player closed")
)

// ProcessingError represents a failed ffprobe/ffplay invocation
type ProcessingError struct {
	Operation string // e.g. "metadata_extraction", "playback"
	File      string // the file or URL being processed
	Err       error
	Stderr    string
}

func (e *ProcessingError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("ffmpeg %s failed for %s: %v (stderr: %s)", e.Operation, e.File, e.Err, e.Stderr)
	}
	return fmt.Sprintf("ffmpeg %s failed for %s: %v", e.Operation, e.File, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// NewProcessingError creates a new ProcessingError
func NewProcessingError(operation, file string, err error, stderr string) *ProcessingError {
	return &ProcessingError{
		Operation: operation,
		File:      file,
		Err:       err,
		Stderr:    stderr,
	}
}
