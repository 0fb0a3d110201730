package session

import (
	"fmt"

	"github.com/killallgit/vad-annotator/internal/playback"
	"github.com/killallgit/vad-annotator/internal/rating"
)

// Screen is the top-level view being shown
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenAnnotation
	ScreenDone
)

func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenAnnotation:
		return "annotation"
	case ScreenDone:
		return "done"
	default:
		return fmt.Sprintf("screen(%d)", int(s))
	}
}

// View is a snapshot of everything a presenter needs. It is rebuilt after
// every state change and never read back into the controller.
type View struct {
	Screen         Screen
	AnnotatorLabel string
	ProgressLabel  string
	ClipName       string
	Rating         rating.View
	Playback       playback.View
	SubmitEnabled  bool
	Busy           bool
}

// view builds the projection. Caller holds c.mu.
func (c *Controller) view() View {
	v := View{
		Screen:   c.screen,
		Rating:   c.ratings.View(),
		Playback: c.player.View(),
		Busy:     c.submitting || c.loggingIn,
	}
	if c.screen == ScreenLogin {
		return v
	}

	v.AnnotatorLabel = "Annotator: " + c.annotatorID
	v.ProgressLabel = progressLabel(c.index, len(c.clips))
	if c.screen == ScreenAnnotation {
		v.ClipName = c.clips[c.index]
		v.SubmitEnabled = c.ratings.Ready() && !c.submitting
	}
	return v
}

func progressLabel(index, total int) string {
	return fmt.Sprintf("Clip %d/%d", min(index+1, total), total)
}
