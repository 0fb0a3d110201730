package session

import (
	"context"
	"fmt"

	"github.com/killallgit/vad-annotator/internal/playback"
	"github.com/killallgit/vad-annotator/internal/rating"
)

// Event is a named input dispatched to the controllers
type Event interface {
	isEvent()
}

type (
	LoginEvent  struct{ AnnotatorID string }
	PlayEvent   struct{}
	ToggleEvent struct{}
	SeekEvent   struct{ Ratio float64 }
	SubmitEvent struct{}

	SelectRatingEvent struct {
		Dimension rating.Dimension
		Value     int
	}

	SetActiveDimensionEvent   struct{ Dimension rating.Dimension }
	CycleActiveDimensionEvent struct{}

	// KeyEvent is a key press; InTextInput is set while focus is in a text field
	KeyEvent struct {
		Key         Key
		InTextInput bool
	}

	// MediaEvent wraps a notification from the media subsystem
	MediaEvent struct{ playback.MediaEvent }
)

func (LoginEvent) isEvent()                {}
func (PlayEvent) isEvent()                 {}
func (ToggleEvent) isEvent()               {}
func (SeekEvent) isEvent()                 {}
func (SelectRatingEvent) isEvent()         {}
func (SetActiveDimensionEvent) isEvent()   {}
func (CycleActiveDimensionEvent) isEvent() {}
func (SubmitEvent) isEvent()               {}
func (KeyEvent) isEvent()                  {}
func (MediaEvent) isEvent()                {}

// Dispatch routes ev to the controller operation it names
func (c *Controller) Dispatch(ctx context.Context, ev Event) error {
	switch e := ev.(type) {
	case LoginEvent:
		return c.Login(ctx, e.AnnotatorID)
	case PlayEvent:
		return c.Play()
	case ToggleEvent:
		return c.TogglePauseResume()
	case SeekEvent:
		return c.Seek(e.Ratio)
	case SelectRatingEvent:
		return c.SelectRating(e.Dimension, e.Value)
	case SetActiveDimensionEvent:
		return c.SetActiveDimension(e.Dimension)
	case CycleActiveDimensionEvent:
		return c.CycleActiveDimension()
	case SubmitEvent:
		return c.Submit(ctx)
	case KeyEvent:
		return c.HandleKey(ctx, e.Key, e.InTextInput)
	case MediaEvent:
		c.HandleMediaEvent(e.MediaEvent)
		return nil
	default:
		return fmt.Errorf("unhandled event %T", ev)
	}
}

// Key is a keyboard key relevant to annotation
type Key rune

const (
	KeySpace Key = ' '
	KeyEnter Key = '\r'
	KeyTab   Key = '\t'
)

// Digit returns the rating for a digit key, or 0 for any other key
func (k Key) Digit() int {
	if k >= '1' && k <= '9' {
		return int(k - '0')
	}
	return 0
}

// HandleKey applies the keyboard protocol: Space replays, 1-9 rates the
// active dimension and advances, Enter submits when allowed, Tab cycles.
// Keys are ignored off the annotation screen and while typing in a text input.
func (c *Controller) HandleKey(ctx context.Context, key Key, inTextInput bool) error {
	if inTextInput || c.Screen() != ScreenAnnotation {
		return nil
	}

	switch {
	case key == KeySpace:
		return c.Play()
	case key == KeyEnter:
		return c.Submit(ctx)
	case key == KeyTab:
		return c.CycleActiveDimension()
	case key.Digit() > 0:
		return c.annotating(func() error {
			return c.ratings.RateActive(key.Digit())
		})
	}
	return nil
}
