package playback

import (
	"errors"
	"fmt"
)

// Status is the transport state of the loaded clip
type Status int

const (
	StatusUnloaded Status = iota
	StatusNotStarted
	StatusPlaying
	StatusPaused
	StatusFinished
)

var ErrNotLoaded = errors.New("no clip loaded")

func (s Status) String() string {
	switch s {
	case StatusUnloaded:
		return "unloaded"
	case StatusNotStarted:
		return "not-started"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusFinished:
		return "finished"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Label is the text shown next to the transport controls
func (s Status) Label() string {
	switch s {
	case StatusPlaying:
		return "Playing"
	case StatusPaused:
		return "Paused"
	case StatusFinished:
		return "Finished"
	default:
		return "Not started"
	}
}

// Media is the audio subsystem the controller drives. Implementations report
// progress back through MediaEvents tagged with the URI they were loaded with.
type Media interface {
	Load(uri string) error
	Play() error
	Pause() error
	SetPosition(seconds float64) error
}

// EventKind identifies what the media subsystem is reporting
type EventKind int

const (
	MetadataLoaded EventKind = iota
	TimeUpdate
	Ended
)

// MediaEvent is a notification from the media subsystem
type MediaEvent struct {
	Kind     EventKind
	URI      string
	Duration float64 // MetadataLoaded
	Position float64 // TimeUpdate
}

// Controller keeps the transport and timeline in step with the media resource.
// Not safe for concurrent use.
type Controller struct {
	media Media

	uri            string
	status         Status
	duration       float64
	durationKnown  bool
	metadataLoaded bool
	elapsed        float64
	percent        float64
}

// NewController creates a controller driving media
func NewController(media Media) *Controller {
	return &Controller{media: media}
}

// Load binds a new clip and rebuilds all playback state
func (c *Controller) Load(uri string) error {
	c.uri = uri
	c.status = StatusUnloaded
	c.duration = 0
	c.durationKnown = false
	c.metadataLoaded = false
	c.elapsed = 0
	c.percent = 0

	if err := c.media.Load(uri); err != nil {
		return fmt.Errorf("loading %s: %w", uri, err)
	}
	return nil
}

// Play restarts the clip from zero
func (c *Controller) Play() error {
	if c.uri == "" {
		return ErrNotLoaded
	}
	if err := c.media.SetPosition(0); err != nil {
		return fmt.Errorf("rewinding: %w", err)
	}
	if err := c.media.Play(); err != nil {
		return fmt.Errorf("starting playback: %w", err)
	}
	c.status = StatusPlaying
	c.setElapsed(0)
	return nil
}

// TogglePauseResume pauses a playing clip or resumes a stopped one. A finished
// clip is rewound first. Does nothing until metadata has loaded.
func (c *Controller) TogglePauseResume() error {
	if !c.metadataLoaded {
		return nil
	}

	switch c.status {
	case StatusPlaying:
		if err := c.media.Pause(); err != nil {
			return fmt.Errorf("pausing: %w", err)
		}
		c.status = StatusPaused
	case StatusFinished:
		if err := c.media.SetPosition(0); err != nil {
			return fmt.Errorf("rewinding: %w", err)
		}
		c.setElapsed(0)
		fallthrough
	default:
		if err := c.media.Play(); err != nil {
			return fmt.Errorf("resuming: %w", err)
		}
		c.status = StatusPlaying
	}
	return nil
}

// Seek jumps to ratio of the duration. The ratio is clamped to [0,1]; nothing
// happens while the duration is unknown or zero.
func (c *Controller) Seek(ratio float64) error {
	if !c.durationKnown || c.duration <= 0 {
		return nil
	}

	position := clamp(finite(ratio), 0, 1) * c.duration
	if err := c.media.SetPosition(position); err != nil {
		return fmt.Errorf("seeking: %w", err)
	}
	c.setElapsed(position)

	// A seek out of the end state leaves the clip paused at the new position
	if c.status == StatusFinished {
		c.status = StatusPaused
	}
	return nil
}

// HandleMediaEvent applies a notification from the media subsystem.
// Events for a clip other than the bound one are dropped.
func (c *Controller) HandleMediaEvent(ev MediaEvent) {
	if ev.URI != c.uri || c.uri == "" {
		return
	}

	switch ev.Kind {
	case MetadataLoaded:
		c.duration = nonNegative(ev.Duration)
		c.durationKnown = true
		c.metadataLoaded = true
		if c.status == StatusUnloaded {
			c.status = StatusNotStarted
			c.setElapsed(0)
		}
	case TimeUpdate:
		if c.status == StatusFinished {
			return
		}
		c.setElapsed(ev.Position)
	case Ended:
		c.status = StatusFinished
		c.elapsed = c.duration
		c.percent = 100
	}
}

func (c *Controller) setElapsed(position float64) {
	c.elapsed = nonNegative(position)
	if c.duration > 0 {
		c.percent = clamp(c.elapsed/c.duration*100, 0, 100)
	} else {
		c.percent = 0
	}
}

// Status returns the transport state
func (c *Controller) Status() Status {
	return c.status
}

// URI returns the bound clip resource
func (c *Controller) URI() string {
	return c.uri
}

// View is the rendered transport
type View struct {
	Status        Status
	StatusLabel   string
	Elapsed       string
	Total         string
	Percent       float64
	ToggleEnabled bool
	ToggleLabel   string
}

// View builds the current projection
func (c *Controller) View() View {
	total := "End: --:--"
	if c.durationKnown {
		total = "End: " + FormatTime(c.duration)
	}

	return View{
		Status:        c.status,
		StatusLabel:   c.status.Label(),
		Elapsed:       FormatTime(c.elapsed),
		Total:         total,
		Percent:       c.percent,
		ToggleEnabled: c.metadataLoaded,
		ToggleLabel:   c.toggleLabel(),
	}
}

func (c *Controller) toggleLabel() string {
	if !c.metadataLoaded {
		return "Pause / Resume"
	}
	switch c.status {
	case StatusPaused, StatusFinished:
		return "Resume"
	default:
		return "Pause"
	}
}
