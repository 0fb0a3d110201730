package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/killallgit/vad-annotator/internal/playback"
	"github.com/killallgit/vad-annotator/internal/rating"
	apperrors "github.com/killallgit/vad-annotator/pkg/errors"
)

var ErrNoClips = errors.New("no audio clips available")

// Controller drives one annotator's pass over the clip queue. It owns the
// rating and playback controllers and serialises every event behind one lock.
// Network calls run with the lock released, so playback and rating input
// keep flowing while a request is in flight.
type Controller struct {
	mu sync.Mutex

	backend   Backend
	presenter Presenter
	log       logrus.FieldLogger

	ratings *rating.Controller
	player  *playback.Controller

	screen      Screen
	annotatorID string
	clips       []string
	index       int

	loggingIn  bool
	submitting bool
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the logger used for non-user-facing diagnostics
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// New creates a controller sitting on the login screen
func New(backend Backend, media playback.Media, presenter Presenter, opts ...Option) *Controller {
	c := &Controller{
		backend:   backend,
		presenter: presenter,
		log:       logrus.StandardLogger(),
		ratings:   rating.NewController(),
		player:    playback.NewController(media),
		screen:    ScreenLogin,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login starts a session for annotatorID. Blank ids are ignored. Fetch failures
// and an empty clip queue are alerted and leave the login screen up, so
// calling Login again is the retry path.
func (c *Controller) Login(ctx context.Context, annotatorID string) error {
	annotatorID = strings.TrimSpace(annotatorID)

	c.mu.Lock()
	if annotatorID == "" || c.screen != ScreenLogin || c.loggingIn {
		c.mu.Unlock()
		return nil
	}
	c.loggingIn = true
	c.mu.Unlock()

	clips, progress, err := c.fetchSession(ctx, annotatorID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loggingIn = false

	if err != nil {
		c.log.WithError(err).WithField("annotator", annotatorID).Warn("Login failed")
		if errors.Is(err, ErrNoClips) {
			c.presenter.Alert("No audio clips found in the clip directory.")
		} else {
			c.presenter.Alert("Could not start session: " + apperrors.UserMessage(err, "rating service unavailable"))
		}
		return err
	}

	c.annotatorID = annotatorID
	c.clips = clips
	c.index = clampIndex(progress.NextIndex, len(clips))
	c.log.WithFields(logrus.Fields{
		"annotator": annotatorID,
		"clips":     len(clips),
		"next":      c.index,
	}).Info("Session started")

	c.loadCurrent()
	return nil
}

func (c *Controller) fetchSession(ctx context.Context, annotatorID string) ([]string, Progress, error) {
	clips, err := c.backend.ListClips(ctx)
	if err != nil {
		return nil, Progress{}, fmt.Errorf("listing clips: %w", err)
	}
	if len(clips) == 0 {
		return nil, Progress{}, ErrNoClips
	}

	progress, err := c.backend.GetProgress(ctx, annotatorID)
	if err != nil {
		return nil, Progress{}, fmt.Errorf("fetching progress: %w", err)
	}
	return clips, progress, nil
}

// clampIndex keeps a stored progress index inside [0, total]; anything at or
// past the end means the queue is finished
func clampIndex(next, total int) int {
	return max(0, min(next, total))
}

// Submit persists the current rating vector. It does nothing unless every
// dimension is rated and no submission is already in flight. On failure the
// vector and position are kept and submit is available again.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.screen != ScreenAnnotation || c.submitting || !c.ratings.Ready() {
		c.mu.Unlock()
		return nil
	}
	vector := c.ratings.Vector()
	submission := Submission{
		AnnotatorID: c.annotatorID,
		Filename:    c.clips[c.index],
		Valence:     vector[rating.Valence],
		Arousal:     vector[rating.Arousal],
		Dominance:   vector[rating.Dominance],
	}
	index := c.index
	c.submitting = true
	c.render()
	c.mu.Unlock()

	err := c.backend.SubmitRating(ctx, submission)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false

	if err != nil {
		c.log.WithError(err).WithField("filename", submission.Filename).Warn("Saving rating failed")
		c.presenter.Alert("Error saving: " + apperrors.UserMessage(err, "unknown"))
		c.render()
		return fmt.Errorf("submitting %s: %w", submission.Filename, err)
	}

	c.log.WithFields(logrus.Fields{
		"annotator": submission.AnnotatorID,
		"filename":  submission.Filename,
	}).Debug("Rating saved")

	c.index = index + 1
	c.loadCurrent()
	return nil
}

// loadCurrent shows the clip at the cursor or the completion screen.
// Caller holds c.mu.
func (c *Controller) loadCurrent() {
	c.ratings.Reset()

	if c.index >= len(c.clips) {
		c.screen = ScreenDone
		c.render()
		return
	}

	c.screen = ScreenAnnotation
	filename := c.clips[c.index]
	if err := c.player.Load(c.backend.ClipURI(filename)); err != nil {
		c.log.WithError(err).WithField("filename", filename).Warn("Loading clip failed")
		c.presenter.Alert("Could not load " + filename)
	}
	c.render()
}

// Play restarts the current clip from the beginning
func (c *Controller) Play() error {
	return c.annotating(c.player.Play)
}

// TogglePauseResume pauses or resumes the current clip
func (c *Controller) TogglePauseResume() error {
	return c.annotating(c.player.TogglePauseResume)
}

// Seek moves playback to ratio of the clip duration
func (c *Controller) Seek(ratio float64) error {
	return c.annotating(func() error {
		return c.player.Seek(ratio)
	})
}

// SelectRating records value for dimension
func (c *Controller) SelectRating(d rating.Dimension, value int) error {
	return c.annotating(func() error {
		return c.ratings.SelectRating(d, value)
	})
}

// SetActiveDimension points keyboard input at dimension
func (c *Controller) SetActiveDimension(d rating.Dimension) error {
	return c.annotating(func() error {
		return c.ratings.SetActiveDimension(d)
	})
}

// CycleActiveDimension moves keyboard input to the next dimension
func (c *Controller) CycleActiveDimension() error {
	return c.annotating(func() error {
		c.ratings.CycleActiveDimension()
		return nil
	})
}

// HandleMediaEvent forwards a media subsystem notification to playback
func (c *Controller) HandleMediaEvent(ev playback.MediaEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.player.HandleMediaEvent(ev)
	if c.screen == ScreenAnnotation {
		c.render()
	}
}

// annotating runs fn under the lock when the annotation screen is up and
// re-renders afterwards. Outside that screen it is a no-op.
func (c *Controller) annotating(fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.screen != ScreenAnnotation {
		return nil
	}
	err := fn()
	c.render()
	return err
}

// render pushes the current projection. Caller holds c.mu.
func (c *Controller) render() {
	c.presenter.Render(c.view())
}

// View returns the current projection
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view()
}

// Index returns the position in the clip queue
func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Screen returns the screen being shown
func (c *Controller) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

// Ratings returns a copy of the current rating vector
func (c *Controller) Ratings() rating.Vector {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ratings.Vector()
}

// ActiveDimension returns the dimension receiving digit keys
func (c *Controller) ActiveDimension() rating.Dimension {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ratings.Active()
}
