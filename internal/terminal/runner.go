package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/killallgit/vad-annotator/internal/session"
)

// Session is the part of the session controller the runner drives
type Session interface {
	Dispatch(ctx context.Context, ev session.Event) error
	Screen() session.Screen
}

// Runner reads commands line by line and feeds them to a session
type Runner struct {
	in  io.Reader
	out io.Writer
	log logrus.FieldLogger

	inflight sync.WaitGroup
}

// NewRunner creates a runner reading from in and writing help and
// command errors to out
func NewRunner(in io.Reader, out io.Writer, log logrus.FieldLogger) *Runner {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Runner{in: in, out: out, log: log.WithField("component", "terminal")}
}

// Run processes input until it is exhausted, the annotator quits, or ctx
// is cancelled. Failed operations have already been alerted through the
// presenter, so they are logged and the loop continues. Login and submit
// run in the background so input keeps flowing while they wait on the
// network; Run returns once they have finished.
func (r *Runner) Run(ctx context.Context, s Session) error {
	defer r.inflight.Wait()

	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if err := r.handleLine(ctx, s, line); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
		}
	}
}

func (r *Runner) handleLine(ctx context.Context, s Session, line string) error {
	ev, err := ParseCommand(line, s.Screen())
	switch {
	case errors.Is(err, ErrQuit):
		return err
	case errors.Is(err, ErrHelp):
		fmt.Fprint(r.out, Help)
		return nil
	case err != nil:
		fmt.Fprintf(r.out, "%v (type ? for help)\n", err)
		return nil
	case ev == nil:
		return nil
	}

	if background(ev) {
		r.inflight.Add(1)
		go func() {
			defer r.inflight.Done()
			r.dispatch(ctx, s, ev)
		}()
		return nil
	}
	r.dispatch(ctx, s, ev)
	return nil
}

// dispatch sends ev and anything it implies. Rating a dimension directly
// also makes it active. A failed event stops the rest.
func (r *Runner) dispatch(ctx context.Context, s Session, ev session.Event) {
	events := []session.Event{ev}
	if sel, ok := ev.(session.SelectRatingEvent); ok {
		events = append(events, session.SetActiveDimensionEvent{Dimension: sel.Dimension})
	}

	for _, ev := range events {
		if err := s.Dispatch(ctx, ev); err != nil {
			r.log.WithError(err).WithField("event", fmt.Sprintf("%T", ev)).Debug("event failed")
			return
		}
	}
}

// background reports whether ev may block on the rating service
func background(ev session.Event) bool {
	switch e := ev.(type) {
	case session.LoginEvent, session.SubmitEvent:
		return true
	case session.KeyEvent:
		return e.Key == session.KeyEnter
	}
	return false
}
