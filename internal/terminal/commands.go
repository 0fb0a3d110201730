package terminal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/killallgit/vad-annotator/internal/rating"
	"github.com/killallgit/vad-annotator/internal/session"
)

var (
	// ErrQuit is returned when the annotator asks to leave
	ErrQuit = errors.New("quit")
	// ErrHelp asks the caller to print the command reference
	ErrHelp = errors.New("help")
	// ErrUnknownCommand is returned for input that maps to no event
	ErrUnknownCommand = errors.New("unknown command")
)

// Help lists the commands accepted on the annotation screen
const Help = `Commands:
  space | play        play the clip from the start
  p | toggle          pause or resume
  s <0-1|N%>          seek to a fraction of the clip
  1-9                 rate the active dimension and move to the next
  tab                 cycle the active dimension
  f <dimension>       make a dimension active (v, a, d)
  <dimension> <1-9>   rate a dimension and make it active
  enter | submit      save the ratings and go to the next clip
  q | quit            leave
`

// ParseCommand turns one line of terminal input into a session event.
// On the login screen every non-empty line is an annotator id; elsewhere
// the line is a command. An empty line yields a nil event.
func ParseCommand(line string, screen session.Screen) (session.Event, error) {
	if screen == session.ScreenLogin {
		id := strings.TrimSpace(line)
		if id == "" {
			return nil, nil
		}
		return session.LoginEvent{AnnotatorID: id}, nil
	}

	// A lone blank or tab acts like the key itself
	switch line {
	case " ":
		return session.KeyEvent{Key: session.KeySpace}, nil
	case "\t":
		return session.KeyEvent{Key: session.KeyTab}, nil
	}

	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil, nil
	}

	switch cmd, args := fields[0], fields[1:]; {
	case cmd == "q" || cmd == "quit" || cmd == "exit":
		return nil, ErrQuit
	case cmd == "?" || cmd == "h" || cmd == "help":
		return nil, ErrHelp
	case screen != session.ScreenAnnotation:
		return nil, nil
	case cmd == "space" || cmd == "play":
		return session.KeyEvent{Key: session.KeySpace}, nil
	case cmd == "p" || cmd == "toggle" || cmd == "pause" || cmd == "resume":
		return session.ToggleEvent{}, nil
	case cmd == "enter" || cmd == "submit":
		return session.KeyEvent{Key: session.KeyEnter}, nil
	case cmd == "tab":
		return session.KeyEvent{Key: session.KeyTab}, nil
	case cmd == "s" || cmd == "seek":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: seek needs a position", ErrUnknownCommand)
		}
		ratio, err := parseRatio(args[0])
		if err != nil {
			return nil, err
		}
		return session.SeekEvent{Ratio: ratio}, nil
	case cmd == "f" || cmd == "focus":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: focus needs a dimension", ErrUnknownCommand)
		}
		d, err := parseDimension(args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnknownCommand, err)
		}
		return session.SetActiveDimensionEvent{Dimension: d}, nil
	case len(cmd) == 1 && cmd[0] >= '1' && cmd[0] <= '9' && len(args) == 0:
		return session.KeyEvent{Key: session.Key(cmd[0])}, nil
	case len(args) == 1:
		d, err := parseDimension(cmd)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
		}
		value, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: rating %q is not a number", ErrUnknownCommand, args[0])
		}
		return session.SelectRatingEvent{Dimension: d, Value: value}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
}

// parseDimension accepts a full dimension name or any prefix of it
func parseDimension(s string) (rating.Dimension, error) {
	for _, d := range rating.Dimensions {
		if s != "" && strings.HasPrefix(d.String(), s) {
			return d, nil
		}
	}
	return rating.ParseDimension(s)
}

// parseRatio accepts "0.25" or "25%"
func parseRatio(s string) (float64, error) {
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: bad seek position %q", ErrUnknownCommand, s)
		}
		return v / 100, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad seek position %q", ErrUnknownCommand, s)
	}
	return v, nil
}
