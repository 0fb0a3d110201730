package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/killallgit/vad-annotator/internal/session"
)

const doneMessage = "All clips are annotated. Thank you!"

// Presenter writes session views to a terminal as plain text
type Presenter struct {
	mu   sync.Mutex
	out  io.Writer
	last string
}

// NewPresenter creates a presenter writing to out
func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

// Render prints the view. Identical consecutive frames are printed once,
// so time updates that do not change the clock stay quiet.
func (p *Presenter) Render(v session.View) {
	frame := FormatView(v)

	p.mu.Lock()
	defer p.mu.Unlock()
	if frame == p.last {
		return
	}
	p.last = frame
	fmt.Fprint(p.out, frame)
}

// Alert prints a message that needs the annotator's attention
func (p *Presenter) Alert(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "!! %s\n", message)
	// Force the next frame out even if nothing changed
	p.last = ""
}

// FormatView renders v as the text block shown in the terminal
func FormatView(v session.View) string {
	var b strings.Builder

	switch v.Screen {
	case session.ScreenLogin:
		if v.Busy {
			b.WriteString("Starting session...\n")
		} else {
			b.WriteString("Annotator ID: \n")
		}
		return b.String()
	case session.ScreenDone:
		fmt.Fprintf(&b, "%s | %s\n", v.AnnotatorLabel, v.ProgressLabel)
		b.WriteString(doneMessage + "\n")
		return b.String()
	}

	pb := v.Playback
	fmt.Fprintf(&b, "%s | %s | %s\n", v.AnnotatorLabel, v.ProgressLabel, v.ClipName)
	fmt.Fprintf(&b, "  [%s] %s  %s  %s  (%3.0f%%)", pb.StatusLabel, progressBar(pb.Percent, 20), pb.Elapsed, pb.Total, pb.Percent)
	if pb.ToggleEnabled {
		fmt.Fprintf(&b, "  p: %s", pb.ToggleLabel)
	}
	b.WriteString("\n")

	for _, row := range v.Rating.Rows {
		marker := " "
		if row.Active {
			marker = ">"
		}
		score := "-"
		if row.Selected > 0 {
			score = fmt.Sprintf("%d", row.Selected)
		}
		fmt.Fprintf(&b, "  %s %-9s %s\n", marker, row.Dimension, score)
	}

	switch {
	case v.Busy:
		b.WriteString("  Saving...\n")
	case v.SubmitEnabled:
		b.WriteString("  Enter: submit\n")
	default:
		b.WriteString("  Rate all three dimensions to submit\n")
	}
	return b.String()
}

func progressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
