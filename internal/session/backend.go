package session

import "context"

// Submission is one completed rating vector for one clip
type Submission struct {
	AnnotatorID string
	Filename    string
	Valence     int
	Arousal     int
	Dominance   int
}

// Progress is what the rating service knows about an annotator
type Progress struct {
	Total     int
	Completed int
	NextIndex int
}

// Backend is the rating service as seen by the session: clip listing,
// progress lookup, persistence, and clip resource resolution.
type Backend interface {
	ListClips(ctx context.Context) ([]string, error)
	GetProgress(ctx context.Context, annotatorID string) (Progress, error)
	SubmitRating(ctx context.Context, submission Submission) error
	ClipURI(filename string) string
}

// Presenter receives every view change and user-facing alert. Calls happen
// while the session lock is held, so implementations must not call back
// into the Controller synchronously.
type Presenter interface {
	Render(view View)
	Alert(message string)
}
