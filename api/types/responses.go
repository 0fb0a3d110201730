package types

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ErrorResponse is the body of every failed request. Error is the
// human-readable reason clients show to the annotator.
type ErrorResponse struct {
	Status  string      `json:"status"`
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// AnnotateRequest documents the body of POST /api/annotate. Scores may
// also be sent as numeric strings.
type AnnotateRequest struct {
	AnnotatorID string `json:"annotator_id" example:"ann1"`
	Filename    string `json:"filename" example:"clip_001.wav"`
	Valence     int    `json:"valence" example:"5" minimum:"1" maximum:"9"`
	Arousal     int    `json:"arousal" example:"3" minimum:"1" maximum:"9"`
	Dominance   int    `json:"dominance" example:"7" minimum:"1" maximum:"9"`
}

// AnnotateResponse is returned when a rating was saved
type AnnotateResponse struct {
	Status string `json:"status" example:"ok"`
}

// ProgressResponse reports an annotator's progress through the catalog
type ProgressResponse struct {
	Total     int `json:"total" example:"40"`
	Completed int `json:"completed" example:"12"`
	NextIndex int `json:"next_index" example:"12"`
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Database  map[string]string `json:"database"`
}

// VersionResponse describes the running service
type VersionResponse struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Status      string `json:"status"`
}
