package ratings

import (
	"context"

	"github.com/killallgit/vad-annotator/internal/models"
)

// Repository defines the interface for rating data access
type Repository interface {
	// Create operations
	CreateRating(ctx context.Context, rating *models.Rating) error
	CreateRatings(ctx context.Context, ratings []models.Rating) error

	// Read operations
	GetRatingsByAnnotator(ctx context.Context, annotatorKey string) ([]models.Rating, error)
	GetRatedFilenames(ctx context.Context, annotatorKey string) ([]string, error)
	ListAnnotatorKeys(ctx context.Context) ([]string, error)
}

// ClipCatalog is the clip listing the service measures progress against
type ClipCatalog interface {
	List(ctx context.Context) ([]string, error)
	Position(ctx context.Context, filename string) (int, error)
}

// Service defines the interface for rating business logic
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*models.Rating, error)
	GetProgress(ctx context.Context, annotatorID string) (*Progress, error)
	Export(ctx context.Context, dir, annotatorID string) ([]ExportResult, error)
	Import(ctx context.Context, path string) (*ImportResult, error)
}

// SubmitRequest is one rating vector as received from an annotator
type SubmitRequest struct {
	AnnotatorID string
	Filename    string
	Valence     int
	Arousal     int
	Dominance   int
}

// Progress is how far an annotator has got through the catalog
type Progress struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	NextIndex int `json:"next_index"`
}

// ExportResult describes one written CSV file
type ExportResult struct {
	Annotator string
	Path      string
	Rows      int
}

// ImportResult summarizes one imported CSV file
type ImportResult struct {
	Path     string
	Imported int
	Skipped  int
}
