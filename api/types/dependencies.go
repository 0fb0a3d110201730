package types

import (
	"context"

	"github.com/killallgit/vad-annotator/internal/database"
	"github.com/killallgit/vad-annotator/internal/services/ratings"
)

// ClipCatalog is what handlers need from the clip directory
type ClipCatalog interface {
	List(ctx context.Context) ([]string, error)
	Resolve(filename string) (string, error)
}

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB            *database.DB
	Catalog       ClipCatalog
	RatingService ratings.Service
	Version       string
}
