package ratings

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/killallgit/vad-annotator/internal/models"
)

// RepositoryImpl implements the Repository interface
type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new rating repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// CreateRating stores one rating
func (r *RepositoryImpl) CreateRating(ctx context.Context, rating *models.Rating) error {
	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		return fmt.Errorf("creating rating: %w", err)
	}
	return nil
}

// CreateRatings stores a batch of ratings in one transaction
func (r *RepositoryImpl) CreateRatings(ctx context.Context, ratings []models.Rating) error {
	if len(ratings) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(ratings, 100).Error
	})
	if err != nil {
		return fmt.Errorf("creating ratings: %w", err)
	}
	return nil
}

// GetRatingsByAnnotator returns an annotator's ratings in the order they were made
func (r *RepositoryImpl) GetRatingsByAnnotator(ctx context.Context, annotatorKey string) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.WithContext(ctx).
		Where("annotator_key = ?", annotatorKey).
		Order("id ASC").
		Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("getting ratings for annotator: %w", err)
	}
	return ratings, nil
}

// GetRatedFilenames returns the distinct filenames an annotator has rated
func (r *RepositoryImpl) GetRatedFilenames(ctx context.Context, annotatorKey string) ([]string, error) {
	var filenames []string
	if err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("annotator_key = ?", annotatorKey).
		Distinct().
		Order("filename ASC").
		Pluck("filename", &filenames).Error; err != nil {
		return nil, fmt.Errorf("getting rated filenames: %w", err)
	}
	return filenames, nil
}

// ListAnnotatorKeys returns every annotator with at least one rating
func (r *RepositoryImpl) ListAnnotatorKeys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Distinct().
		Order("annotator_key ASC").
		Pluck("annotator_key", &keys).Error; err != nil {
		return nil, fmt.Errorf("listing annotators: %w", err)
	}
	return keys, nil
}
