package ratings

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/killallgit/vad-annotator/internal/models"
	"github.com/killallgit/vad-annotator/internal/rating"
	apperrors "github.com/killallgit/vad-annotator/pkg/errors"
)

// Messages returned to clients verbatim
const (
	MsgRatingsOutOfRange = "Ratings must be integers from 1 to 9"
	MsgInvalidAnnotator  = "Annotator ID must contain letters, digits, '-' or '_'"
)

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repository Repository
	catalog    ClipCatalog
	log        logrus.FieldLogger
}

// NewService creates a new rating service
func NewService(repository Repository, catalog ClipCatalog, log logrus.FieldLogger) Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ServiceImpl{
		repository: repository,
		catalog:    catalog,
		log:        log.WithField("component", "ratings"),
	}
}

// annotatorKey sanitizes id, rejecting ids with nothing usable left
func annotatorKey(id string) (string, error) {
	key := models.SanitizeAnnotatorID(id)
	if key == "" {
		return "", apperrors.ValidationError("annotator_id", MsgInvalidAnnotator)
	}
	return key, nil
}

// Submit validates and stores one rating vector. Resubmitting a clip adds
// another row; nothing is overwritten.
func (s *ServiceImpl) Submit(ctx context.Context, req SubmitRequest) (*models.Rating, error) {
	for _, score := range []int{req.Valence, req.Arousal, req.Dominance} {
		if !rating.ValidScore(score) {
			return nil, apperrors.ValidationError("ratings", MsgRatingsOutOfRange)
		}
	}
	if strings.TrimSpace(req.Filename) == "" {
		return nil, apperrors.MissingFieldError("filename")
	}
	key, err := annotatorKey(req.AnnotatorID)
	if err != nil {
		return nil, err
	}

	position, err := s.catalog.Position(ctx, req.Filename)
	if err != nil {
		return nil, err
	}

	r := &models.Rating{
		AnnotatorKey: key,
		AnnotatorID:  req.AnnotatorID,
		Filename:     req.Filename,
		ClipNumber:   position,
		Valence:      req.Valence,
		Arousal:      req.Arousal,
		Dominance:    req.Dominance,
	}
	if err := s.repository.CreateRating(ctx, r); err != nil {
		return nil, apperrors.DatabaseError("save rating", err)
	}

	s.log.WithFields(logrus.Fields{
		"annotator": key,
		"filename":  req.Filename,
		"clip":      r.ClipID(),
	}).Info("rating saved")
	return r, nil
}

// GetProgress reports how many clips the annotator has rated and the first
// clip still waiting, or len(clips) when none is
func (s *ServiceImpl) GetProgress(ctx context.Context, annotatorID string) (*Progress, error) {
	key, err := annotatorKey(annotatorID)
	if err != nil {
		return nil, err
	}

	clips, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	rated, err := s.repository.GetRatedFilenames(ctx, key)
	if err != nil {
		return nil, apperrors.DatabaseError("load progress", err)
	}

	done := make(map[string]bool, len(rated))
	for _, f := range rated {
		done[f] = true
	}

	next := len(clips)
	for i, clip := range clips {
		if !done[clip] {
			next = i
			break
		}
	}

	return &Progress{
		Total:     len(clips),
		Completed: len(done),
		NextIndex: next,
	}, nil
}
