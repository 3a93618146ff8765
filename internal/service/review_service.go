package service

import (
	"context"
	"errors"
	"log/slog"

	"tour-booking/internal/cache"
	apperrors "tour-booking/internal/errors"
	"tour-booking/internal/models"
	"tour-booking/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewService handles review business logic. Every write recomputes the
// rating of the reviewed tour.
type ReviewService struct {
	*Resource[models.Review, *models.Review]
	repo  repository.ReviewRepository
	tours repository.TourRepository
	cache cache.Cache
}

// NewReviewService creates a new ReviewService.
func NewReviewService(repo repository.ReviewRepository, tours repository.TourRepository, c cache.Cache) *ReviewService {
	s := &ReviewService{repo: repo, tours: tours, cache: c}
	s.Resource = NewResource[models.Review](repo, Hooks[models.Review]{
		BeforeCreate: func(ctx context.Context, r *models.Review) error {
			exists, err := repo.Exists(ctx, r.Tour, r.User)
			if err != nil {
				return err
			}
			if exists {
				return apperrors.ErrDuplicateReview
			}
			return nil
		},
		BeforeUpdate: func(_ context.Context, old, r *models.Review) error {
			// A review stays attached to its tour and author.
			r.Tour = old.Tour
			r.User = old.User
			return nil
		},
		AfterWrite: func(ctx context.Context, r *models.Review) error {
			return s.CalcAverageRatings(ctx, r.Tour)
		},
	})
	return s
}

// CalcAverageRatings stores the review count and mean rating on the tour.
// A tour without reviews goes back to the default rating.
func (s *ReviewService) CalcAverageRatings(ctx context.Context, tourID primitive.ObjectID) error {
	summary, err := s.repo.RatingSummary(ctx, tourID)
	if err != nil {
		return err
	}

	quantity, average := summary.NRating, summary.AvgRating
	if quantity == 0 {
		average = models.DefaultRatingsAverage
	}

	if err := s.tours.UpdateRatings(ctx, tourID, quantity, average); err != nil {
		if errors.Is(err, apperrors.ErrDocumentNotFound) {
			// Secret or deleted tours keep no rating.
			return nil
		}
		return err
	}

	if err := s.cache.Delete(ctx, cache.TourStatsKey); err != nil {
		slog.Warn("tour stats cache invalidation failed", "error", err)
	}
	return nil
}
