package service

import (
	"context"
	"log/slog"
	"time"

	"tour-booking/internal/cache"
	"tour-booking/internal/models"
	"tour-booking/internal/repository"
	"tour-booking/internal/storage"
)

const (
	// StatsTTL is how long tour statistics stay cached.
	StatsTTL = 5 * time.Minute
	// StatsMinRating is the lowest rating included in the statistics.
	StatsMinRating = 4.5
)

// TourService handles tour business logic.
type TourService struct {
	*Resource[models.Tour, *models.Tour]
	repo   repository.TourRepository
	cache  cache.Cache
	images storage.ImageResolver
}

// NewTourService creates a new TourService.
func NewTourService(repo repository.TourRepository, c cache.Cache, images storage.ImageResolver) *TourService {
	s := &TourService{repo: repo, cache: c, images: images}
	s.Resource = NewResource[models.Tour](repo, Hooks[models.Tour]{
		BeforeCreate: func(_ context.Context, t *models.Tour) error {
			t.Slug = models.Slugify(t.Name)
			return nil
		},
		BeforeUpdate: func(_ context.Context, old, t *models.Tour) error {
			if t.Name != old.Name || t.Slug == "" {
				t.Slug = models.Slugify(t.Name)
			}
			return nil
		},
		AfterWrite: func(ctx context.Context, _ *models.Tour) error {
			s.invalidateStats(ctx)
			return nil
		},
		Resolve: s.resolveImages,
	})
	return s
}

// Stats returns per-difficulty statistics for well-rated tours.
func (s *TourService) Stats(ctx context.Context) ([]models.TourStats, error) {
	var stats []models.TourStats
	if found, err := s.cache.Get(ctx, cache.TourStatsKey, &stats); err != nil {
		slog.Warn("tour stats cache read failed", "error", err)
	} else if found {
		return stats, nil
	}

	stats, err := s.repo.Stats(ctx, StatsMinRating)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cache.TourStatsKey, stats, StatsTTL); err != nil {
		slog.Warn("tour stats cache write failed", "error", err)
	}
	return stats, nil
}

// MonthlyPlan returns how many tours start in each month of year.
func (s *TourService) MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlan, error) {
	return s.repo.MonthlyPlan(ctx, year)
}

// Within returns tours starting within distance of a point.
func (s *TourService) Within(ctx context.Context, lat, lng, distance float64, unit string) ([]models.Tour, error) {
	tours, err := s.repo.Within(ctx, lng, lat, distance, unit)
	if err != nil {
		return nil, err
	}
	for i := range tours {
		if err := s.resolveImages(ctx, &tours[i]); err != nil {
			return nil, err
		}
	}
	return tours, nil
}

// Distances returns every tour's distance from a point, nearest first.
func (s *TourService) Distances(ctx context.Context, lat, lng float64, unit string) ([]models.TourDistance, error) {
	return s.repo.Distances(ctx, lng, lat, unit)
}

func (s *TourService) resolveImages(ctx context.Context, t *models.Tour) error {
	url, err := s.images.TourImageURL(ctx, t.ImageCover)
	if err != nil {
		return err
	}
	t.ImageCoverURL = url
	return nil
}

func (s *TourService) invalidateStats(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.TourStatsKey); err != nil {
		slog.Warn("tour stats cache invalidation failed", "error", err)
	}
}
