package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	cachemocks "tour-booking/internal/cache/mocks"
	"tour-booking/internal/cache"
	apperrors "tour-booking/internal/errors"
	"tour-booking/internal/models"
	repomocks "tour-booking/internal/repository/mocks"
	"tour-booking/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

var testImages = storage.StaticResolver{BaseURL: "https://www.natours.dev"}

func newTestTourService(t *testing.T) (*TourService, *repomocks.MockTourRepository, *cachemocks.MockCache) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockTourRepository(ctrl)
	c := cachemocks.NewMockCache(ctrl)
	return NewTourService(repo, c, testImages), repo, c
}

func sampleTour() *models.Tour {
	return &models.Tour{
		Name:         "The Forest Hiker",
		Duration:     5,
		MaxGroupSize: 25,
		Difficulty:   models.DifficultyEasy,
		Price:        397,
		Summary:      "Breathtaking hike through the Canadian Banff National Park",
		ImageCover:   "tour-1-cover.jpg",
	}
}

func TestParseID(t *testing.T) {
	t.Run("valid hex", func(t *testing.T) {
		id := primitive.NewObjectID()
		got, err := ParseID(id.Hex())

		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("malformed id is a 400", func(t *testing.T) {
		_, err := ParseID("not-an-id")

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
		assert.Equal(t, "Invalid id: not-an-id", appErr.Message)
		assert.ErrorIs(t, err, apperrors.ErrInvalidID)
	})
}

func TestTourService_Create(t *testing.T) {
	svc, repo, c := newTestTourService(t)
	id := primitive.NewObjectID()

	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tour *models.Tour) error {
			assert.Equal(t, "the-forest-hiker", tour.Slug)
			tour.ID = id
			return nil
		})
	c.EXPECT().Delete(gomock.Any(), cache.TourStatsKey).Return(nil)

	created, err := svc.Create(context.Background(), sampleTour())

	require.NoError(t, err)
	assert.Equal(t, id, created.ID)
	assert.Equal(t, "https://www.natours.dev/img/tours/tour-1-cover.jpg", created.ImageCoverURL)
}

func TestTourService_Create_StoreError(t *testing.T) {
	svc, repo, _ := newTestTourService(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(assert.AnError)

	_, err := svc.Create(context.Background(), sampleTour())

	assert.ErrorIs(t, err, assert.AnError)
}

func TestTourService_Get(t *testing.T) {
	id := primitive.NewObjectID()

	t.Run("populates and resolves image", func(t *testing.T) {
		svc, repo, _ := newTestTourService(t)
		tour := sampleTour()
		tour.ID = id

		repo.EXPECT().FindByID(gomock.Any(), id, true).Return(tour, nil)

		got, err := svc.Get(context.Background(), id.Hex(), true)

		require.NoError(t, err)
		assert.Equal(t, "https://www.natours.dev/img/tours/tour-1-cover.jpg", got.ImageCoverURL)
	})

	t.Run("not found", func(t *testing.T) {
		svc, repo, _ := newTestTourService(t)

		repo.EXPECT().FindByID(gomock.Any(), id, false).Return(nil, apperrors.ErrDocumentNotFound)

		_, err := svc.Get(context.Background(), id.Hex(), false)

		assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
	})

	t.Run("malformed id never reaches the store", func(t *testing.T) {
		svc, _, _ := newTestTourService(t)

		_, err := svc.Get(context.Background(), "xyz", false)

		assert.ErrorIs(t, err, apperrors.ErrInvalidID)
	})
}

func TestTourService_List(t *testing.T) {
	svc, repo, _ := newTestTourService(t)
	q := models.NewListQuery()

	repo.EXPECT().Find(gomock.Any(), q).Return([]models.Tour{*sampleTour(), *sampleTour()}, nil)

	tours, err := svc.List(context.Background(), q)

	require.NoError(t, err)
	require.Len(t, tours, 2)
	for _, tour := range tours {
		assert.NotEmpty(t, tour.ImageCoverURL)
	}
}

func TestTourService_Update(t *testing.T) {
	id := primitive.NewObjectID()

	t.Run("renaming re-slugs and keeps identity", func(t *testing.T) {
		svc, repo, c := newTestTourService(t)
		stored := sampleTour()
		stored.ID = id
		stored.Slug = "the-forest-hiker"
		createdAt := stored.CreatedAt

		repo.EXPECT().FindByID(gomock.Any(), id, false).Return(stored, nil)
		repo.EXPECT().
			Replace(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tour *models.Tour) error {
				assert.Equal(t, id, tour.ID)
				assert.Equal(t, createdAt, tour.CreatedAt)
				assert.Equal(t, "the-forest-runner", tour.Slug)
				assert.Equal(t, 500.0, tour.Price)
				return nil
			})
		c.EXPECT().Delete(gomock.Any(), cache.TourStatsKey).Return(nil)

		updated, err := svc.Update(context.Background(), id.Hex(), func(tour *models.Tour) error {
			return json.Unmarshal([]byte(`{"name":"The Forest Runner","price":500,"id":"000000000000000000000000"}`), tour)
		})

		require.NoError(t, err)
		assert.Equal(t, "The Forest Runner", updated.Name)
	})

	t.Run("patch error aborts", func(t *testing.T) {
		svc, repo, _ := newTestTourService(t)
		stored := sampleTour()
		stored.ID = id

		repo.EXPECT().FindByID(gomock.Any(), id, false).Return(stored, nil)

		_, err := svc.Update(context.Background(), id.Hex(), func(*models.Tour) error {
			return errors.New("invalid")
		})

		assert.EqualError(t, err, "invalid")
	})

	t.Run("missing document", func(t *testing.T) {
		svc, repo, _ := newTestTourService(t)

		repo.EXPECT().FindByID(gomock.Any(), id, false).Return(nil, apperrors.ErrDocumentNotFound)

		_, err := svc.Update(context.Background(), id.Hex(), func(*models.Tour) error { return nil })

		assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
	})
}

func TestTourService_Delete(t *testing.T) {
	id := primitive.NewObjectID()

	t.Run("deletes and invalidates stats", func(t *testing.T) {
		svc, repo, c := newTestTourService(t)

		repo.EXPECT().Delete(gomock.Any(), id).Return(sampleTour(), nil)
		c.EXPECT().Delete(gomock.Any(), cache.TourStatsKey).Return(nil)

		_, err := svc.Delete(context.Background(), id.Hex())

		require.NoError(t, err)
	})

	t.Run("second delete is not found", func(t *testing.T) {
		svc, repo, _ := newTestTourService(t)

		repo.EXPECT().Delete(gomock.Any(), id).Return(nil, apperrors.ErrDocumentNotFound)

		_, err := svc.Delete(context.Background(), id.Hex())

		assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
	})
}

func TestTourService_Stats(t *testing.T) {
	stats := []models.TourStats{{Difficulty: "EASY", NumTours: 4, AvgPrice: 1272}}

	t.Run("cache hit skips the database", func(t *testing.T) {
		svc, _, c := newTestTourService(t)

		c.EXPECT().
			Get(gomock.Any(), cache.TourStatsKey, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, dest any) (bool, error) {
				*dest.(*[]models.TourStats) = stats
				return true, nil
			})

		got, err := svc.Stats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, stats, got)
	})

	t.Run("cache miss aggregates and caches", func(t *testing.T) {
		svc, repo, c := newTestTourService(t)

		c.EXPECT().Get(gomock.Any(), cache.TourStatsKey, gomock.Any()).Return(false, nil)
		repo.EXPECT().Stats(gomock.Any(), StatsMinRating).Return(stats, nil)
		c.EXPECT().Set(gomock.Any(), cache.TourStatsKey, stats, StatsTTL).Return(nil)

		got, err := svc.Stats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, stats, got)
	})

	t.Run("cache failure falls through", func(t *testing.T) {
		svc, repo, c := newTestTourService(t)

		c.EXPECT().Get(gomock.Any(), cache.TourStatsKey, gomock.Any()).Return(false, assert.AnError)
		repo.EXPECT().Stats(gomock.Any(), StatsMinRating).Return(stats, nil)
		c.EXPECT().Set(gomock.Any(), cache.TourStatsKey, stats, StatsTTL).Return(assert.AnError)

		got, err := svc.Stats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, stats, got)
	})
}

func TestTourService_Geo(t *testing.T) {
	svc, repo, _ := newTestTourService(t)

	repo.EXPECT().Within(gomock.Any(), -118.11, 34.11, 400.0, "mi").Return([]models.Tour{*sampleTour()}, nil)
	repo.EXPECT().Distances(gomock.Any(), -118.11, 34.11, "km").Return([]models.TourDistance{{Name: "The Sea Explorer", Distance: 3585.1}}, nil)
	repo.EXPECT().MonthlyPlan(gomock.Any(), 2021).Return([]models.MonthlyPlan{{Month: 7, NumTourStarts: 3}}, nil)

	within, err := svc.Within(context.Background(), 34.11, -118.11, 400, "mi")
	require.NoError(t, err)
	require.Len(t, within, 1)
	assert.NotEmpty(t, within[0].ImageCoverURL)

	distances, err := svc.Distances(context.Background(), 34.11, -118.11, "km")
	require.NoError(t, err)
	assert.Equal(t, "The Sea Explorer", distances[0].Name)

	plan, err := svc.MonthlyPlan(context.Background(), 2021)
	require.NoError(t, err)
	assert.Equal(t, 7, plan[0].Month)
}
