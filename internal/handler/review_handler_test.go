package handler

import (
	"context"
	"net/http"
	"testing"

	"tour-booking/internal/models"
	"tour-booking/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestReviewHandler_CreateReview(t *testing.T) {
	author := testUser(models.RoleUser)
	tourID := primitive.NewObjectID()
	otherTour := primitive.NewObjectID()

	tests := []struct {
		name         string
		path         string
		body         string
		expectedTour primitive.ObjectID
	}{
		{
			name:         "nested route sets tour and author",
			path:         "/tours/" + tourID.Hex() + "/reviews",
			body:         `{"review":"Loved it","rating":5}`,
			expectedTour: tourID,
		},
		{
			name:         "body tour wins over the route",
			path:         "/tours/" + tourID.Hex() + "/reviews",
			body:         `{"review":"Loved it","rating":5,"tour":"` + otherTour.Hex() + `"}`,
			expectedTour: otherTour,
		},
		{
			name:         "top level route uses the body",
			path:         "/reviews",
			body:         `{"review":"Loved it","rating":5,"tour":"` + tourID.Hex() + `"}`,
			expectedTour: tourID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created *models.Review
			m := &mocks.MockReviewService{}
			m.CreateFunc = func(ctx context.Context, doc *models.Review) (*models.Review, error) {
				created = doc
				return doc, nil
			}
			handler := NewReviewHandler(m)
			router := newRouter(author)
			router.POST("/reviews", handler.CreateReview)
			router.POST("/tours/:id/reviews", handler.CreateReview)

			w := doRequest(router, http.MethodPost, tt.path, tt.body)

			require.Equal(t, http.StatusCreated, w.Code)
			require.NotNil(t, created)
			assert.Equal(t, tt.expectedTour, created.Tour)
			assert.Equal(t, author.ID, created.User)
		})
	}

	t.Run("without tour the review is invalid", func(t *testing.T) {
		router := newRouter(author)
		router.POST("/reviews", NewReviewHandler(&mocks.MockReviewService{}).CreateReview)

		w := doRequest(router, http.MethodPost, "/reviews", `{"review":"Loved it","rating":5}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, parseBody(t, w)["message"], "tour is required")
	})
}

func TestReviewHandler_GetAllReviews(t *testing.T) {
	tourID := primitive.NewObjectID()

	tests := []struct {
		name       string
		path       string
		wantFilter bool
	}{
		{name: "nested route filters by tour", path: "/tours/" + tourID.Hex() + "/reviews", wantFilter: true},
		{name: "top level route lists all", path: "/reviews"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *models.ListQuery
			m := &mocks.MockReviewService{}
			m.ListFunc = func(ctx context.Context, q *models.ListQuery) ([]models.Review, error) {
				got = q
				return []models.Review{}, nil
			}
			handler := NewReviewHandler(m)
			router := newRouter(testUser(models.RoleUser))
			router.GET("/reviews", handler.GetAllReviews)
			router.GET("/tours/:id/reviews", handler.GetAllReviews)

			w := doRequest(router, http.MethodGet, tt.path, "")

			require.Equal(t, http.StatusOK, w.Code)
			require.NotNil(t, got)
			if tt.wantFilter {
				assert.Equal(t, tourID, got.Filter["tour"])
			} else {
				assert.NotContains(t, got.Filter, "tour")
			}
		})
	}
}
