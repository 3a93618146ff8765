//go:build api

package api

import (
	"net/http"
	"testing"

	"tour-booking/internal/models"
	"tour-booking/test/api/testserver"
	"tour-booking/test/fixtures"
	"tour-booking/test/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReviewRatings tests that review writes keep tour ratings current.
func TestReviewRatings(t *testing.T) {
	testServer.CleanupBetweenTests(t)
	authHelper := testserver.NewAuthHelper(testServer)
	tourHelper := testserver.NewTourHelper(testServer)

	tour := tourHelper.SeedTour(t, fixtures.NewTour("The Forest Hiker").BuildPtr())
	alice, aliceToken := authHelper.CreateUserWithRole(t, models.RoleUser)
	_, bobToken := authHelper.CreateUserWithRole(t, models.RoleUser)
	_, adminToken := authHelper.CreateUserWithRole(t, models.RoleAdmin)
	nested := "/api/v1/tours/" + tour.ID.Hex() + "/reviews"

	var aliceReview string
	t.Run("nested create sets tour and author", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, nested, aliceToken,
			map[string]interface{}{"review": "Great hike", "rating": 5})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		doc := testutil.Doc(t, w)
		assert.Equal(t, tour.ID.Hex(), doc["tour"])
		assert.Equal(t, alice.ID.Hex(), doc["user"])
		aliceReview = doc["id"].(string)

		stored := tourHelper.GetTour(t, tour.ID)
		assert.Equal(t, 1, stored.RatingsQuantity)
		assert.Equal(t, 5.0, stored.RatingsAverage)
	})

	t.Run("second reviewer moves the average", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, nested, bobToken,
			map[string]interface{}{"review": "Pretty good", "rating": 4})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		stored := tourHelper.GetTour(t, tour.ID)
		assert.Equal(t, 2, stored.RatingsQuantity)
		assert.Equal(t, 4.5, stored.RatingsAverage)
	})

	t.Run("one review per user and tour", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, nested, aliceToken,
			map[string]interface{}{"review": "Again!", "rating": 1})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "You have already reviewed this tour", testutil.ParseBody(t, w)["message"])
		assert.Equal(t, 2, tourHelper.GetTour(t, tour.ID).RatingsQuantity)
	})

	t.Run("update recomputes", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPatch, "/api/v1/reviews/"+aliceReview, aliceToken,
			map[string]interface{}{"rating": 3})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		stored := tourHelper.GetTour(t, tour.ID)
		assert.Equal(t, 2, stored.RatingsQuantity)
		assert.Equal(t, 3.5, stored.RatingsAverage)
	})

	t.Run("populated tour embeds reviews with authors", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/api/v1/tours/"+tour.ID.Hex(), nil)

		require.Equal(t, http.StatusOK, w.Code)
		reviews, ok := testutil.Doc(t, w)["reviews"].([]interface{})
		require.True(t, ok)
		assert.Len(t, reviews, 2)
	})

	t.Run("nested list is scoped to the tour", func(t *testing.T) {
		other := tourHelper.SeedTour(t, fixtures.NewTour("The Sea Explorer").BuildPtr())
		tourHelper.SeedReview(t, fixtures.NewReview(other.ID, alice.ID, 2))

		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodGet, nested, aliceToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, testutil.Docs(t, w), 2)

		w = testutil.MakeAuthRequest(t, testServer.Router, http.MethodGet, "/api/v1/reviews", aliceToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, testutil.Docs(t, w), 3)
	})

	t.Run("deleting every review restores the default rating", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodGet, nested, adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		for _, doc := range testutil.Docs(t, w) {
			w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodDelete, "/api/v1/reviews/"+doc["id"].(string), adminToken, nil)
			require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		}

		stored := tourHelper.GetTour(t, tour.ID)
		assert.Equal(t, 0, stored.RatingsQuantity)
		assert.Equal(t, models.DefaultRatingsAverage, stored.RatingsAverage)
	})
}

// TestReviewAccess tests who may write reviews.
func TestReviewAccess(t *testing.T) {
	testServer.CleanupBetweenTests(t)
	authHelper := testserver.NewAuthHelper(testServer)
	tourHelper := testserver.NewTourHelper(testServer)

	tour := tourHelper.SeedTour(t, fixtures.NewTour("The Forest Hiker").BuildPtr())
	_, guideToken := authHelper.CreateUserWithRole(t, models.RoleGuide)
	_, adminToken := authHelper.CreateUserWithRole(t, models.RoleAdmin)
	body := map[string]interface{}{"review": "Nice", "rating": 4, "tour": tour.ID.Hex()}

	t.Run("anonymous reads are rejected", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/api/v1/reviews", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("guides cannot review", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, "/api/v1/reviews", guideToken, body)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admins cannot review", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, "/api/v1/reviews", adminToken, body)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("rating out of range", func(t *testing.T) {
		_, userToken := authHelper.CreateUserWithRole(t, models.RoleUser)
		bad := map[string]interface{}{"review": "Nice", "rating": 6, "tour": tour.ID.Hex()}

		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, "/api/v1/reviews", userToken, bad)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, testutil.ParseBody(t, w)["message"], "Invalid input data.")
	})
}
