//go:build api

package api

import (
	"bytes"
	"io"
	"net/http"
	"testing"
	"time"

	"tour-booking/internal/models"
	"tour-booking/internal/storage"
	"tour-booking/test/api/testserver"
	"tour-booking/test/fixtures"
	"tour-booking/test/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTourBody() map[string]interface{} {
	return map[string]interface{}{
		"name":         "The Forest Hiker",
		"duration":     5,
		"maxGroupSize": 25,
		"difficulty":   "easy",
		"price":        397,
		"summary":      "Breathtaking hike through the Canadian Banff National Park",
		"imageCover":   "tour-1-cover.jpg",
	}
}

// TestTourCRUD tests the tour resource round trip.
func TestTourCRUD(t *testing.T) {
	testServer.CleanupBetweenTests(t)
	authHelper := testserver.NewAuthHelper(testServer)
	_, leadToken := authHelper.CreateUserWithRole(t, models.RoleLeadGuide)
	_, userToken := authHelper.CreateUserWithRole(t, models.RoleUser)

	t.Run("anonymous create is rejected", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/v1/tours", newTourBody())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("regular user create is forbidden", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, "/api/v1/tours", userToken, newTourBody())
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	var id string
	t.Run("create applies defaults and slug", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, "/api/v1/tours", leadToken, newTourBody())

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		doc := testutil.Doc(t, w)
		assert.Equal(t, "the-forest-hiker", doc["slug"])
		assert.Equal(t, 4.5, doc["ratingsAverage"])
		assert.Equal(t, float64(0), doc["ratingsQuantity"])
		id = doc["id"].(string)
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, "/api/v1/tours", leadToken, newTourBody())

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, testutil.ParseBody(t, w)["message"], "Duplicate field value")
	})

	t.Run("get is public", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/api/v1/tours/"+id, nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "The Forest Hiker", testutil.Doc(t, w)["name"])
	})

	t.Run("update validates and re-slugs", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPatch, "/api/v1/tours/"+id, leadToken,
			map[string]interface{}{"priceDiscount": 500})
		assert.Equal(t, http.StatusBadRequest, w.Code, "discount must stay below price")

		w = testutil.MakeAuthRequest(t, testServer.Router, http.MethodPatch, "/api/v1/tours/"+id, leadToken,
			map[string]interface{}{"name": "The Forest Wanderer", "price": 450})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		doc := testutil.Doc(t, w)
		assert.Equal(t, "the-forest-wanderer", doc["slug"])
		assert.Equal(t, float64(450), doc["price"])
		assert.Equal(t, float64(5), doc["duration"])
	})

	t.Run("delete twice", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodDelete, "/api/v1/tours/"+id, leadToken, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = testutil.MakeAuthRequest(t, testServer.Router, http.MethodDelete, "/api/v1/tours/"+id, leadToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "No document found with that ID", testutil.ParseBody(t, w)["message"])
	})
}

// TestTourList tests filtering, sorting, projection and paging.
func TestTourList(t *testing.T) {
	testServer.CleanupBetweenTests(t)
	tourHelper := testserver.NewTourHelper(testServer)

	tourHelper.SeedTour(t, fixtures.NewTour("The Forest Hiker").WithPrice(397).WithDifficulty("easy").BuildPtr())
	tourHelper.SeedTour(t, fixtures.NewTour("The Sea Explorer").WithPrice(497).WithDifficulty("medium").WithRatings(4.8, 10).BuildPtr())
	tourHelper.SeedTour(t, fixtures.NewTour("The Snow Adventurer").WithPrice(997).WithDifficulty("difficult").WithRatings(4.9, 3).BuildPtr())
	tourHelper.SeedTour(t, fixtures.NewTour("The Secret Expedition").WithPrice(100).Secret().BuildPtr())

	names := func(docs []map[string]interface{}) []string {
		out := make([]string, 0, len(docs))
		for _, d := range docs {
			out = append(out, d["name"].(string))
		}
		return out
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"secret tours are hidden", "?sort=price", []string{"The Forest Hiker", "The Sea Explorer", "The Snow Adventurer"}},
		{"comparison filter", "?price[lt]=900&sort=-price", []string{"The Sea Explorer", "The Forest Hiker"}},
		{"equality filter", "?difficulty=difficult", []string{"The Snow Adventurer"}},
		{"repeated whitelisted param", "?difficulty=easy&difficulty=medium&sort=price", []string{"The Forest Hiker", "The Sea Explorer"}},
		{"paging", "?sort=price&limit=2&page=2", []string{"The Snow Adventurer"}},
		{"page past the end", "?sort=price&limit=2&page=5", []string{}},
		{"top five cheap", "", []string{"The Snow Adventurer", "The Sea Explorer", "The Forest Hiker"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := "/api/v1/tours" + tt.query
			if tt.query == "" {
				path = "/api/v1/tours/top-5-cheap"
			}

			w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, path, nil)

			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			docs := testutil.Docs(t, w)
			assert.Equal(t, tt.want, names(docs))
			assert.Equal(t, float64(len(tt.want)), testutil.ParseBody(t, w)["results"])
		})
	}

	t.Run("field projection", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/api/v1/tours?fields=name,price&sort=price&limit=1", nil)

		require.Equal(t, http.StatusOK, w.Code)
		docs := testutil.Docs(t, w)
		require.Len(t, docs, 1)
		assert.Equal(t, "The Forest Hiker", docs[0]["name"])
		assert.Equal(t, float64(397), docs[0]["price"])
		assert.Empty(t, docs[0]["summary"])
	})
}

// TestTourImages tests that cover images resolve to presigned object URLs.
func TestTourImages(t *testing.T) {
	testServer.CleanupBetweenTests(t)
	tourHelper := testserver.NewTourHelper(testServer)
	tour := tourHelper.SeedTour(t, fixtures.NewTour("The Forest Hiker").WithImageCover("forest.jpg").BuildPtr())

	ctx, cancel := testutil.TestContext()
	defer cancel()
	image := []byte("\xff\xd8\xff\xe0fake-jpeg")
	err := testServer.Images.PutObject(ctx, storage.TourImagePrefix+"forest.jpg", bytes.NewReader(image), "image/jpeg")
	require.NoError(t, err)
	require.True(t, testServer.MinIO.ObjectExists(ctx, storage.TourImagePrefix+"forest.jpg"))

	w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/api/v1/tours/"+tour.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	url, ok := testutil.Doc(t, w)["imageCoverUrl"].(string)
	require.True(t, ok, "imageCoverUrl should be set")
	assert.Contains(t, url, testServer.MinIO.Bucket+"/"+storage.TourImagePrefix+"forest.jpg")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, image, got)
}

// TestTourStats tests GET /api/v1/tours/tour-stats and its Redis cache.
func TestTourStats(t *testing.T) {
	testServer.CleanupBetweenTests(t)
	tourHelper := testserver.NewTourHelper(testServer)
	authHelper := testserver.NewAuthHelper(testServer)
	_, adminToken := authHelper.CreateUserWithRole(t, models.RoleAdmin)

	tourHelper.SeedTour(t, fixtures.NewTour("The Forest Hiker").WithPrice(400).WithDifficulty("easy").BuildPtr())
	tourHelper.SeedTour(t, fixtures.NewTour("The Park Camper").WithPrice(600).WithDifficulty("easy").BuildPtr())
	tourHelper.SeedTour(t, fixtures.NewTour("The Wine Taster").WithPrice(900).WithDifficulty("medium").WithRatings(3.9, 2).BuildPtr())

	statsOf := func(t *testing.T) []interface{} {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/api/v1/tours/tour-stats", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		data := testutil.ParseBody(t, w)["data"].(map[string]interface{})
		return data["stats"].([]interface{})
	}

	stats := statsOf(t)
	require.Len(t, stats, 1, "tours rated below 4.5 are excluded")
	easy := stats[0].(map[string]interface{})
	assert.Equal(t, "EASY", easy["difficulty"])
	assert.Equal(t, float64(2), easy["numTours"])
	assert.Equal(t, float64(500), easy["avgPrice"])

	// Direct inserts bypass invalidation, so the cached result is served.
	hidden := tourHelper.SeedTour(t, fixtures.NewTour("The Sea Explorer").WithDifficulty("medium").BuildPtr())
	assert.Len(t, statsOf(t), 1)

	// Writes through the API drop the cached stats.
	w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPatch, "/api/v1/tours/"+hidden.ID.Hex(), adminToken,
		map[string]interface{}{"price": 1200})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, statsOf(t), 2)
}

// TestMonthlyPlan tests GET /api/v1/tours/monthly-plan/:year.
func TestMonthlyPlan(t *testing.T) {
	testServer.CleanupBetweenTests(t)
	tourHelper := testserver.NewTourHelper(testServer)
	authHelper := testserver.NewAuthHelper(testServer)
	_, guideToken := authHelper.CreateUserWithRole(t, models.RoleGuide)
	_, userToken := authHelper.CreateUserWithRole(t, models.RoleUser)

	july := time.Date(2021, time.July, 20, 9, 0, 0, 0, time.UTC)
	tourHelper.SeedTour(t, fixtures.NewTour("The Forest Hiker").WithStartDates(july, time.Date(2021, time.March, 1, 9, 0, 0, 0, time.UTC)).BuildPtr())
	tourHelper.SeedTour(t, fixtures.NewTour("The Sea Explorer").WithStartDates(july, time.Date(2022, time.July, 1, 9, 0, 0, 0, time.UTC)).BuildPtr())

	t.Run("regular users are forbidden", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodGet, "/api/v1/tours/monthly-plan/2021", userToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("busiest month first", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodGet, "/api/v1/tours/monthly-plan/2021", guideToken, nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		plan := testutil.ParseBody(t, w)["data"].(map[string]interface{})["plan"].([]interface{})
		require.Len(t, plan, 2)

		first := plan[0].(map[string]interface{})
		assert.Equal(t, float64(7), first["month"])
		assert.Equal(t, float64(2), first["numTourStarts"])
		assert.ElementsMatch(t, []interface{}{"The Forest Hiker", "The Sea Explorer"}, first["tours"])
	})

	t.Run("invalid year", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodGet, "/api/v1/tours/monthly-plan/soon", guideToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// TestGeoQueries tests tours-within and distances against the 2dsphere index.
func TestGeoQueries(t *testing.T) {
	testServer.CleanupBetweenTests(t)
	tourHelper := testserver.NewTourHelper(testServer)

	// Banff is roughly 1200 miles from Los Angeles, Miami roughly 2300.
	tourHelper.SeedTour(t, fixtures.NewTour("The Forest Hiker").WithStart(-115.570154, 51.178456).BuildPtr())
	tourHelper.SeedTour(t, fixtures.NewTour("The Sea Explorer").WithStart(-80.185942, 25.774772).BuildPtr())
	const la = "34.052235,-118.243683"

	t.Run("within radius in miles", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet,
			"/api/v1/tours/tours-within/1500/center/"+la+"/unit/mi", nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		docs := testutil.Docs(t, w)
		require.Len(t, docs, 1)
		assert.Equal(t, "The Forest Hiker", docs[0]["name"])
	})

	t.Run("within radius in kilometres", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet,
			"/api/v1/tours/tours-within/5000/center/"+la+"/unit/km", nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Len(t, testutil.Docs(t, w), 2)
	})

	t.Run("distances sorted nearest first", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/api/v1/tours/distances/"+la+"/unit/mi", nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		data := testutil.ParseBody(t, w)["data"].(map[string]interface{})["data"].([]interface{})
		require.Len(t, data, 2)

		near := data[0].(map[string]interface{})
		far := data[1].(map[string]interface{})
		assert.Equal(t, "The Forest Hiker", near["name"])
		assert.InDelta(t, 1200, near["distance"], 150)
		assert.InDelta(t, 2340, far["distance"], 150)
	})

	t.Run("malformed center", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/api/v1/tours/distances/nowhere/unit/mi", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Please provide latitude and longitude in the format lat,lng.", testutil.ParseBody(t, w)["message"])
	})
}
