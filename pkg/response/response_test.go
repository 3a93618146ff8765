package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestDocument(t *testing.T) {
	c, w := setupTestContext()

	Document(c, http.StatusCreated, gin.H{"name": "The Forest Hiker"})

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, "success", body["status"])
	assert.NotContains(t, body, "results")
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "The Forest Hiker", data["data"].(map[string]interface{})["name"])
}

func TestList(t *testing.T) {
	t.Run("includes results count", func(t *testing.T) {
		c, w := setupTestContext()

		List(c, []string{"a", "b"}, 2)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, float64(2), body["results"])
		assert.Len(t, body["data"].(map[string]interface{})["data"], 2)
	})

	t.Run("zero results are still rendered", func(t *testing.T) {
		c, w := setupTestContext()

		List(c, []string{}, 0)

		body := decode(t, w)
		assert.Equal(t, float64(0), body["results"])
	})
}

func TestSuccess(t *testing.T) {
	c, w := setupTestContext()

	Success(c, gin.H{"session": gin.H{"id": "cs_test"}})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "cs_test", body["session"].(map[string]interface{})["id"])
}

func TestNoContent(t *testing.T) {
	router := gin.New()
	router.DELETE("/test", func(c *gin.Context) {
		NoContent(c)
	})

	req := httptest.NewRequest(http.MethodDelete, "/test", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestError(t *testing.T) {
	tests := []struct {
		name           string
		code           int
		expectedStatus string
	}{
		{"bad request is fail", http.StatusBadRequest, "fail"},
		{"not found is fail", http.StatusNotFound, "fail"},
		{"too many requests is fail", http.StatusTooManyRequests, "fail"},
		{"internal error is error", http.StatusInternalServerError, "error"},
		{"bad gateway is error", http.StatusBadGateway, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := setupTestContext()

			Error(c, tt.code, "something")

			assert.Equal(t, tt.code, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.expectedStatus, body["status"])
			assert.Equal(t, "something", body["message"])
		})
	}
}
