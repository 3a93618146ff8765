package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"tour-booking/internal/middleware"
	"tour-booking/internal/models"
	"tour-booking/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.RegisterCustomValidators()
}

// newRouter returns an engine that renders errors and, when user is set,
// behaves as if the request was authenticated as user.
func newRouter(user *models.User) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler(true))
	if user != nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.UserKey, user)
			c.Next()
		})
	}
	return r
}

func doRequest(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	return doRequestWithHeaders(r, method, target, body, nil)
}

func doRequestWithHeaders(r *gin.Engine, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// dataOf returns body.data.data.
func dataOf(t *testing.T, w *httptest.ResponseRecorder) interface{} {
	t.Helper()
	body := parseBody(t, w)
	envelope, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "missing data envelope in %s", w.Body.String())
	return envelope["data"]
}

func testUser(role string) *models.User {
	return &models.User{
		Base:   models.Base{ID: primitive.NewObjectID()},
		Name:   "Leo Gillespie",
		Email:  "leo@example.com",
		Photo:  models.DefaultPhoto,
		Role:   role,
		Active: true,
	}
}
