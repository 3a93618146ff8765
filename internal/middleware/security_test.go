package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityHeaders(t *testing.T) {
	r := newEngine(SecurityHeaders())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/", "")

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "max-age=15552000; includeSubDomains", w.Header().Get("Strict-Transport-Security"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'self'")
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		expectedStatus int
		handlerCalled  bool
	}{
		{"GET passes through", http.MethodGet, http.StatusOK, true},
		{"PATCH passes through", http.MethodPatch, http.StatusOK, true},
		{"preflight stops at 204", http.MethodOptions, http.StatusNoContent, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			r := gin.New()
			r.Use(CORS())
			r.Handle(tt.method, "/test", func(c *gin.Context) {
				called = true
				c.Status(http.StatusOK)
			})

			w := serve(r, tt.method, "/test", "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.handlerCalled, called)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "GET, POST, PATCH, DELETE, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
		})
	}
}

func TestStatic(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "img", "tours"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "img", "tours", "tour-1-cover.jpg"), []byte("jpeg"), 0o644))

	r := newEngine(Static(dir))
	r.GET("/img/tours", func(c *gin.Context) { c.String(http.StatusOK, "router") })
	r.POST("/img/tours/tour-1-cover.jpg", func(c *gin.Context) { c.String(http.StatusOK, "router") })
	r.NoRoute(func(c *gin.Context) { c.String(http.StatusNotFound, "missing") })

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode int
		wantBody string
	}{
		{"existing file is served", http.MethodGet, "/img/tours/tour-1-cover.jpg", http.StatusOK, "jpeg"},
		{"directory goes to the router", http.MethodGet, "/img/tours", http.StatusOK, "router"},
		{"POST goes to the router", http.MethodPost, "/img/tours/tour-1-cover.jpg", http.StatusOK, "router"},
		{"traversal stays inside the root", http.MethodGet, "/../../etc/passwd", http.StatusNotFound, "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, tt.method, tt.path, "")

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestRequestContext(t *testing.T) {
	r := newEngine(RequestID(), Cookies(), RequestTime())
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":     c.GetString(RequestIDKey),
			"time":   c.GetString(RequestTimeKey),
			"cookie": Cookie(c, "theme"),
		})
	})

	t.Run("generates ids and parses cookies", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "theme", Value: "dark"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		body := decodeBody(t, w)
		assert.NotEmpty(t, body["id"])
		assert.Equal(t, body["id"], w.Header().Get(RequestIDHeader))
		assert.Equal(t, "dark", body["cookie"])
		_, err := time.Parse(time.RFC3339, body["time"].(string))
		assert.NoError(t, err)
	})

	t.Run("keeps incoming request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", decodeBody(t, w)["id"])
	})
}
