package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// MakeRequest creates and executes a test HTTP request.
func MakeRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return Do(t, router, NewRequest(t, method, path, body))
}

// MakeAuthRequest creates a request with a bearer token.
func MakeAuthRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	req := NewRequest(t, method, path, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return Do(t, router, req)
}

// MakeCookieRequest creates a request that authenticates with the jwt cookie.
func MakeCookieRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	req := NewRequest(t, method, path, body)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: token})
	return Do(t, router, req)
}

// NewRequest builds a request with an optional JSON body.
func NewRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()

	reqBody := bytes.NewBuffer(nil)
	switch b := body.(type) {
	case nil:
	case []byte:
		reqBody = bytes.NewBuffer(b)
	default:
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, path, reqBody)
	require.NoError(t, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// Do serves req and returns the recorded response.
func Do(t *testing.T, router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ParseResponse parses JSON response into target struct.
func ParseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	err := json.Unmarshal(w.Body.Bytes(), target)
	require.NoError(t, err, "body: %s", w.Body.String())
}

// ParseBody parses a JSON object response.
func ParseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	ParseResponse(t, w, &body)
	return body
}

// Doc returns body.data.data as an object.
func Doc(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	data, ok := ParseBody(t, w)["data"].(map[string]interface{})
	require.True(t, ok, "response should carry data: %s", w.Body.String())
	doc, ok := data["data"].(map[string]interface{})
	require.True(t, ok, "data should wrap a document: %s", w.Body.String())
	return doc
}

// Docs returns body.data.data as a list of objects.
func Docs(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()

	data, ok := ParseBody(t, w)["data"].(map[string]interface{})
	require.True(t, ok, "response should carry data: %s", w.Body.String())
	raw, ok := data["data"].([]interface{})
	require.True(t, ok, "data should wrap a list: %s", w.Body.String())

	docs := make([]map[string]interface{}, 0, len(raw))
	for _, d := range raw {
		doc, ok := d.(map[string]interface{})
		require.True(t, ok)
		docs = append(docs, doc)
	}
	return docs
}
