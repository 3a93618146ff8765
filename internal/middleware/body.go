package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	apperrors "tour-booking/internal/errors"

	"github.com/gin-gonic/gin"
)

// bodyKey holds the decoded JSON body for the sanitizers.
const bodyKey = "jsonBody"

// DefaultBodyLimit is the largest accepted request body, exclusive.
const DefaultBodyLimit = 10 * 1024

// BodyParser reads the request body once. Bodies of limit bytes or more are
// rejected with 413, non-JSON bodies with 415, and JSON bodies must parse.
// The body is left readable for handlers.
func BodyParser(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}

		if c.Request.ContentLength >= limit {
			abortWithError(c, tooLarge())
			return
		}

		raw, err := io.ReadAll(io.LimitReader(c.Request.Body, limit))
		_ = c.Request.Body.Close()
		if err != nil {
			abortWithError(c, apperrors.Wrap(http.StatusBadRequest, "Could not read request body", err))
			return
		}
		if int64(len(raw)) >= limit {
			abortWithError(c, tooLarge())
			return
		}
		resetBody(c, raw)

		if len(bytes.TrimSpace(raw)) == 0 {
			c.Next()
			return
		}
		// The sanitizers only see decoded JSON.
		if !isJSON(c) {
			abortWithError(c, apperrors.New(http.StatusUnsupportedMediaType, "Request body must be application/json"))
			return
		}

		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var body any
		if err := dec.Decode(&body); err != nil {
			abortWithError(c, apperrors.Wrap(http.StatusBadRequest, "Invalid JSON body", err))
			return
		}
		c.Set(bodyKey, body)

		c.Next()
	}
}

// setJSONBody replaces the request body with v.
func setJSONBody(c *gin.Context, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.Set(bodyKey, v)
	resetBody(c, raw)
}

func resetBody(c *gin.Context, raw []byte) {
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	c.Request.ContentLength = int64(len(raw))
}

func isJSON(c *gin.Context) bool {
	ct := c.ContentType()
	return ct == "" || ct == gin.MIMEJSON || strings.HasSuffix(ct, "+json")
}

func tooLarge() error {
	return apperrors.New(http.StatusRequestEntityTooLarge, "Request entity too large")
}
