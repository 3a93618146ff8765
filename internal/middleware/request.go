package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID reuses an incoming X-Request-ID or generates one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestTime stores the time the request reached the API as RFC3339.
func RequestTime() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(RequestTimeKey, time.Now().UTC().Format(time.RFC3339))
		c.Next()
	}
}

// Cookies exposes the request cookies as a map on the context.
func Cookies() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookies := make(map[string]string)
		for _, ck := range c.Request.Cookies() {
			cookies[ck.Name] = ck.Value
		}
		c.Set(CookiesKey, cookies)
		c.Next()
	}
}

// Cookie returns a parsed cookie value, falling back to the raw request.
func Cookie(c *gin.Context, name string) string {
	if v, ok := c.Get(CookiesKey); ok {
		if cookies, ok := v.(map[string]string); ok {
			return cookies[name]
		}
	}
	value, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return value
}
