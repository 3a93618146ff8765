package middleware

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// MongoSanitize removes operator keys from the JSON body and query string
// and strips leading "$" from route parameters.
func MongoSanitize() gin.HandlerFunc {
	return func(c *gin.Context) {
		if body, ok := c.Get(bodyKey); ok {
			if cleaned, changed := dropOperatorKeys(body); changed {
				setJSONBody(c, cleaned)
			}
		}

		query := c.Request.URL.Query()
		changed := false
		for k := range query {
			if isOperatorKey(k) {
				delete(query, k)
				changed = true
			}
		}
		if changed {
			c.Request.URL.RawQuery = query.Encode()
		}

		for i := range c.Params {
			c.Params[i].Value = strings.TrimLeft(c.Params[i].Value, "$")
		}

		c.Next()
	}
}

// XSS strips markup from every string in the body, query and route params.
func XSS(policy *bluemonday.Policy) gin.HandlerFunc {
	clean := func(s string) string {
		if !strings.ContainsAny(s, "<>") {
			return s
		}
		return policy.Sanitize(s)
	}

	return func(c *gin.Context) {
		if body, ok := c.Get(bodyKey); ok {
			if cleaned, changed := mapStrings(body, clean); changed {
				setJSONBody(c, cleaned)
			}
		}

		query := c.Request.URL.Query()
		if cleaned, changed := mapQuery(query, clean); changed {
			c.Request.URL.RawQuery = cleaned.Encode()
		}

		for i := range c.Params {
			c.Params[i].Value = clean(c.Params[i].Value)
		}

		c.Next()
	}
}

func isOperatorKey(k string) bool {
	return strings.HasPrefix(k, "$") || strings.Contains(k, ".") || strings.Contains(k, "[$")
}

func dropOperatorKeys(v any) (any, bool) {
	switch t := v.(type) {
	case map[string]any:
		changed := false
		for k, child := range t {
			if isOperatorKey(k) {
				delete(t, k)
				changed = true
				continue
			}
			if cleaned, ok := dropOperatorKeys(child); ok {
				t[k] = cleaned
				changed = true
			}
		}
		return t, changed
	case []any:
		changed := false
		for i, child := range t {
			if cleaned, ok := dropOperatorKeys(child); ok {
				t[i] = cleaned
				changed = true
			}
		}
		return t, changed
	}
	return v, false
}

func mapStrings(v any, fn func(string) string) (any, bool) {
	switch t := v.(type) {
	case string:
		out := fn(t)
		return out, out != t
	case map[string]any:
		changed := false
		for k, child := range t {
			if cleaned, ok := mapStrings(child, fn); ok {
				t[k] = cleaned
				changed = true
			}
		}
		return t, changed
	case []any:
		changed := false
		for i, child := range t {
			if cleaned, ok := mapStrings(child, fn); ok {
				t[i] = cleaned
				changed = true
			}
		}
		return t, changed
	}
	return v, false
}

func mapQuery(q url.Values, fn func(string) string) (url.Values, bool) {
	changed := false
	for k, vs := range q {
		for i, v := range vs {
			if out := fn(v); out != v {
				vs[i] = out
				changed = true
			}
		}
		q[k] = vs
	}
	return q, changed
}
