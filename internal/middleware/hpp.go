package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// HPPWhitelist lists the query fields that may repeat.
var HPPWhitelist = []string{
	"duration",
	"ratingsQuantity",
	"ratingsAverage",
	"maxGroupSize",
	"difficulty",
	"price",
}

// HPP keeps only the last value of repeated query parameters, except for
// whitelisted fields. A field matches with or without an operator suffix
// such as price[gte].
func HPP(whitelist ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(whitelist))
	for _, f := range whitelist {
		allowed[f] = true
	}

	return func(c *gin.Context) {
		query := c.Request.URL.Query()
		changed := false
		for k, vs := range query {
			if len(vs) < 2 {
				continue
			}
			field, _, _ := strings.Cut(k, "[")
			if allowed[field] {
				continue
			}
			query[k] = vs[len(vs)-1:]
			changed = true
		}
		if changed {
			c.Request.URL.RawQuery = query.Encode()
		}
		c.Next()
	}
}
