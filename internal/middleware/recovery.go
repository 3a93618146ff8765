package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into an error on the context so ErrorHandler
// renders it like any other failure.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.Set(panicStackKey, string(debug.Stack()))
				abortWithError(c, fmt.Errorf("panic: %v", r))
			}
		}()
		c.Next()
	}
}
