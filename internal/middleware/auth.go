// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"strings"

	"tour-booking/internal/authz"
	apperrors "tour-booking/internal/errors"
	"tour-booking/internal/models"
	"tour-booking/internal/service"

	"github.com/gin-gonic/gin"
)

// Context keys for storing request data
const (
	UserKey        = "user"
	CookiesKey     = "cookies"
	RequestIDKey   = "requestID"
	RequestTimeKey = "requestTime"
)

// JWTCookie is the cookie carrying the access token.
const JWTCookie = "jwt"

// Protect returns a middleware that requires a valid token from the
// Authorization header or the jwt cookie, and loads the user it belongs to.
func Protect(auth service.AuthServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = Cookie(c, JWTCookie)
		}
		if token == "" {
			abortWithError(c, apperrors.ErrNotLoggedIn)
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// RestrictTo returns a middleware that lets through only roles allowed to perform action.
// It must run after Protect.
func RestrictTo(authorizer authz.Authorizer, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortWithError(c, apperrors.ErrNotLoggedIn)
			return
		}

		allowed, err := authorizer.CanPerform(c.Request.Context(), user.Role, action)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if !allowed {
			abortWithError(c, apperrors.ErrForbidden)
			return
		}

		c.Next()
	}
}

// CurrentUser returns the user loaded by Protect, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, exists := c.Get(UserKey)
	if !exists {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" {
		return ""
	}
	return strings.TrimSpace(token)
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
