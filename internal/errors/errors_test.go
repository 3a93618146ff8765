package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"ErrDocumentNotFound", ErrDocumentNotFound, "No document found with that ID"},
		{"ErrTooManyRequests", ErrTooManyRequests, "Too many requests from this IP, please try again in an hour!"},
		{"ErrForbidden", ErrForbidden, "You do not have permission to perform this action"},
		{"ErrInvalidToken", ErrInvalidToken, "Invalid token. Please log in again!"},
		{"ErrTokenExpired", ErrTokenExpired, "Your token has expired! Please log in again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError(t *testing.T) {
	t.Run("4xx renders fail", func(t *testing.T) {
		err := New(http.StatusNotFound, "missing")

		assert.Equal(t, "fail", err.Status())
		assert.True(t, err.Operational)
		assert.Equal(t, "missing", err.Error())
	})

	t.Run("5xx renders error", func(t *testing.T) {
		err := New(http.StatusInternalServerError, "boom")

		assert.Equal(t, "error", err.Status())
	})

	t.Run("wrap keeps cause", func(t *testing.T) {
		cause := errors.New("socket closed")
		err := Wrap(http.StatusBadGateway, "upstream failed", cause)

		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "upstream failed: socket closed", err.Error())
	})

	t.Run("errors.As finds wrapped AppError", func(t *testing.T) {
		wrapped := fmt.Errorf("handler: %w", New(http.StatusBadRequest, "bad"))

		var appErr *AppError
		require.True(t, errors.As(wrapped, &appErr))
		assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	})
}

func TestFromSentinel(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedMsg  string
		ok           bool
	}{
		{"not found", ErrDocumentNotFound, http.StatusNotFound, "No document found with that ID", true},
		{"wrapped forbidden", fmt.Errorf("restrict: %w", ErrForbidden), http.StatusForbidden, "You do not have permission to perform this action", true},
		{"not logged in", ErrNotLoggedIn, http.StatusUnauthorized, "You are not logged in! Please log in to get access.", true},
		{"rate limited", ErrTooManyRequests, http.StatusTooManyRequests, "Too many requests from this IP, please try again in an hour!", true},
		{"signup only", ErrUseSignup, http.StatusInternalServerError, "This route is not defined! Please use /signup instead", true},
		{"unknown error", errors.New("kaboom"), 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr, ok := FromSentinel(tt.err)

			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				assert.Nil(t, appErr)
				return
			}
			assert.Equal(t, tt.expectedCode, appErr.StatusCode)
			assert.Equal(t, tt.expectedMsg, appErr.Message)
			assert.True(t, appErr.Operational)
		})
	}
}
