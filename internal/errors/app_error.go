package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is an error that knows how it should be rendered to a client.
// Operational errors are expected failures whose message is safe to expose.
type AppError struct {
	StatusCode  int
	Message     string
	Operational bool
	Err         error
}

// New creates an operational AppError.
func New(statusCode int, message string) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Operational: true}
}

// Wrap creates an operational AppError that keeps the underlying cause.
func Wrap(statusCode int, message string, err error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Operational: true, Err: err}
}

// Error implements error.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the cause.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Status returns "fail" for 4xx codes and "error" otherwise.
func (e *AppError) Status() string {
	if e.StatusCode >= 400 && e.StatusCode < 500 {
		return "fail"
	}
	return "error"
}

var sentinelStatus = map[error]int{
	ErrDocumentNotFound:    http.StatusNotFound,
	ErrInvalidID:           http.StatusBadRequest,
	ErrEmptyUpdate:         http.StatusBadRequest,
	ErrUserNotFound:        http.StatusNotFound,
	ErrInvalidCredentials:  http.StatusUnauthorized,
	ErrMissingCredentials:  http.StatusBadRequest,
	ErrPasswordRoute:       http.StatusBadRequest,
	ErrWrongPassword:       http.StatusUnauthorized,
	ErrPasswordMismatch:    http.StatusBadRequest,
	ErrUseSignup:           http.StatusInternalServerError,
	ErrNotLoggedIn:         http.StatusUnauthorized,
	ErrUserNoLongerExists:  http.StatusUnauthorized,
	ErrPasswordChanged:     http.StatusUnauthorized,
	ErrForbidden:           http.StatusForbidden,
	ErrInvalidToken:        http.StatusUnauthorized,
	ErrTokenExpired:        http.StatusUnauthorized,
	ErrResetTokenInvalid:   http.StatusBadRequest,
	ErrEmailDeliveryFailed: http.StatusInternalServerError,
	ErrTourNotFound:        http.StatusNotFound,
	ErrPaymentDisabled:     http.StatusServiceUnavailable,
	ErrCheckoutFailed:      http.StatusBadGateway,
	ErrDuplicateReview:     http.StatusBadRequest,
	ErrTooManyRequests:     http.StatusTooManyRequests,
}

// FromSentinel converts a known sentinel (possibly wrapped) into an AppError.
func FromSentinel(err error) (*AppError, bool) {
	for sentinel, code := range sentinelStatus {
		if errors.Is(err, sentinel) {
			return Wrap(code, sentinel.Error(), err), true
		}
	}
	return nil, false
}
