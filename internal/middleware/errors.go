package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	apperrors "tour-booking/internal/errors"
	appvalidator "tour-booking/internal/validator"
	"tour-booking/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// panicStackKey holds the stack of a recovered panic for development output.
const panicStackKey = "panicStack"

// genericErrorMessage replaces non-operational errors in production.
const genericErrorMessage = "Something went very wrong!"

var quotedValue = regexp.MustCompile(`"(?:\\.|[^"\\])*"`)

// devErrorBody is rendered in development.
type devErrorBody struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Stack   string `json:"stack"`
}

// ErrorHandler renders the last error recorded on the context. Handlers
// record errors with c.Error and return without writing a body.
func ErrorHandler(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr := Translate(err)

		if appErr.StatusCode >= http.StatusInternalServerError {
			slog.Error("request failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"request_id", c.GetString(RequestIDKey),
				"error", err,
			)
		}

		if !production {
			c.AbortWithStatusJSON(appErr.StatusCode, devErrorBody{
				Status:  appErr.Status(),
				Error:   err.Error(),
				Message: appErr.Message,
				Stack:   c.GetString(panicStackKey),
			})
			return
		}

		if !appErr.Operational {
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{
				Status:  response.StatusError,
				Message: genericErrorMessage,
			})
			return
		}

		c.AbortWithStatusJSON(appErr.StatusCode, response.ErrorResponse{
			Status:  appErr.Status(),
			Message: appErr.Message,
		})
	}
}

// Translate maps any error onto the AppError it should be rendered as.
// Unknown errors become non-operational 500s.
func Translate(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if known, ok := apperrors.FromSentinel(err); ok {
		return known
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return apperrors.Wrap(http.StatusBadRequest,
			"Invalid input data. "+strings.Join(appvalidator.Messages(validationErrs), ". "), err)
	}

	if mongo.IsDuplicateKeyError(err) {
		return apperrors.Wrap(http.StatusBadRequest,
			fmt.Sprintf("Duplicate field value: %s. Please use another value!", duplicateValue(err)), err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		return apperrors.Wrap(http.StatusBadRequest, "Invalid JSON body", err)
	case errors.As(err, &typeErr):
		return apperrors.Wrap(http.StatusBadRequest,
			fmt.Sprintf("Invalid %s: expected %s", typeErr.Field, typeErr.Type), err)
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return apperrors.Wrap(http.StatusBadRequest, "Invalid JSON body", err)
	}

	if errors.Is(err, jwt.ErrTokenExpired) {
		return apperrors.Wrap(http.StatusUnauthorized, apperrors.ErrTokenExpired.Error(), err)
	}
	if isJWTError(err) {
		return apperrors.Wrap(http.StatusUnauthorized, apperrors.ErrInvalidToken.Error(), err)
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.Wrap(http.StatusNotFound, apperrors.ErrDocumentNotFound.Error(), err)
	}

	return &apperrors.AppError{
		StatusCode: http.StatusInternalServerError,
		Message:    err.Error(),
		Err:        err,
	}
}

// NotFound handles requests that matched no route.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(apperrors.New(http.StatusNotFound,
			fmt.Sprintf("Can't find %s on this server!", c.Request.URL.Path)))
	}
}

func duplicateValue(err error) string {
	if v := quotedValue.FindString(err.Error()); v != "" {
		return v
	}
	return "value"
}

func isJWTError(err error) bool {
	for _, target := range []error{
		jwt.ErrTokenMalformed,
		jwt.ErrTokenSignatureInvalid,
		jwt.ErrSignatureInvalid,
		jwt.ErrTokenUnverifiable,
		jwt.ErrTokenNotValidYet,
		jwt.ErrTokenInvalidClaims,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
