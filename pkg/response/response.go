// Package response provides JSend-style API response helpers.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Status values carried in every body.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// DataEnvelope wraps a single document or a list.
type DataEnvelope struct {
	Data interface{} `json:"data"`
}

// Response is the envelope for factory-style success responses.
type Response struct {
	Status  string        `json:"status" example:"success"`
	Results *int          `json:"results,omitempty" example:"1"`
	Data    *DataEnvelope `json:"data,omitempty"`
}

// ErrorResponse is the body rendered for failures.
type ErrorResponse struct {
	Status  string `json:"status" example:"fail"`
	Message string `json:"message" example:"No document found with that ID"`
}

// StatusFor maps an HTTP status code to "fail" (4xx) or "error" (everything else).
func StatusFor(code int) string {
	if code >= 400 && code < 500 {
		return StatusFail
	}
	return StatusError
}

// Document sends {status, data: {data: doc}} with the given code.
func Document(c *gin.Context, code int, doc interface{}) {
	c.JSON(code, Response{
		Status: StatusSuccess,
		Data:   &DataEnvelope{Data: doc},
	})
}

// List sends {status, results, data: {data: docs}}.
func List(c *gin.Context, docs interface{}, count int) {
	c.JSON(http.StatusOK, Response{
		Status:  StatusSuccess,
		Results: &count,
		Data:    &DataEnvelope{Data: docs},
	})
}

// Success sends 200 with status "success" merged into fields.
func Success(c *gin.Context, fields gin.H) {
	body := gin.H{"status": StatusSuccess}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// NoContent sends a 204 No Content response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends {status, message} with the given status code.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{
		Status:  StatusFor(code),
		Message: message,
	})
}
