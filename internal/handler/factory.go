// Package handler contains HTTP handlers for the API.
package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	apperrors "tour-booking/internal/errors"
	"tour-booking/internal/models"
	"tour-booking/internal/service"
	"tour-booking/internal/validator"
	"tour-booking/pkg/response"

	"github.com/gin-gonic/gin"
)

// Factory implements the create, read, list, update and delete handlers for
// one document type.
type Factory[T any] struct {
	service service.Resourcer[T]
	// Populate joins references on GetOne.
	Populate bool
	// Prepare adjusts a decoded document before it is validated on create.
	Prepare func(c *gin.Context, doc *T)
	// Scope narrows GetAll, e.g. to the parent of a nested route.
	Scope func(c *gin.Context, q *models.ListQuery) error
}

// NewFactory creates a Factory over svc.
func NewFactory[T any](svc service.Resourcer[T]) *Factory[T] {
	return &Factory[T]{service: svc}
}

// CreateOne decodes, validates and inserts a document.
func (f *Factory[T]) CreateOne(c *gin.Context) {
	var doc T
	if err := json.NewDecoder(c.Request.Body).Decode(&doc); err != nil {
		_ = c.Error(invalidBody(err))
		return
	}

	if f.Prepare != nil {
		f.Prepare(c, &doc)
	}
	if d, ok := any(&doc).(models.Defaulter); ok {
		d.ApplyDefaults()
	}
	if err := validator.Validate(&doc); err != nil {
		_ = c.Error(err)
		return
	}

	created, err := f.service.Create(c.Request.Context(), &doc)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Document(c, http.StatusCreated, created)
}

// GetOne returns the document named by the id path parameter.
func (f *Factory[T]) GetOne(c *gin.Context) {
	doc, err := f.service.Get(c.Request.Context(), c.Param("id"), f.Populate)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Document(c, http.StatusOK, doc)
}

// GetAll lists documents matching the query string.
func (f *Factory[T]) GetAll(c *gin.Context) {
	q := ParseListQuery(c.Request.URL.Query())
	if f.Scope != nil {
		if err := f.Scope(c, q); err != nil {
			_ = c.Error(err)
			return
		}
	}

	docs, err := f.service.List(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if docs == nil {
		docs = []T{}
	}

	response.List(c, docs, len(docs))
}

// UpdateOne overlays the JSON body on the stored document and validates the result.
func (f *Factory[T]) UpdateOne(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		_ = c.Error(err)
		return
	}

	doc, err := f.service.Update(c.Request.Context(), c.Param("id"), func(doc *T) error {
		if len(bytes.TrimSpace(raw)) > 0 {
			if err := json.Unmarshal(raw, doc); err != nil {
				return invalidBody(err)
			}
		}
		return validator.Validate(doc)
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Document(c, http.StatusOK, doc)
}

// DeleteOne removes the document named by the id path parameter.
func (f *Factory[T]) DeleteOne(c *gin.Context) {
	if _, err := f.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}

	response.NoContent(c)
}

// invalidBody reports a body that does not decode into the document type,
// such as a malformed ObjectID reference.
func invalidBody(err error) error {
	return apperrors.Wrap(http.StatusBadRequest, "Invalid input data. "+err.Error(), err)
}
