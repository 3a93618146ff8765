package service

import (
	"context"
	"net/http"

	apperrors "tour-booking/internal/errors"
	"tour-booking/internal/models"
	"tour-booking/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// document lets Resource read and restore the id fields of *T.
type document[T any] interface {
	*T
	models.Document
}

// Hooks carry the per-type behavior of a Resource. Every hook is optional.
type Hooks[T any] struct {
	// BeforeCreate runs before a new document is inserted.
	BeforeCreate func(ctx context.Context, doc *T) error
	// BeforeUpdate runs after the patch is applied and before the document is replaced.
	BeforeUpdate func(ctx context.Context, old, doc *T) error
	// AfterWrite runs after a successful create, update or delete.
	AfterWrite func(ctx context.Context, doc *T) error
	// Resolve decorates every document returned to callers.
	Resolve func(ctx context.Context, doc *T) error
}

// Resource implements the generic CRUD operations for one document type.
type Resource[T any, PT document[T]] struct {
	store repository.Store[T]
	hooks Hooks[T]
}

// NewResource creates a Resource over store.
func NewResource[T any, PT document[T]](store repository.Store[T], hooks Hooks[T]) *Resource[T, PT] {
	return &Resource[T, PT]{store: store, hooks: hooks}
}

// ParseID converts a hex id from a request into an ObjectID.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.Wrap(http.StatusBadRequest, "Invalid id: "+id, apperrors.ErrInvalidID)
	}
	return oid, nil
}

// Create inserts a validated document.
func (r *Resource[T, PT]) Create(ctx context.Context, doc *T) (*T, error) {
	if r.hooks.BeforeCreate != nil {
		if err := r.hooks.BeforeCreate(ctx, doc); err != nil {
			return nil, err
		}
	}

	if err := r.store.Create(ctx, doc); err != nil {
		return nil, err
	}

	if err := r.afterWrite(ctx, doc); err != nil {
		return nil, err
	}
	return r.resolve(ctx, doc)
}

// Get returns one document, with references joined when populate is set.
func (r *Resource[T, PT]) Get(ctx context.Context, id string, populate bool) (*T, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	doc, err := r.store.FindByID(ctx, oid, populate)
	if err != nil {
		return nil, err
	}
	return r.resolve(ctx, doc)
}

// List runs a parsed list query.
func (r *Resource[T, PT]) List(ctx context.Context, q *models.ListQuery) ([]T, error) {
	docs, err := r.store.Find(ctx, q)
	if err != nil {
		return nil, err
	}

	if r.hooks.Resolve != nil {
		for i := range docs {
			if err := r.hooks.Resolve(ctx, &docs[i]); err != nil {
				return nil, err
			}
		}
	}
	return docs, nil
}

// Update loads the document, applies patch and stores the result. patch is
// expected to validate the patched document. The id and creation time cannot
// be changed by a patch.
func (r *Resource[T, PT]) Update(ctx context.Context, id string, patch func(doc *T) error) (*T, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	doc, err := r.store.FindByID(ctx, oid, false)
	if err != nil {
		return nil, err
	}
	createdAt := PT(doc).GetCreatedAt()
	old, err := snapshot(doc)
	if err != nil {
		return nil, err
	}

	if err := patch(doc); err != nil {
		return nil, err
	}
	PT(doc).SetID(oid)
	PT(doc).SetCreatedAt(createdAt)

	if r.hooks.BeforeUpdate != nil {
		if err := r.hooks.BeforeUpdate(ctx, old, doc); err != nil {
			return nil, err
		}
	}

	if err := r.store.Replace(ctx, doc); err != nil {
		return nil, err
	}

	if err := r.afterWrite(ctx, doc); err != nil {
		return nil, err
	}
	return r.resolve(ctx, doc)
}

// Delete removes a document and returns what was removed.
func (r *Resource[T, PT]) Delete(ctx context.Context, id string) (*T, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	doc, err := r.store.Delete(ctx, oid)
	if err != nil {
		return nil, err
	}

	if err := r.afterWrite(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *Resource[T, PT]) afterWrite(ctx context.Context, doc *T) error {
	if r.hooks.AfterWrite == nil {
		return nil
	}
	return r.hooks.AfterWrite(ctx, doc)
}

func (r *Resource[T, PT]) resolve(ctx context.Context, doc *T) (*T, error) {
	if r.hooks.Resolve != nil {
		if err := r.hooks.Resolve(ctx, doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// snapshot deep-copies doc so a patch cannot change it through shared
// pointers or slices.
func snapshot[T any](doc *T) (*T, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var cp T
	if err := bson.Unmarshal(raw, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}
