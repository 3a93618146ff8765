// Package models defines data structures for the application.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is implemented by every persisted entity.
type Document interface {
	GetID() primitive.ObjectID
	SetID(id primitive.ObjectID)
	GetCreatedAt() time.Time
	SetCreatedAt(t time.Time)
}

// Populated is implemented by documents that carry joined read-only fields.
type Populated interface {
	ClearPopulated()
}

// Base holds the fields shared by all documents.
type Base struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty" example:"5c88fa8cf4afda39709c2955"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt" example:"2024-01-15T09:30:00Z"`
}

// GetID returns the document id.
func (b *Base) GetID() primitive.ObjectID { return b.ID }

// SetID sets the document id.
func (b *Base) SetID(id primitive.ObjectID) { b.ID = id }

// GetCreatedAt returns the creation time.
func (b *Base) GetCreatedAt() time.Time { return b.CreatedAt }

// SetCreatedAt sets the creation time.
func (b *Base) SetCreatedAt(t time.Time) { b.CreatedAt = t }

// UserSummary is the public projection of a user embedded in other documents.
type UserSummary struct {
	ID    primitive.ObjectID `json:"id" bson:"_id"`
	Name  string             `json:"name" bson:"name"`
	Email string             `json:"email,omitempty" bson:"email"`
	Photo string             `json:"photo" bson:"photo"`
	Role  string             `json:"role,omitempty" bson:"role"`
}

// Defaulter is implemented by documents that fill defaults before first insert.
type Defaulter interface {
	ApplyDefaults()
}
