package repository

import (
	"context"
	"strings"
	"time"

	apperrors "tour-booking/internal/errors"
	"tour-booking/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Store[models.User]
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByResetToken(ctx context.Context, hashedToken string, now time.Time) (*models.User, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) error
	ClearResetToken(ctx context.Context, id primitive.ObjectID) error
}

// userRepository implements UserRepository using MongoDB
type userRepository struct {
	*Repository[models.User, *models.User]
}

// NewUserRepository creates a new UserRepository. Deactivated users are never returned.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{
		Repository: NewRepository[models.User](db, "users",
			WithBaseFilter(bson.M{"active": bson.M{"$ne": false}}),
		),
	}
}

// FindByEmail finds a user by their email
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

// FindByResetToken finds the user holding an unexpired reset token.
func (r *userRepository) FindByResetToken(ctx context.Context, hashedToken string, now time.Time) (*models.User, error) {
	return r.FindOne(ctx, bson.M{
		"passwordResetToken":   hashedToken,
		"passwordResetExpires": bson.M{"$gt": now},
	})
}

// ClearResetToken removes any pending reset token from a user.
func (r *userRepository) ClearResetToken(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.Collection().UpdateOne(ctx, r.scoped(bson.M{"_id": id}), bson.M{
		"$unset": bson.M{"passwordResetToken": "", "passwordResetExpires": ""},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrDocumentNotFound
	}
	return nil
}
