package service

import (
	"context"
	"strings"

	apperrors "tour-booking/internal/errors"
	"tour-booking/internal/models"
	"tour-booking/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService handles business logic for user operations.
type UserService struct {
	*Resource[models.User, *models.User]
	repo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{
		Resource: NewResource[models.User](repo, Hooks[models.User]{
			BeforeUpdate: func(_ context.Context, old, u *models.User) error {
				u.Email = strings.ToLower(strings.TrimSpace(u.Email))
				// Credentials and state are not part of the public document.
				u.Password = old.Password
				u.PasswordChangedAt = old.PasswordChangedAt
				u.PasswordResetToken = old.PasswordResetToken
				u.PasswordResetExpires = old.PasswordResetExpires
				u.Active = old.Active
				return nil
			},
		}),
		repo: repo,
	}
}

// UpdateMe changes the name or email of the current user.
func (s *UserService) UpdateMe(ctx context.Context, userID primitive.ObjectID, req *models.UpdateMeRequest) (*models.User, error) {
	if req.Password != nil || req.PasswordConfirm != nil {
		return nil, apperrors.ErrPasswordRoute
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		set["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}

	if len(set) > 0 {
		if err := s.repo.UpdateFields(ctx, userID, set); err != nil {
			return nil, err
		}
	}

	return s.repo.FindByID(ctx, userID, false)
}

// DeleteMe deactivates the current user. Inactive users are hidden from every query.
func (s *UserService) DeleteMe(ctx context.Context, userID primitive.ObjectID) error {
	return s.repo.UpdateFields(ctx, userID, bson.M{"active": false})
}
