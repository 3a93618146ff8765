// Package service contains business logic for the application.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	apperrors "tour-booking/internal/errors"
	"tour-booking/internal/mailer"
	"tour-booking/internal/models"
	"tour-booking/internal/queue"
	"tour-booking/internal/repository"
	"tour-booking/pkg/auth"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResetTokenTTL is how long a password reset token stays valid.
const ResetTokenTTL = 10 * time.Minute

// AuthService handles authentication business logic.
type AuthService struct {
	userRepo    repository.UserRepository
	tokens      auth.TokenManager
	resetTokens auth.ResetTokenGenerator
	mailer      mailer.Sender
	emails      queue.Queue
	now         func() time.Time
}

// AuthServiceConfig holds configuration for AuthService.
type AuthServiceConfig struct {
	UserRepo    repository.UserRepository
	Tokens      auth.TokenManager
	ResetTokens auth.ResetTokenGenerator
	// Mailer sends the reset email synchronously.
	Mailer mailer.Sender
	// Emails receives welcome emails for background delivery.
	Emails queue.Queue
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		userRepo:    cfg.UserRepo,
		tokens:      cfg.Tokens,
		resetTokens: cfg.ResetTokens,
		mailer:      cfg.Mailer,
		emails:      cfg.Emails,
		now:         time.Now,
	}
}

// Signup creates an account, queues the welcome email and logs the user in.
// accountURL is linked from the welcome email.
func (s *AuthService) Signup(ctx context.Context, req *models.SignupRequest, accountURL string) (*models.AuthResponse, error) {
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    req.Email,
		Password: hashedPassword,
	}
	user.ApplyDefaults()

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.emails.Enqueue(queue.EmailJob{
		To:       user.Email,
		Name:     user.Name,
		Template: mailer.TemplateWelcome,
		URL:      accountURL,
	}); err != nil {
		slog.Warn("failed to queue welcome email", "user", user.ID.Hex(), "error", err)
	}

	return s.generateAuthResponse(user)
}

// Login checks credentials and returns a token.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, apperrors.ErrMissingCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrDocumentNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.CheckPassword(req.Password, user.Password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.generateAuthResponse(user)
}

// Authenticate resolves a token to the active user it was issued to.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	userID, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, userID, false)
	if err != nil {
		if errors.Is(err, apperrors.ErrDocumentNotFound) {
			return nil, apperrors.ErrUserNoLongerExists
		}
		return nil, err
	}

	if user.ChangedPasswordAfter(claims.IssuedAtTime()) {
		return nil, apperrors.ErrPasswordChanged
	}

	return user, nil
}

// ForgotPassword stores a reset token for the user and emails it. resetURL
// is the reset endpoint without the token. When the email cannot be sent the
// token is withdrawn.
func (s *AuthService) ForgotPassword(ctx context.Context, email, resetURL string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrDocumentNotFound) {
			return apperrors.ErrUserNotFound
		}
		return err
	}

	token, hashed, err := s.resetTokens.Generate()
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdateFields(ctx, user.ID, bson.M{
		"passwordResetToken":   hashed,
		"passwordResetExpires": s.now().Add(ResetTokenTTL),
	}); err != nil {
		return err
	}

	msg, err := mailer.Render(mailer.TemplatePasswordReset, user.Email, user.Name, strings.TrimRight(resetURL, "/")+"/"+token)
	if err == nil {
		err = s.mailer.Send(ctx, msg)
	}
	if err != nil {
		slog.Error("failed to send password reset email", "user", user.ID.Hex(), "error", err)
		if clearErr := s.userRepo.ClearResetToken(ctx, user.ID); clearErr != nil {
			slog.Error("failed to clear reset token", "user", user.ID.Hex(), "error", clearErr)
		}
		return apperrors.ErrEmailDeliveryFailed
	}

	return nil
}

// ResetPassword sets a new password using an emailed reset token.
func (s *AuthService) ResetPassword(ctx context.Context, token string, req *models.ResetPasswordRequest) (*models.AuthResponse, error) {
	now := s.now()

	user, err := s.userRepo.FindByResetToken(ctx, s.resetTokens.Hash(token), now)
	if err != nil {
		if errors.Is(err, apperrors.ErrDocumentNotFound) {
			return nil, apperrors.ErrResetTokenInvalid
		}
		return nil, err
	}

	if err := s.setPassword(ctx, user, req.Password, now); err != nil {
		return nil, err
	}

	if err := s.userRepo.ClearResetToken(ctx, user.ID); err != nil {
		return nil, err
	}
	user.PasswordResetToken = ""
	user.PasswordResetExpires = nil

	return s.generateAuthResponse(user)
}

// UpdatePassword changes the password of a logged-in user after checking the current one.
func (s *AuthService) UpdatePassword(ctx context.Context, userID primitive.ObjectID, req *models.UpdatePasswordRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	if err := auth.CheckPassword(req.PasswordCurrent, user.Password); err != nil {
		return nil, apperrors.ErrWrongPassword
	}

	if err := s.setPassword(ctx, user, req.Password, s.now()); err != nil {
		return nil, err
	}

	return s.generateAuthResponse(user)
}

// setPassword stores a new hash. passwordChangedAt is backdated one second
// so a token issued right after the change is still accepted.
func (s *AuthService) setPassword(ctx context.Context, user *models.User, password string, now time.Time) error {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	changedAt := now.Add(-time.Second).UTC().Truncate(time.Millisecond)
	if err := s.userRepo.UpdateFields(ctx, user.ID, bson.M{
		"password":          hashed,
		"passwordChangedAt": changedAt,
	}); err != nil {
		return err
	}

	user.Password = hashed
	user.PasswordChangedAt = &changedAt
	return nil
}

func (s *AuthService) generateAuthResponse(user *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}
