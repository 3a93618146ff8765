package service

import (
	"context"

	"tour-booking/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resourcer defines the generic CRUD operations shared by every resource.
type Resourcer[T any] interface {
	Create(ctx context.Context, doc *T) (*T, error)
	Get(ctx context.Context, id string, populate bool) (*T, error)
	List(ctx context.Context, q *models.ListQuery) ([]T, error)
	Update(ctx context.Context, id string, patch func(doc *T) error) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
}

// AuthServicer defines the interface for authentication operations.
type AuthServicer interface {
	Signup(ctx context.Context, req *models.SignupRequest, accountURL string) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	ForgotPassword(ctx context.Context, email, resetURL string) error
	ResetPassword(ctx context.Context, token string, req *models.ResetPasswordRequest) (*models.AuthResponse, error)
	UpdatePassword(ctx context.Context, userID primitive.ObjectID, req *models.UpdatePasswordRequest) (*models.AuthResponse, error)
}

// TourServicer defines the interface for tour operations.
type TourServicer interface {
	Resourcer[models.Tour]
	Stats(ctx context.Context) ([]models.TourStats, error)
	MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlan, error)
	Within(ctx context.Context, lat, lng, distance float64, unit string) ([]models.Tour, error)
	Distances(ctx context.Context, lat, lng float64, unit string) ([]models.TourDistance, error)
}

// UserServicer defines the interface for user operations.
type UserServicer interface {
	Resourcer[models.User]
	UpdateMe(ctx context.Context, userID primitive.ObjectID, req *models.UpdateMeRequest) (*models.User, error)
	DeleteMe(ctx context.Context, userID primitive.ObjectID) error
}

// ReviewServicer defines the interface for review operations.
type ReviewServicer interface {
	Resourcer[models.Review]
}

// BookingServicer defines the interface for booking operations.
type BookingServicer interface {
	Resourcer[models.Booking]
	CheckoutSession(ctx context.Context, in CheckoutInput) (*CheckoutResult, error)
	MyTours(ctx context.Context, user *models.User) ([]models.Tour, error)
}

// Ensure concrete types implement interfaces
var (
	_ AuthServicer    = (*AuthService)(nil)
	_ TourServicer    = (*TourService)(nil)
	_ UserServicer    = (*UserService)(nil)
	_ ReviewServicer  = (*ReviewService)(nil)
	_ BookingServicer = (*BookingService)(nil)
)
