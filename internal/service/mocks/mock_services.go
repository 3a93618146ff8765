// Package mocks provides mock implementations of service interfaces for testing.
package mocks

import (
	"context"

	"tour-booking/internal/models"
	"tour-booking/internal/service"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockResource is a mock implementation of service.Resourcer.
type MockResource[T any] struct {
	CreateFunc func(ctx context.Context, doc *T) (*T, error)
	GetFunc    func(ctx context.Context, id string, populate bool) (*T, error)
	ListFunc   func(ctx context.Context, q *models.ListQuery) ([]T, error)
	UpdateFunc func(ctx context.Context, id string, patch func(doc *T) error) (*T, error)
	DeleteFunc func(ctx context.Context, id string) (*T, error)
}

func (m *MockResource[T]) Create(ctx context.Context, doc *T) (*T, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, doc)
	}
	return doc, nil
}

func (m *MockResource[T]) Get(ctx context.Context, id string, populate bool) (*T, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id, populate)
	}
	return nil, nil
}

func (m *MockResource[T]) List(ctx context.Context, q *models.ListQuery) ([]T, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, q)
	}
	return []T{}, nil
}

func (m *MockResource[T]) Update(ctx context.Context, id string, patch func(doc *T) error) (*T, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return nil, nil
}

func (m *MockResource[T]) Delete(ctx context.Context, id string) (*T, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil, nil
}

// MockAuthService is a mock implementation of AuthServicer.
type MockAuthService struct {
	SignupFunc         func(ctx context.Context, req *models.SignupRequest, accountURL string) (*models.AuthResponse, error)
	LoginFunc          func(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	AuthenticateFunc   func(ctx context.Context, token string) (*models.User, error)
	ForgotPasswordFunc func(ctx context.Context, email, resetURL string) error
	ResetPasswordFunc  func(ctx context.Context, token string, req *models.ResetPasswordRequest) (*models.AuthResponse, error)
	UpdatePasswordFunc func(ctx context.Context, userID primitive.ObjectID, req *models.UpdatePasswordRequest) (*models.AuthResponse, error)
}

func (m *MockAuthService) Signup(ctx context.Context, req *models.SignupRequest, accountURL string) (*models.AuthResponse, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, req, accountURL)
	}
	return nil, nil
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, token)
	}
	return nil, nil
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email, resetURL string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email, resetURL)
	}
	return nil
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token string, req *models.ResetPasswordRequest) (*models.AuthResponse, error) {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, token, req)
	}
	return nil, nil
}

func (m *MockAuthService) UpdatePassword(ctx context.Context, userID primitive.ObjectID, req *models.UpdatePasswordRequest) (*models.AuthResponse, error) {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, userID, req)
	}
	return nil, nil
}

// MockTourService is a mock implementation of TourServicer.
type MockTourService struct {
	MockResource[models.Tour]
	StatsFunc       func(ctx context.Context) ([]models.TourStats, error)
	MonthlyPlanFunc func(ctx context.Context, year int) ([]models.MonthlyPlan, error)
	WithinFunc      func(ctx context.Context, lat, lng, distance float64, unit string) ([]models.Tour, error)
	DistancesFunc   func(ctx context.Context, lat, lng float64, unit string) ([]models.TourDistance, error)
}

func (m *MockTourService) Stats(ctx context.Context) ([]models.TourStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return []models.TourStats{}, nil
}

func (m *MockTourService) MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlan, error) {
	if m.MonthlyPlanFunc != nil {
		return m.MonthlyPlanFunc(ctx, year)
	}
	return []models.MonthlyPlan{}, nil
}

func (m *MockTourService) Within(ctx context.Context, lat, lng, distance float64, unit string) ([]models.Tour, error) {
	if m.WithinFunc != nil {
		return m.WithinFunc(ctx, lat, lng, distance, unit)
	}
	return []models.Tour{}, nil
}

func (m *MockTourService) Distances(ctx context.Context, lat, lng float64, unit string) ([]models.TourDistance, error) {
	if m.DistancesFunc != nil {
		return m.DistancesFunc(ctx, lat, lng, unit)
	}
	return []models.TourDistance{}, nil
}

// MockUserService is a mock implementation of UserServicer.
type MockUserService struct {
	MockResource[models.User]
	UpdateMeFunc func(ctx context.Context, userID primitive.ObjectID, req *models.UpdateMeRequest) (*models.User, error)
	DeleteMeFunc func(ctx context.Context, userID primitive.ObjectID) error
}

func (m *MockUserService) UpdateMe(ctx context.Context, userID primitive.ObjectID, req *models.UpdateMeRequest) (*models.User, error) {
	if m.UpdateMeFunc != nil {
		return m.UpdateMeFunc(ctx, userID, req)
	}
	return nil, nil
}

func (m *MockUserService) DeleteMe(ctx context.Context, userID primitive.ObjectID) error {
	if m.DeleteMeFunc != nil {
		return m.DeleteMeFunc(ctx, userID)
	}
	return nil
}

// MockReviewService is a mock implementation of ReviewServicer.
type MockReviewService struct {
	MockResource[models.Review]
}

// MockBookingService is a mock implementation of BookingServicer.
type MockBookingService struct {
	MockResource[models.Booking]
	CheckoutSessionFunc func(ctx context.Context, in service.CheckoutInput) (*service.CheckoutResult, error)
	MyToursFunc         func(ctx context.Context, user *models.User) ([]models.Tour, error)
}

func (m *MockBookingService) CheckoutSession(ctx context.Context, in service.CheckoutInput) (*service.CheckoutResult, error) {
	if m.CheckoutSessionFunc != nil {
		return m.CheckoutSessionFunc(ctx, in)
	}
	return nil, nil
}

func (m *MockBookingService) MyTours(ctx context.Context, user *models.User) ([]models.Tour, error) {
	if m.MyToursFunc != nil {
		return m.MyToursFunc(ctx, user)
	}
	return []models.Tour{}, nil
}

// Ensure mocks implement interfaces
var (
	_ service.AuthServicer    = (*MockAuthService)(nil)
	_ service.TourServicer    = (*MockTourService)(nil)
	_ service.UserServicer    = (*MockUserService)(nil)
	_ service.ReviewServicer  = (*MockReviewService)(nil)
	_ service.BookingServicer = (*MockBookingService)(nil)
)
