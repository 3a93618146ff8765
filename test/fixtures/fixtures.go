// Package fixtures provides test data builders for unit and integration tests.
package fixtures

import (
	"fmt"
	"time"

	"tour-booking/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ===== User Fixtures =====

// UserBuilder provides fluent API for building test users.
type UserBuilder struct {
	user models.User
}

// NewUser creates a new UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	return &UserBuilder{
		user: models.User{
			Name:   "Test User",
			Email:  fmt.Sprintf("test-%s@example.com", primitive.NewObjectID().Hex()[16:]),
			Photo:  models.DefaultPhoto,
			Role:   models.RoleUser,
			Active: true,
		},
	}
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.user.Name = name
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.user.Email = email
	return b
}

func (b *UserBuilder) WithRole(role string) *UserBuilder {
	b.user.Role = role
	return b
}

// WithPasswordHash sets an already hashed password.
func (b *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	b.user.Password = hash
	return b
}

func (b *UserBuilder) Build() models.User {
	return b.user
}

func (b *UserBuilder) BuildPtr() *models.User {
	u := b.user
	return &u
}

// ===== Tour Fixtures =====

// TourBuilder provides fluent API for building test tours.
type TourBuilder struct {
	tour models.Tour
}

// NewTour creates a valid tour. The name must stay between 10 and 40 characters.
func NewTour(name string) *TourBuilder {
	t := models.Tour{
		Name:         name,
		Duration:     5,
		MaxGroupSize: 10,
		Difficulty:   models.DifficultyEasy,
		Price:        397,
		Summary:      "Breathtaking hike through the Canadian Banff National Park",
		ImageCover:   "tour-1-cover.jpg",
		StartDates: []time.Time{
			time.Date(2021, time.April, 25, 9, 0, 0, 0, time.UTC),
			time.Date(2021, time.July, 20, 9, 0, 0, 0, time.UTC),
		},
		StartLocation: &models.GeoPoint{
			Type:        "Point",
			Coordinates: []float64{-115.570154, 51.178456},
			Address:     "224 Banff Ave, Banff, AB, Canada",
			Description: "Banff, CAN",
		},
	}
	return &TourBuilder{tour: t}
}

func (b *TourBuilder) WithPrice(price float64) *TourBuilder {
	b.tour.Price = price
	return b
}

func (b *TourBuilder) WithDifficulty(difficulty string) *TourBuilder {
	b.tour.Difficulty = difficulty
	return b
}

func (b *TourBuilder) WithDuration(days int) *TourBuilder {
	b.tour.Duration = days
	return b
}

func (b *TourBuilder) WithRatings(average float64, quantity int) *TourBuilder {
	b.tour.RatingsAverage = average
	b.tour.RatingsQuantity = quantity
	return b
}

func (b *TourBuilder) WithStartDates(dates ...time.Time) *TourBuilder {
	b.tour.StartDates = dates
	return b
}

// WithStart places the tour's start location at lng, lat.
func (b *TourBuilder) WithStart(lng, lat float64) *TourBuilder {
	b.tour.StartLocation = &models.GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
	return b
}

func (b *TourBuilder) WithImageCover(file string) *TourBuilder {
	b.tour.ImageCover = file
	return b
}

func (b *TourBuilder) Secret() *TourBuilder {
	b.tour.SecretTour = true
	return b
}

func (b *TourBuilder) Build() models.Tour {
	return b.tour
}

func (b *TourBuilder) BuildPtr() *models.Tour {
	t := b.tour
	return &t
}

// ===== Review Fixtures =====

// NewReview builds a review of tour by user.
func NewReview(tour, user primitive.ObjectID, rating float64) *models.Review {
	return &models.Review{
		Review: "Loved every minute of it",
		Rating: rating,
		Tour:   tour,
		User:   user,
	}
}
