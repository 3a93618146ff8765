package repository

import (
	"context"

	"tour-booking/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository defines the interface for booking data operations.
type BookingRepository interface {
	Store[models.Booking]
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Booking, error)
}

// bookingRepository implements BookingRepository using MongoDB.
type bookingRepository struct {
	*Repository[models.Booking, *models.Booking]
}

// NewBookingRepository creates a new BookingRepository. Reads embed the tour and the user.
func NewBookingRepository(db *mongo.Database) BookingRepository {
	return &bookingRepository{
		Repository: NewRepository[models.Booking](db, "bookings",
			WithLookups(
				Lookup{From: "tours", LocalField: "tour", ForeignField: "_id", As: "tourInfo", Single: true},
				Lookup{From: "users", LocalField: "user", ForeignField: "_id", As: "userInfo", Single: true},
			),
		),
	}
}

// FindByUser returns every booking made by a user, newest first.
func (r *bookingRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Booking, error) {
	return r.FindAll(ctx, bson.M{"user": userID})
}
