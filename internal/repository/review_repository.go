package repository

import (
	"context"

	"tour-booking/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReviewRepository defines the interface for review data operations.
type ReviewRepository interface {
	Store[models.Review]
	Exists(ctx context.Context, tourID, userID primitive.ObjectID) (bool, error)
	RatingSummary(ctx context.Context, tourID primitive.ObjectID) (*models.RatingSummary, error)
}

// reviewRepository implements ReviewRepository using MongoDB.
type reviewRepository struct {
	*Repository[models.Review, *models.Review]
}

// NewReviewRepository creates a new ReviewRepository. Reads embed the author.
func NewReviewRepository(db *mongo.Database) ReviewRepository {
	return &reviewRepository{
		Repository: NewRepository[models.Review](db, "reviews",
			WithLookups(Lookup{From: "users", LocalField: "user", ForeignField: "_id", As: "userInfo", Single: true}),
		),
	}
}

// Exists reports whether the user already reviewed the tour.
func (r *reviewRepository) Exists(ctx context.Context, tourID, userID primitive.ObjectID) (bool, error) {
	n, err := r.Collection().CountDocuments(ctx, bson.M{"tour": tourID, "user": userID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RatingSummary aggregates the reviews of a tour. A tour without reviews
// yields a zero-count summary.
func (r *reviewRepository) RatingSummary(ctx context.Context, tourID primitive.ObjectID) (*models.RatingSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"tour": tourID}}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$tour",
			"nRating":   bson.M{"$sum": 1},
			"avgRating": bson.M{"$avg": "$rating"},
		}}},
	}

	var results []models.RatingSummary
	if err := r.Aggregate(ctx, pipeline, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &models.RatingSummary{TourID: tourID}, nil
	}
	return &results[0], nil
}
