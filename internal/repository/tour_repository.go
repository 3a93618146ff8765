package repository

import (
	"context"
	"math"
	"time"

	"tour-booking/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Earth radius used to turn a distance into radians for $centerSphere.
const (
	earthRadiusMiles = 3963.2
	earthRadiusKm    = 6378.1
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks tour-booking/internal/repository TourRepository,UserRepository,ReviewRepository,BookingRepository

// TourRepository defines the interface for tour data operations.
type TourRepository interface {
	Store[models.Tour]
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Tour, error)
	UpdateRatings(ctx context.Context, id primitive.ObjectID, quantity int, average float64) error
	Stats(ctx context.Context, minRating float64) ([]models.TourStats, error)
	MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlan, error)
	Within(ctx context.Context, lng, lat, distance float64, unit string) ([]models.Tour, error)
	Distances(ctx context.Context, lng, lat float64, unit string) ([]models.TourDistance, error)
}

// tourRepository implements TourRepository using MongoDB.
type tourRepository struct {
	*Repository[models.Tour, *models.Tour]
}

// NewTourRepository creates a new TourRepository. Secret tours are never returned.
func NewTourRepository(db *mongo.Database) TourRepository {
	return &tourRepository{
		Repository: NewRepository[models.Tour](db, "tours",
			WithBaseFilter(bson.M{"secretTour": bson.M{"$ne": true}}),
			WithLookups(Lookup{From: "users", LocalField: "guides", ForeignField: "_id", As: "guideInfo"}),
			WithDetailLookups(Lookup{From: "reviews", LocalField: "_id", ForeignField: "tour", As: "reviews"}),
		),
	}
}

// FindByIDs returns the visible tours among ids.
func (r *tourRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Tour, error) {
	if len(ids) == 0 {
		return []models.Tour{}, nil
	}
	return r.FindAll(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// UpdateRatings stores the aggregate rating of a tour, rounded to one decimal.
func (r *tourRepository) UpdateRatings(ctx context.Context, id primitive.ObjectID, quantity int, average float64) error {
	return r.UpdateFields(ctx, id, bson.M{
		"ratingsQuantity": quantity,
		"ratingsAverage":  math.Round(average*10) / 10,
	})
}

// Stats groups tours rated at least minRating by difficulty.
func (r *tourRepository) Stats(ctx context.Context, minRating float64) ([]models.TourStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"ratingsAverage": bson.M{"$gte": minRating}}}},
		{{Key: "$group", Value: bson.M{
			"_id":        bson.M{"$toUpper": "$difficulty"},
			"numTours":   bson.M{"$sum": 1},
			"numRatings": bson.M{"$sum": "$ratingsQuantity"},
			"avgRating":  bson.M{"$avg": "$ratingsAverage"},
			"avgPrice":   bson.M{"$avg": "$price"},
			"minPrice":   bson.M{"$min": "$price"},
			"maxPrice":   bson.M{"$max": "$price"},
		}}},
		{{Key: "$sort", Value: bson.M{"avgPrice": 1}}},
	}

	stats := []models.TourStats{}
	if err := r.Aggregate(ctx, pipeline, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// MonthlyPlan counts tour starts per month of year, busiest month first.
func (r *tourRepository) MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlan, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)

	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$startDates"}},
		{{Key: "$match", Value: bson.M{"startDates": bson.M{"$gte": from, "$lt": to}}}},
		{{Key: "$group", Value: bson.M{
			"_id":           bson.M{"$month": "$startDates"},
			"numTourStarts": bson.M{"$sum": 1},
			"tours":         bson.M{"$push": "$name"},
		}}},
		{{Key: "$addFields", Value: bson.M{"month": "$_id"}}},
		{{Key: "$project", Value: bson.M{"_id": 0}}},
		{{Key: "$sort", Value: bson.D{{Key: "numTourStarts", Value: -1}, {Key: "month", Value: 1}}}},
		{{Key: "$limit", Value: 12}},
	}

	plan := []models.MonthlyPlan{}
	if err := r.Aggregate(ctx, pipeline, &plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Within returns tours starting within distance of the point. unit is "mi" or "km".
func (r *tourRepository) Within(ctx context.Context, lng, lat, distance float64, unit string) ([]models.Tour, error) {
	radius := distance / earthRadiusKm
	if unit == "mi" {
		radius = distance / earthRadiusMiles
	}

	return r.FindAll(ctx, bson.M{
		"startLocation": bson.M{"$geoWithin": bson.M{
			"$centerSphere": bson.A{bson.A{lng, lat}, radius},
		}},
	})
}

// Distances returns every tour with its distance from the point, nearest first.
func (r *tourRepository) Distances(ctx context.Context, lng, lat float64, unit string) ([]models.TourDistance, error) {
	multiplier := 0.001
	if unit == "mi" {
		multiplier = 0.000621371
	}

	pipeline := mongo.Pipeline{
		{{Key: "$geoNear", Value: bson.M{
			"near":               bson.M{"type": "Point", "coordinates": bson.A{lng, lat}},
			"distanceField":      "distance",
			"distanceMultiplier": multiplier,
		}}},
		{{Key: "$project", Value: bson.M{"distance": 1, "name": 1}}},
	}

	distances := []models.TourDistance{}
	if err := r.Aggregate(ctx, pipeline, &distances); err != nil {
		return nil, err
	}
	return distances, nil
}
