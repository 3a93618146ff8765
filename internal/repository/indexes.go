package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexSpec is one index on one collection.
type IndexSpec struct {
	Collection string
	Model      mongo.IndexModel
}

// Indexes lists every index the application relies on.
func Indexes() []IndexSpec {
	return []IndexSpec{
		{"tours", mongo.IndexModel{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)}},
		{"tours", mongo.IndexModel{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)}},
		{"tours", mongo.IndexModel{Keys: bson.D{{Key: "price", Value: 1}, {Key: "ratingsAverage", Value: -1}}}},
		{"tours", mongo.IndexModel{Keys: bson.D{{Key: "startLocation", Value: "2dsphere"}}}},
		{"users", mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)}},
		{"reviews", mongo.IndexModel{Keys: bson.D{{Key: "tour", Value: 1}, {Key: "user", Value: 1}}, Options: options.Index().SetUnique(true)}},
		{"bookings", mongo.IndexModel{Keys: bson.D{{Key: "user", Value: 1}}}},
		{"bookings", mongo.IndexModel{Keys: bson.D{{Key: "tour", Value: 1}}}},
	}
}

// EnsureIndexes creates every index in Indexes. It returns the created
// index names and stops at the first failure.
func EnsureIndexes(ctx context.Context, db *mongo.Database) ([]string, error) {
	var names []string
	for _, spec := range Indexes() {
		name, err := db.Collection(spec.Collection).Indexes().CreateOne(ctx, spec.Model)
		if err != nil {
			return names, fmt.Errorf("failed to create index on %s: %w", spec.Collection, err)
		}
		names = append(names, spec.Collection+"."+name)
	}
	return names, nil
}
