package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"time"

	"tour-booking/internal/config"
	"tour-booking/internal/database"
	"tour-booking/internal/logger"
	"tour-booking/internal/models"
	"tour-booking/internal/repository"
	"tour-booking/internal/storage"
	"tour-booking/pkg/auth"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// seedUser carries the plain-text password of a seed account.
type seedUser struct {
	models.User
	Password string `json:"password"`
}

func main() {
	importData := flag.Bool("import", false, "load tours, users and reviews from -data")
	deleteData := flag.Bool("delete", false, "delete all tours, users, reviews and bookings")
	dataDir := flag.String("data", "dev-data/data", "directory holding tours.json, users.json and reviews.json")
	imageDir := flag.String("images", "", "directory of tour images to upload to object storage")
	flag.Parse()

	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.IsProduction())

	if *importData == *deleteData {
		fmt.Fprintln(os.Stderr, "usage: seed -import|-delete [-data dir] [-images dir]")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	mongoDB, err := database.NewMongoDB(ctx, cfg.MongoURI(), cfg.DatabaseName)
	if err != nil {
		slog.Error("failed to connect", "error", err)
		os.Exit(1)
	}
	defer mongoDB.Close()

	if *deleteData {
		err = deleteAll(ctx, mongoDB.Database)
	} else {
		err = importAll(ctx, mongoDB.Database, *dataDir)
		if err == nil && *imageDir != "" {
			err = uploadImages(ctx, cfg, *imageDir)
		}
	}
	if err != nil {
		slog.Error("seed failed", "error", err)
		mongoDB.Close()
		os.Exit(1)
	}
}

func deleteAll(ctx context.Context, db *mongo.Database) error {
	for _, name := range []string{"tours", "users", "reviews", "bookings"} {
		result, err := db.Collection(name).DeleteMany(ctx, bson.M{})
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", name, err)
		}
		slog.Info("data successfully deleted", "collection", name, "count", result.DeletedCount)
	}
	return nil
}

func importAll(ctx context.Context, db *mongo.Database, dir string) error {
	tours, err := readDocs[models.Tour](filepath.Join(dir, "tours.json"))
	if err != nil {
		return err
	}
	users, err := readDocs[seedUser](filepath.Join(dir, "users.json"))
	if err != nil {
		return err
	}
	reviews, err := readDocs[models.Review](filepath.Join(dir, "reviews.json"))
	if err != nil {
		return err
	}

	tourRepo := repository.NewTourRepository(db)
	for i := range tours {
		t := &tours[i]
		t.ApplyDefaults()
		if t.Slug == "" {
			t.Slug = models.Slugify(t.Name)
		}
		if err := tourRepo.Create(ctx, t); err != nil {
			return fmt.Errorf("tour %q: %w", t.Name, err)
		}
	}
	slog.Info("tours loaded", "count", len(tours))

	userRepo := repository.NewUserRepository(db)
	for i := range users {
		u := &users[i].User
		hash, err := auth.HashPassword(users[i].Password)
		if err != nil {
			return fmt.Errorf("user %q: %w", u.Email, err)
		}
		u.Password = hash
		u.ApplyDefaults()
		if err := userRepo.Create(ctx, u); err != nil {
			return fmt.Errorf("user %q: %w", u.Email, err)
		}
	}
	slog.Info("users loaded", "count", len(users))

	reviewRepo := repository.NewReviewRepository(db)
	for i := range reviews {
		if err := reviewRepo.Create(ctx, &reviews[i]); err != nil {
			return fmt.Errorf("review %d: %w", i, err)
		}
	}
	slog.Info("reviews loaded", "count", len(reviews))

	for i := range tours {
		summary, err := reviewRepo.RatingSummary(ctx, tours[i].ID)
		if err != nil {
			return fmt.Errorf("ratings of %q: %w", tours[i].Name, err)
		}
		if summary.NRating == 0 {
			continue
		}
		if err := tourRepo.UpdateRatings(ctx, tours[i].ID, summary.NRating, summary.AvgRating); err != nil {
			return fmt.Errorf("ratings of %q: %w", tours[i].Name, err)
		}
	}

	slog.Info("data successfully loaded!")
	return nil
}

// readDocs decodes a JSON array of documents that may use "_id" for the id.
func readDocs[T any](path string) ([]T, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var objects []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &objects); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, obj := range objects {
		if id, ok := obj["_id"]; ok {
			obj["id"] = id
			delete(obj, "_id")
		}
	}

	normalized, err := json.Marshal(objects)
	if err != nil {
		return nil, err
	}
	var docs []T
	if err := json.Unmarshal(normalized, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return docs, nil
}

func uploadImages(ctx context.Context, cfg *config.Config, dir string) error {
	if !cfg.S3Enabled() {
		return fmt.Errorf("object storage is not configured")
	}
	s3Client, err := storage.NewS3Client(ctx, cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3UseSSL)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := uploadFile(ctx, s3Client, filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	slog.Info("tour images uploaded", "count", len(entries))
	return nil
}

func uploadFile(ctx context.Context, store storage.Storage, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return store.PutObject(ctx, storage.TourImagePrefix+filepath.Base(path), f, contentType)
}
