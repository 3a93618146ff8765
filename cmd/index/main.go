package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"tour-booking/internal/config"
	"tour-booking/internal/database"
	"tour-booking/internal/logger"
	"tour-booking/internal/repository"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.IsProduction())
	slog.Info("creating indexes...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongoDB, err := database.NewMongoDB(ctx, cfg.MongoURI(), cfg.DatabaseName)
	if err != nil {
		slog.Error("failed to connect", "error", err)
		os.Exit(1)
	}
	defer mongoDB.Close()

	names, err := repository.EnsureIndexes(ctx, mongoDB.Database)
	for _, name := range names {
		slog.Info("created index", "index", name)
	}
	if err != nil {
		slog.Error("index creation failed", "error", err)
		mongoDB.Close()
		os.Exit(1)
	}

	slog.Info("indexes created successfully", "count", len(names))
}
