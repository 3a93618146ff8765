//go:build api

// Package testserver provides a fully wired test server for API integration tests.
package testserver

import (
	"context"
	"time"

	"tour-booking/internal/authz"
	"tour-booking/internal/cache"
	"tour-booking/internal/events"
	"tour-booking/internal/handler"
	"tour-booking/internal/queue"
	"tour-booking/internal/ratelimit"
	"tour-booking/internal/repository"
	"tour-booking/internal/router"
	"tour-booking/internal/service"
	"tour-booking/internal/storage"
	"tour-booking/pkg/auth"
	"tour-booking/test/api/testdb"

	"github.com/gin-gonic/gin"
)

const (
	// TestJWTSecret is the JWT secret used in tests.
	TestJWTSecret = "test-secret-key-for-api-tests-0123456789"
	// TestJWTExpiry is the token lifetime used in tests.
	TestJWTExpiry = 15 * time.Minute
	// TestCookieMaxAge is the jwt cookie lifetime in seconds.
	TestCookieMaxAge = 900
	// TestDBName is the database name used in tests.
	TestDBName = "test_api"
	// TestRateLimitMax is the per-client request budget per window.
	TestRateLimitMax = 100
	// TestBodyLimit is the largest accepted request body.
	TestBodyLimit = 10 * 1024
	// EmailQueueSize bounds pending welcome emails.
	EmailQueueSize = 50
)

// TestServer holds all dependencies for API integration tests.
type TestServer struct {
	// Router is the Gin engine for making HTTP requests.
	Router *gin.Engine

	// Containers
	MongoDB  *testdb.MongoContainer
	Redis    *testdb.RedisContainer
	MinIO    *testdb.MinIOContainer
	RabbitMQ *testdb.RabbitMQContainer

	// Repositories (for direct database access in tests)
	UserRepo    repository.UserRepository
	TourRepo    repository.TourRepository
	ReviewRepo  repository.ReviewRepository
	BookingRepo repository.BookingRepository

	// Services (for direct service access in tests)
	AuthService    service.AuthServicer
	TourService    service.TourServicer
	UserService    service.UserServicer
	ReviewService  service.ReviewServicer
	BookingService service.BookingServicer

	// Outbound collaborators
	JWTManager *auth.JWTManager
	Images     *storage.S3Client
	Mailer     *RecordingSender
	Gateway    *FakeGateway

	publisher      *events.AMQPPublisher
	redisCache     *cache.Redis
	emailQueue     *queue.MemoryQueue
	emailProcessor *queue.Processor
	cancel         context.CancelFunc
}

// New creates a new test server with all dependencies wired up.
func New(ctx context.Context) (*TestServer, error) {
	gin.SetMode(gin.TestMode)

	ts := &TestServer{}
	ok := false
	defer func() {
		if !ok {
			ts.Cleanup(context.Background())
		}
	}()

	// Start containers
	var err error
	if ts.MongoDB, err = testdb.SetupMongoDB(ctx, TestDBName); err != nil {
		return nil, err
	}
	if ts.Redis, err = testdb.SetupRedis(ctx); err != nil {
		return nil, err
	}
	if ts.MinIO, err = testdb.SetupMinIO(ctx); err != nil {
		return nil, err
	}
	if ts.RabbitMQ, err = testdb.SetupRabbitMQ(ctx); err != nil {
		return nil, err
	}

	// Stats cache and rate counter share real Redis
	if ts.redisCache, err = cache.NewRedis(ts.Redis.URI); err != nil {
		return nil, err
	}
	rateCounter := ratelimit.NewRedisCounter(ts.redisCache.Client(), "ratelimit:")

	// Tour images are presigned from real MinIO
	ts.Images, err = storage.NewS3Client(ctx,
		ts.MinIO.Endpoint,
		ts.MinIO.AccessKey,
		ts.MinIO.SecretKey,
		ts.MinIO.Bucket,
		false, // useSSL
	)
	if err != nil {
		return nil, err
	}

	if ts.publisher, err = events.NewAMQPPublisher(ts.RabbitMQ.URL); err != nil {
		return nil, err
	}

	ts.Mailer = &RecordingSender{}
	ts.Gateway = &FakeGateway{}
	ts.JWTManager = auth.NewJWTManager(TestJWTSecret, TestJWTExpiry)

	// Repository layer
	ts.UserRepo = repository.NewUserRepository(ts.MongoDB.Database)
	ts.TourRepo = repository.NewTourRepository(ts.MongoDB.Database)
	ts.ReviewRepo = repository.NewReviewRepository(ts.MongoDB.Database)
	ts.BookingRepo = repository.NewBookingRepository(ts.MongoDB.Database)

	// Welcome emails go through the real queue and workers
	ts.emailQueue = queue.NewMemoryQueue(EmailQueueSize)
	ts.emailProcessor = queue.NewProcessor(ts.emailQueue, ts.Mailer, 1)

	// Service layer
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:    ts.UserRepo,
		Tokens:      ts.JWTManager,
		ResetTokens: auth.NewResetTokenGenerator(),
		Mailer:      ts.Mailer,
		Emails:      ts.emailQueue,
	})
	tourService := service.NewTourService(ts.TourRepo, ts.redisCache, ts.Images)
	userService := service.NewUserService(ts.UserRepo)
	reviewService := service.NewReviewService(ts.ReviewRepo, ts.TourRepo, ts.redisCache)
	bookingService := service.NewBookingService(service.BookingServiceConfig{
		Repo:      ts.BookingRepo,
		Tours:     ts.TourRepo,
		Gateway:   ts.Gateway,
		Publisher: ts.publisher,
		Images:    ts.Images,
		Timeout:   5 * time.Second,
	})
	ts.AuthService = authService
	ts.TourService = tourService
	ts.UserService = userService
	ts.ReviewService = reviewService
	ts.BookingService = bookingService

	// Router
	ts.Router = router.Setup(&router.Config{
		AuthHandler: handler.NewAuthHandler(authService, handler.CookieConfig{
			MaxAge: TestCookieMaxAge,
		}),
		TourHandler:     handler.NewTourHandler(tourService),
		UserHandler:     handler.NewUserHandler(userService),
		ReviewHandler:   handler.NewReviewHandler(reviewService),
		BookingHandler:  handler.NewBookingHandler(bookingService),
		AuthService:     authService,
		Authorizer:      authz.NewLocalAuthorizer(),
		RateCounter:     rateCounter,
		RateLimitMax:    TestRateLimitMax,
		RateLimitWindow: time.Hour,
		BodyLimit:       TestBodyLimit,
		Production:      true,
	})

	processorCtx, cancel := context.WithCancel(context.Background())
	ts.cancel = cancel
	ts.emailProcessor.Start(processorCtx)

	ok = true
	return ts, nil
}

// Cleanup stops background workers and terminates all containers.
func (ts *TestServer) Cleanup(ctx context.Context) {
	if ts.emailProcessor != nil && ts.cancel != nil {
		ts.emailProcessor.Stop()
		ts.cancel()
	}
	if ts.publisher != nil {
		_ = ts.publisher.Close()
	}
	if ts.redisCache != nil {
		ts.redisCache.Close()
	}
	if ts.RabbitMQ != nil {
		_ = ts.RabbitMQ.Cleanup(ctx)
	}
	if ts.MinIO != nil {
		_ = ts.MinIO.Cleanup(ctx)
	}
	if ts.Redis != nil {
		_ = ts.Redis.Cleanup(ctx)
	}
	if ts.MongoDB != nil {
		_ = ts.MongoDB.Cleanup(ctx)
	}
}
