package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tour-booking/internal/authz"
	"tour-booking/internal/cache"
	"tour-booking/internal/config"
	"tour-booking/internal/database"
	"tour-booking/internal/events"
	"tour-booking/internal/handler"
	"tour-booking/internal/logger"
	"tour-booking/internal/mailer"
	"tour-booking/internal/payment"
	"tour-booking/internal/queue"
	"tour-booking/internal/ratelimit"
	"tour-booking/internal/repository"
	"tour-booking/internal/router"
	"tour-booking/internal/service"
	"tour-booking/internal/storage"
	"tour-booking/internal/validator"
	"tour-booking/pkg/auth"

	"github.com/gin-gonic/gin"
)

// @title           Natours API
// @version         1.0
// @description     Tour booking REST API built with Gin and MongoDB.

// @contact.name    API Support
// @contact.email   hello@natours.io

// @host            localhost:3000
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter your bearer token in the format: Bearer {token}

const (
	// ShutdownTimeout bounds draining in-flight requests.
	ShutdownTimeout = 30 * time.Second
	// EmailQueueSize is the capacity of the background email queue.
	EmailQueueSize = 100
	// EmailWorkers is the number of background email workers.
	EmailWorkers = 2
)

func main() {
	os.Exit(run())
}

// run starts the server and returns the process exit code: 1 for startup
// failures and runtime faults, 0 after a signal-driven shutdown.
func run() int {
	// Load configuration
	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.IsProduction())
	slog.Info("configuration loaded", "env", cfg.Env)

	// Register custom validators
	validator.RegisterCustomValidators()

	// Set Gin mode
	gin.SetMode(cfg.GinMode())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	mongoDB, err := database.NewMongoDB(ctx, cfg.MongoURI(), cfg.DatabaseName)
	if err != nil {
		slog.Error("UNCAUGHT EXCEPTION! Shutting down...", "error", err)
		return 1
	}
	defer mongoDB.Close()

	// Optional backends
	var statsCache cache.Cache = cache.Nop{}
	var rateCounter ratelimit.Counter = ratelimit.NewMemoryCounter()
	if cfg.RedisURI != "" {
		redisCache, err := cache.NewRedis(cfg.RedisURI)
		if err != nil {
			slog.Error("UNCAUGHT EXCEPTION! Shutting down...", "error", err)
			return 1
		}
		defer redisCache.Close()
		statsCache = redisCache
		rateCounter = ratelimit.NewRedisCounter(redisCache.Client(), "ratelimit:")
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.RabbitMQURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.RabbitMQURL)
		if err != nil {
			slog.Error("UNCAUGHT EXCEPTION! Shutting down...", "error", err)
			return 1
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
	}

	var images storage.ImageResolver = storage.StaticResolver{}
	if cfg.S3Enabled() {
		s3Client, err := storage.NewS3Client(ctx, cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3UseSSL)
		if err != nil {
			slog.Error("UNCAUGHT EXCEPTION! Shutting down...", "error", err)
			return 1
		}
		images = s3Client
	}

	var gateway payment.Gateway = payment.Disabled{}
	if cfg.StripeSecretKey != "" {
		gateway = payment.NewStripeGateway(cfg.StripeSecretKey, nil)
	}

	sender := newSender(cfg)

	// Repository layer
	userRepo := repository.NewUserRepository(mongoDB.Database)
	tourRepo := repository.NewTourRepository(mongoDB.Database)
	reviewRepo := repository.NewReviewRepository(mongoDB.Database)
	bookingRepo := repository.NewBookingRepository(mongoDB.Database)

	// Email queue and processor
	emailQueue := queue.NewMemoryQueue(EmailQueueSize)
	emailProcessor := queue.NewProcessor(emailQueue, sender, EmailWorkers)

	// Service layer
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiresIn)
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:    userRepo,
		Tokens:      jwtManager,
		ResetTokens: auth.NewResetTokenGenerator(),
		Mailer:      sender,
		Emails:      emailQueue,
	})
	tourService := service.NewTourService(tourRepo, statsCache, images)
	userService := service.NewUserService(userRepo)
	reviewService := service.NewReviewService(reviewRepo, tourRepo, statsCache)
	bookingService := service.NewBookingService(service.BookingServiceConfig{
		Repo:      bookingRepo,
		Tours:     tourRepo,
		Gateway:   gateway,
		Publisher: publisher,
		Images:    images,
		Timeout:   cfg.OutboundTimeout,
	})

	// Router
	r := router.Setup(&router.Config{
		AuthHandler: handler.NewAuthHandler(authService, handler.CookieConfig{
			MaxAge: int(cfg.JWTCookieExpiresIn.Seconds()),
			Secure: cfg.IsProduction(),
		}),
		TourHandler:     handler.NewTourHandler(tourService),
		UserHandler:     handler.NewUserHandler(userService),
		ReviewHandler:   handler.NewReviewHandler(reviewService),
		BookingHandler:  handler.NewBookingHandler(bookingService),
		AuthService:     authService,
		Authorizer:      authz.NewLocalAuthorizer(),
		RateCounter:     rateCounter,
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
		BodyLimit:       cfg.BodyLimit,
		PublicDir:       cfg.PublicDir,
		Production:      cfg.IsProduction(),
		RequestLogging:  cfg.IsDevelopment(),
	})

	// Bind before serving so a taken port is a startup fault.
	ln, err := bind(cfg.Port)
	if err != nil {
		slog.Error("UNCAUGHT EXCEPTION! Shutting down...", "error", err)
		return 1
	}

	// Start email processor
	emailProcessor.Start(ctx)
	defer emailProcessor.Stop()

	srv := &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", ln.Addr().String(), "env", cfg.Env)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	code := 0
	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("UNHANDLED REJECTION! Shutting down...", "error", err)
		code = 1
	case err := <-emailProcessor.Errors():
		slog.Error("UNHANDLED REJECTION! Shutting down...", "error", err)
		code = 1
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer shutdownCancel()

	// Drain connections before stopping background work
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
		code = 1
	}

	cancel()
	slog.Info("server shutdown complete", "exit_code", code)
	return code
}

// bind opens the TCP listener for port.
func bind(port string) (net.Listener, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%s", port))
	if err != nil {
		return nil, fmt.Errorf("listen on port %s: %w", port, err)
	}
	return ln, nil
}

// newSender uses SendGrid in production and the configured SMTP host otherwise.
func newSender(cfg *config.Config) mailer.Sender {
	smtpCfg := mailer.SMTPConfig{
		Host:     cfg.EmailHost,
		Port:     cfg.EmailPort,
		Username: cfg.EmailUsername,
		Password: cfg.EmailPassword,
		From:     cfg.EmailFrom,
		FromName: cfg.EmailFromName,
	}
	if cfg.IsProduction() {
		smtpCfg.Host = mailer.SendGridHost
		smtpCfg.Port = mailer.SendGridPort
		smtpCfg.Username = cfg.SendGridUsername
		smtpCfg.Password = cfg.SendGridPassword
	}
	return mailer.NewSMTPSender(smtpCfg)
}
