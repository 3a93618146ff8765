// Package router sets up HTTP routes for the API.
package router

import (
	"net/http"
	"time"

	_ "tour-booking/docs" // Import generated swagger docs

	"tour-booking/internal/authz"
	"tour-booking/internal/handler"
	"tour-booking/internal/middleware"
	"tour-booking/internal/ratelimit"
	"tour-booking/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// APIPrefix is the rate-limited path prefix.
const APIPrefix = "/api"

// Config holds all dependencies needed to set up routes.
type Config struct {
	AuthHandler    *handler.AuthHandler
	TourHandler    *handler.TourHandler
	UserHandler    *handler.UserHandler
	ReviewHandler  *handler.ReviewHandler
	BookingHandler *handler.BookingHandler
	AuthService    service.AuthServicer
	Authorizer     authz.Authorizer

	RateCounter     ratelimit.Counter
	RateLimitMax    int
	RateLimitWindow time.Duration
	BodyLimit       int64
	PublicDir       string
	Production      bool
	// RequestLogging enables gin's request logger.
	RequestLogging bool
}

// Setup creates and configures the Gin router.
func Setup(cfg *Config) *gin.Engine {
	r := gin.New()

	// Global middleware, order matters
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler(cfg.Production))
	r.Use(middleware.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	if cfg.RequestLogging {
		r.Use(gin.Logger())
	}
	r.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Counter: cfg.RateCounter,
		Max:     int64(cfg.RateLimitMax),
		Window:  cfg.RateLimitWindow,
		Prefix:  APIPrefix,
	}))
	r.Use(middleware.BodyParser(cfg.BodyLimit))
	r.Use(middleware.Cookies())
	r.Use(middleware.MongoSanitize())
	r.Use(middleware.XSS(bluemonday.StrictPolicy()))
	r.Use(middleware.HPP(middleware.HPPWhitelist...))
	if cfg.PublicDir != "" {
		r.Use(middleware.Static(cfg.PublicDir))
	}
	r.Use(middleware.RequestTime())

	// Swagger docs at /docs
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protect := middleware.Protect(cfg.AuthService)
	restrictTo := func(action string) gin.HandlerFunc {
		return middleware.RestrictTo(cfg.Authorizer, action)
	}

	v1 := r.Group("/api/v1")
	{
		tours := v1.Group("/tours")
		{
			tours.GET("/top-5-cheap", cfg.TourHandler.AliasTopTours, cfg.TourHandler.GetAllTours)
			tours.GET("/tour-stats", cfg.TourHandler.GetTourStats)
			tours.GET("/monthly-plan/:year", protect, restrictTo(authz.ActionTourPlan), cfg.TourHandler.GetMonthlyPlan)
			tours.GET("/tours-within/:distance/center/:latlng/unit/:unit", cfg.TourHandler.GetToursWithin)
			tours.GET("/distances/:latlng/unit/:unit", cfg.TourHandler.GetDistances)

			tours.GET("", cfg.TourHandler.GetAllTours)
			tours.POST("", protect, restrictTo(authz.ActionTourWrite), cfg.TourHandler.CreateTour)
			tours.GET("/:id", cfg.TourHandler.GetTour)
			tours.PATCH("/:id", protect, restrictTo(authz.ActionTourWrite), cfg.TourHandler.UpdateTour)
			tours.DELETE("/:id", protect, restrictTo(authz.ActionTourWrite), cfg.TourHandler.DeleteTour)

			// Nested reviews
			tourReviews := tours.Group("/:"+handler.TourParam+"/reviews", protect)
			{
				tourReviews.GET("", cfg.ReviewHandler.GetAllReviews)
				tourReviews.POST("", restrictTo(authz.ActionReviewCreate), cfg.ReviewHandler.CreateReview)
			}
		}

		users := v1.Group("/users")
		{
			// Auth routes (public)
			users.POST("/signup", cfg.AuthHandler.Signup)
			users.POST("/login", cfg.AuthHandler.Login)
			users.GET("/logout", cfg.AuthHandler.Logout)
			users.POST("/forgotPassword", cfg.AuthHandler.ForgotPassword)
			users.PATCH("/resetPassword/:token", cfg.AuthHandler.ResetPassword)

			// Current user (protected)
			me := users.Group("", protect)
			{
				me.PATCH("/updateMyPassword", cfg.AuthHandler.UpdatePassword)
				me.GET("/me", cfg.UserHandler.GetMe)
				me.PATCH("/updateMe", cfg.UserHandler.UpdateMe)
				me.DELETE("/deleteMe", cfg.UserHandler.DeleteMe)
			}

			// Administration
			admin := users.Group("", protect, restrictTo(authz.ActionUserManage))
			{
				admin.GET("", cfg.UserHandler.GetAllUsers)
				admin.POST("", cfg.UserHandler.CreateUser)
				admin.GET("/:id", cfg.UserHandler.GetUser)
				admin.PATCH("/:id", cfg.UserHandler.UpdateUser)
				admin.DELETE("/:id", cfg.UserHandler.DeleteUser)
			}
		}

		reviews := v1.Group("/reviews", protect)
		{
			reviews.GET("", cfg.ReviewHandler.GetAllReviews)
			reviews.POST("", restrictTo(authz.ActionReviewCreate), cfg.ReviewHandler.CreateReview)
			reviews.GET("/:id", cfg.ReviewHandler.GetReview)
			reviews.PATCH("/:id", restrictTo(authz.ActionReviewModify), cfg.ReviewHandler.UpdateReview)
			reviews.DELETE("/:id", restrictTo(authz.ActionReviewModify), cfg.ReviewHandler.DeleteReview)
		}

		bookings := v1.Group("/bookings", protect)
		{
			bookings.GET("/checkout-session/:tourId", cfg.BookingHandler.GetCheckoutSession)
			bookings.GET("/my-tours", cfg.BookingHandler.GetMyTours)

			manage := bookings.Group("", restrictTo(authz.ActionBookingManage))
			{
				manage.GET("", cfg.BookingHandler.GetAllBookings)
				manage.POST("", cfg.BookingHandler.CreateBooking)
				manage.GET("/:id", cfg.BookingHandler.GetBooking)
				manage.PATCH("/:id", cfg.BookingHandler.UpdateBooking)
				manage.DELETE("/:id", cfg.BookingHandler.DeleteBooking)
			}
		}
	}

	r.NoRoute(middleware.NotFound())

	return r
}
