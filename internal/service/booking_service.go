package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "tour-booking/internal/errors"
	"tour-booking/internal/events"
	"tour-booking/internal/models"
	"tour-booking/internal/payment"
	"tour-booking/internal/repository"
	"tour-booking/internal/storage"
)

// CheckoutCurrency is the currency every tour is sold in.
const CheckoutCurrency = "usd"

// CheckoutInput is what a checkout needs besides the tour id.
type CheckoutInput struct {
	TourID string
	User   *models.User
	// BaseURL is "<scheme>://<host>" of the incoming request.
	BaseURL string
}

// CheckoutResult is a created gateway session and the booking it produced.
type CheckoutResult struct {
	Session *payment.Session
	Booking *models.Booking
}

// BookingService handles bookings and checkout.
type BookingService struct {
	*Resource[models.Booking, *models.Booking]
	repo      repository.BookingRepository
	tours     repository.TourRepository
	gateway   payment.Gateway
	publisher events.Publisher
	images    storage.ImageResolver
	timeout   time.Duration
}

// BookingServiceConfig holds configuration for BookingService.
type BookingServiceConfig struct {
	Repo      repository.BookingRepository
	Tours     repository.TourRepository
	Gateway   payment.Gateway
	Publisher events.Publisher
	Images    storage.ImageResolver
	// Timeout bounds each call to the gateway and the broker.
	Timeout time.Duration
}

// NewBookingService creates a new BookingService.
func NewBookingService(cfg BookingServiceConfig) *BookingService {
	return &BookingService{
		Resource: NewResource[models.Booking](cfg.Repo, Hooks[models.Booking]{
			BeforeCreate: func(_ context.Context, b *models.Booking) error {
				b.ApplyDefaults()
				return nil
			},
		}),
		repo:      cfg.Repo,
		tours:     cfg.Tours,
		gateway:   cfg.Gateway,
		publisher: cfg.Publisher,
		images:    cfg.Images,
		timeout:   cfg.Timeout,
	}
}

// CheckoutSession creates a payment session for a tour and records the
// booking. A missing tour yields ErrTourNotFound and no booking.
func (s *BookingService) CheckoutSession(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	tourID, err := ParseID(in.TourID)
	if err != nil {
		return nil, err
	}

	tour, err := s.tours.FindByID(ctx, tourID, false)
	if err != nil {
		if errors.Is(err, apperrors.ErrDocumentNotFound) {
			return nil, apperrors.ErrTourNotFound
		}
		return nil, err
	}

	image, err := s.images.TourImageURL(ctx, tour.ImageCover)
	if err != nil {
		return nil, err
	}
	var images []string
	if image != "" {
		// Relative URLs are served by this host.
		if strings.HasPrefix(image, "/") {
			image = in.BaseURL + image
		}
		images = []string{image}
	}

	gatewayCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	session, err := s.gateway.CreateCheckoutSession(gatewayCtx, payment.CheckoutRequest{
		ClientReferenceID: tour.ID.Hex(),
		CustomerEmail:     in.User.Email,
		SuccessURL: fmt.Sprintf("%s/my-tours/?tour=%s&user=%s&price=%s",
			in.BaseURL, tour.ID.Hex(), in.User.ID.Hex(), formatPrice(tour.Price)),
		CancelURL:   fmt.Sprintf("%s/tour/%s", in.BaseURL, tour.Slug),
		ProductName: tour.Name + " Tour",
		Description: tour.Summary,
		Images:      images,
		Amount:      payment.AmountInCents(tour.Price),
		Currency:    CheckoutCurrency,
		Quantity:    1,
	})
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{Tour: tour.ID, User: in.User.ID, Price: tour.Price}
	booking.ApplyDefaults()
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.publishCreated(ctx, booking, session.ID)

	return &CheckoutResult{Session: session, Booking: booking}, nil
}

// MyTours returns the tours the user has booked.
func (s *BookingService) MyTours(ctx context.Context, user *models.User) ([]models.Tour, error) {
	bookings, err := s.repo.FindByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	tours, err := s.tours.FindByIDs(ctx, models.TourIDs(bookings))
	if err != nil {
		return nil, err
	}

	for i := range tours {
		url, err := s.images.TourImageURL(ctx, tours[i].ImageCover)
		if err != nil {
			return nil, err
		}
		tours[i].ImageCoverURL = url
	}
	return tours, nil
}

// publishCreated emits booking.created. Failures are logged, never returned.
func (s *BookingService) publishCreated(ctx context.Context, b *models.Booking, sessionID string) {
	pubCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.publisher.PublishBookingCreated(pubCtx, events.BookingCreated{
		BookingID: b.ID,
		TourID:    b.Tour,
		UserID:    b.User,
		Price:     b.Price,
		SessionID: sessionID,
		CreatedAt: b.CreatedAt,
	})
	if err != nil {
		slog.Warn("failed to publish booking event", "booking", b.ID.Hex(), "error", err)
	}
}

func (s *BookingService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// formatPrice prints whole prices without decimals.
func formatPrice(p float64) string {
	if p == float64(int64(p)) {
		return fmt.Sprintf("%d", int64(p))
	}
	return fmt.Sprintf("%.2f", p)
}
