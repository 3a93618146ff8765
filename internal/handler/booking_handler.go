package handler

import (
	"errors"

	apperrors "tour-booking/internal/errors"
	"tour-booking/internal/middleware"
	"tour-booking/internal/models"
	"tour-booking/internal/service"
	"tour-booking/pkg/response"

	"github.com/gin-gonic/gin"
)

// BookingHandler handles HTTP requests for bookings and checkout.
type BookingHandler struct {
	service service.BookingServicer
	factory *Factory[models.Booking]
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service service.BookingServicer) *BookingHandler {
	f := NewFactory[models.Booking](service)
	f.Populate = true
	return &BookingHandler{service: service, factory: f}
}

// GetCheckoutSession godoc
// @Summary      Create a checkout session
// @Description  Creates a payment session for the tour and records the booking. An unknown tour produces no booking and no body.
// @Tags         bookings
// @Produce      json
// @Param        tourId  path      string  true  "Tour ID"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  response.ErrorResponse
// @Failure      401     {object}  response.ErrorResponse
// @Failure      502     {object}  response.ErrorResponse
// @Security     BearerAuth
// @Router       /bookings/checkout-session/{tourId} [get]
func (h *BookingHandler) GetCheckoutSession(c *gin.Context) {
	result, err := h.service.CheckoutSession(c.Request.Context(), service.CheckoutInput{
		TourID:  c.Param("tourId"),
		User:    middleware.CurrentUser(c),
		BaseURL: baseURL(c),
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrTourNotFound) {
			c.Next()
			return
		}
		_ = c.Error(err)
		return
	}

	response.Success(c, gin.H{"session": result.Session})
}

// GetMyTours godoc
// @Summary      Booked tours
// @Description  Tours the logged-in user has booked
// @Tags         bookings
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  response.ErrorResponse
// @Security     BearerAuth
// @Router       /bookings/my-tours [get]
func (h *BookingHandler) GetMyTours(c *gin.Context) {
	tours, err := h.service.MyTours(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	if tours == nil {
		tours = []models.Tour{}
	}

	response.Success(c, gin.H{"result": len(tours), "tours": tours})
}

// GetAllBookings godoc
// @Summary      List bookings
// @Tags         bookings
// @Produce      json
// @Success      200  {object}  response.Response{data=response.DataEnvelope{data=[]models.Booking}}
// @Failure      403  {object}  response.ErrorResponse
// @Security     BearerAuth
// @Router       /bookings [get]
func (h *BookingHandler) GetAllBookings(c *gin.Context) {
	h.factory.GetAll(c)
}

// GetBooking godoc
// @Summary      Get a booking
// @Tags         bookings
// @Produce      json
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  response.Response{data=response.DataEnvelope{data=models.Booking}}
// @Failure      404  {object}  response.ErrorResponse
// @Security     BearerAuth
// @Router       /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	h.factory.GetOne(c)
}

// CreateBooking godoc
// @Summary      Create a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request  body      models.Booking  true  "Booking"
// @Success      201      {object}  response.Response{data=response.DataEnvelope{data=models.Booking}}
// @Failure      400      {object}  response.ErrorResponse
// @Security     BearerAuth
// @Router       /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	h.factory.CreateOne(c)
}

// UpdateBooking godoc
// @Summary      Update a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        id       path      string          true  "Booking ID"
// @Param        request  body      models.Booking  true  "Fields to change"
// @Success      200      {object}  response.Response{data=response.DataEnvelope{data=models.Booking}}
// @Failure      404      {object}  response.ErrorResponse
// @Security     BearerAuth
// @Router       /bookings/{id} [patch]
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	h.factory.UpdateOne(c)
}

// DeleteBooking godoc
// @Summary      Delete a booking
// @Tags         bookings
// @Param        id  path  string  true  "Booking ID"
// @Success      204  "No Content"
// @Failure      404  {object}  response.ErrorResponse
// @Security     BearerAuth
// @Router       /bookings/{id} [delete]
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	h.factory.DeleteOne(c)
}

// baseURL is "<scheme>://<host>" as the client addressed this server.
func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
