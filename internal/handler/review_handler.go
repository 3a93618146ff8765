package handler

import (
	"tour-booking/internal/middleware"
	"tour-booking/internal/models"
	"tour-booking/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TourParam names the tour id in nested /tours/:id/reviews routes.
const TourParam = "id"

// ReviewHandler handles HTTP requests for review operations.
type ReviewHandler struct {
	factory *Factory[models.Review]
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service service.ReviewServicer) *ReviewHandler {
	f := NewFactory[models.Review](service)
	f.Prepare = setTourUserIDs
	f.Scope = scopeToTour
	return &ReviewHandler{factory: f}
}

// setTourUserIDs fills the tour from a nested route and the author from the
// logged-in user when the body leaves them out.
func setTourUserIDs(c *gin.Context, r *models.Review) {
	if r.Tour.IsZero() {
		if id, err := primitive.ObjectIDFromHex(c.Param(TourParam)); err == nil {
			r.Tour = id
		}
	}
	if r.User.IsZero() {
		if user := middleware.CurrentUser(c); user != nil {
			r.User = user.ID
		}
	}
}

func scopeToTour(c *gin.Context, q *models.ListQuery) error {
	raw := c.Param(TourParam)
	if raw == "" {
		return nil
	}
	id, err := service.ParseID(raw)
	if err != nil {
		return err
	}
	q.Filter["tour"] = id
	return nil
}

// GetAllReviews godoc
// @Summary      List reviews
// @Description  On /tours/{id}/reviews only reviews of that tour are listed
// @Tags         reviews
// @Produce      json
// @Success      200  {object}  response.Response{data=response.DataEnvelope{data=[]models.Review}}
// @Failure      401  {object}  response.ErrorResponse
// @Security     BearerAuth
// @Router       /reviews [get]
func (h *ReviewHandler) GetAllReviews(c *gin.Context) {
	h.factory.GetAll(c)
}

// GetReview godoc
// @Summary      Get a review
// @Tags         reviews
// @Produce      json
// @Param        id   path      string  true  "Review ID"
// @Success      200  {object}  response.Response{data=response.DataEnvelope{data=models.Review}}
// @Failure      404  {object}  response.ErrorResponse
// @Security     BearerAuth
// @Router       /reviews/{id} [get]
func (h *ReviewHandler) GetReview(c *gin.Context) {
	h.factory.GetOne(c)
}

// CreateReview godoc
// @Summary      Review a tour
// @Description  tour and user default to the nested route and the logged-in user
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        request  body      models.Review  true  "Review"
// @Success      201      {object}  response.Response{data=response.DataEnvelope{data=models.Review}}
// @Failure      400      {object}  response.ErrorResponse
// @Failure      403      {object}  response.ErrorResponse
// @Security     BearerAuth
// @Router       /reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	h.factory.CreateOne(c)
}

// UpdateReview godoc
// @Summary      Update a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id       path      string         true  "Review ID"
// @Param        request  body      models.Review  true  "Fields to change"
// @Success      200      {object}  response.Response{data=response.DataEnvelope{data=models.Review}}
// @Failure      404      {object}  response.ErrorResponse
// @Security     BearerAuth
// @Router       /reviews/{id} [patch]
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	h.factory.UpdateOne(c)
}

// DeleteReview godoc
// @Summary      Delete a review
// @Tags         reviews
// @Param        id  path  string  true  "Review ID"
// @Success      204  "No Content"
// @Failure      404  {object}  response.ErrorResponse
// @Security     BearerAuth
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	h.factory.DeleteOne(c)
}
