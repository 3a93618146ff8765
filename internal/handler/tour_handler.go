package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperrors "tour-booking/internal/errors"
	"tour-booking/internal/models"
	"tour-booking/internal/service"
	"tour-booking/pkg/response"

	"github.com/gin-gonic/gin"
)

// Distance units accepted by the geo endpoints.
const (
	UnitMiles      = "mi"
	UnitKilometers = "km"
)

// TourHandler handles HTTP requests for tour operations.
type TourHandler struct {
	service service.TourServicer
	factory *Factory[models.Tour]
}

// NewTourHandler creates a new TourHandler.
func NewTourHandler(service service.TourServicer) *TourHandler {
	f := NewFactory[models.Tour](service)
	f.Populate = true
	return &TourHandler{service: service, factory: f}
}

// AliasTopTours rewrites the query to the five best-rated, cheapest tours.
func (h *TourHandler) AliasTopTours(c *gin.Context) {
	q := url.Values{}
	q.Set("limit", "5")
	q.Set("sort", "-ratingsAverage,price")
	q.Set("fields", "name,price,ratingsAverage,summary,difficulty")
	c.Request.URL.RawQuery = q.Encode()
	c.Next()
}

// GetAllTours godoc
// @Summary      List tours
// @Description  Filter with field=value or field[gte|gt|lte|lt]=value; sort, fields, page and limit shape the result
// @Tags         tours
// @Produce      json
// @Param        sort    query     string  false  "Comma-separated sort fields, - for descending"
// @Param        fields  query     string  false  "Comma-separated projection"
// @Param        page    query     int     false  "Page number"   default(1)
// @Param        limit   query     int     false  "Page size"     default(100)
// @Success      200     {object}  response.Response{data=response.DataEnvelope{data=[]models.Tour}}
// @Failure      400     {object}  response.ErrorResponse
// @Router       /tours [get]
func (h *TourHandler) GetAllTours(c *gin.Context) {
	h.factory.GetAll(c)
}

// GetTour godoc
// @Summary      Get a tour
// @Description  Returns one tour with its guides and reviews
// @Tags         tours
// @Produce      json
// @Param        id   path      string  true  "Tour ID"
// @Success      200  {object}  response.Response{data=response.DataEnvelope{data=models.Tour}}
// @Failure      400  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /tours/{id} [get]
func (h *TourHandler) GetTour(c *gin.Context) {
	h.factory.GetOne(c)
}

// CreateTour godoc
// @Summary      Create a tour
// @Tags         tours
// @Accept       json
// @Produce      json
// @Param        request  body      models.Tour  true  "Tour"
// @Success      201      {object}  response.Response{data=response.DataEnvelope{data=models.Tour}}
// @Failure      400      {object}  response.ErrorResponse
// @Failure      401      {object}  response.ErrorResponse
// @Failure      403      {object}  response.ErrorResponse
// @Security     BearerAuth
// @Router       /tours [post]
func (h *TourHandler) CreateTour(c *gin.Context) {
	h.factory.CreateOne(c)
}

// UpdateTour godoc
// @Summary      Update a tour
// @Tags         tours
// @Accept       json
// @Produce      json
// @Param        id       path      string       true  "Tour ID"
// @Param        request  body      models.Tour  true  "Fields to change"
// @Success      200      {object}  response.Response{data=response.DataEnvelope{data=models.Tour}}
// @Failure      400      {object}  response.ErrorResponse
// @Failure      404      {object}  response.ErrorResponse
// @Security     BearerAuth
// @Router       /tours/{id} [patch]
func (h *TourHandler) UpdateTour(c *gin.Context) {
	h.factory.UpdateOne(c)
}

// DeleteTour godoc
// @Summary      Delete a tour
// @Tags         tours
// @Param        id  path  string  true  "Tour ID"
// @Success      204  "No Content"
// @Failure      404  {object}  response.ErrorResponse
// @Security     BearerAuth
// @Router       /tours/{id} [delete]
func (h *TourHandler) DeleteTour(c *gin.Context) {
	h.factory.DeleteOne(c)
}

// GetTourStats godoc
// @Summary      Tour statistics
// @Description  Counts, ratings and prices of well-rated tours grouped by difficulty
// @Tags         tours
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /tours/tour-stats [get]
func (h *TourHandler) GetTourStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, gin.H{"data": gin.H{"stats": stats}})
}

// GetMonthlyPlan godoc
// @Summary      Monthly plan
// @Description  Number of tour starts per month of a year
// @Tags         tours
// @Produce      json
// @Param        year  path      int  true  "Year"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  response.ErrorResponse
// @Security     BearerAuth
// @Router       /tours/monthly-plan/{year} [get]
func (h *TourHandler) GetMonthlyPlan(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		_ = c.Error(apperrors.New(http.StatusBadRequest, "Invalid year: "+c.Param("year")))
		return
	}

	plan, err := h.service.MonthlyPlan(c.Request.Context(), year)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, gin.H{"data": gin.H{"plan": plan}})
}

// GetToursWithin godoc
// @Summary      Tours within a radius
// @Tags         tours
// @Produce      json
// @Param        distance  path      number  true  "Radius"
// @Param        latlng    path      string  true  "Center as lat,lng"
// @Param        unit      path      string  true  "mi or km"
// @Success      200       {object}  response.Response{data=response.DataEnvelope{data=[]models.Tour}}
// @Failure      400       {object}  response.ErrorResponse
// @Router       /tours/tours-within/{distance}/center/{latlng}/unit/{unit} [get]
func (h *TourHandler) GetToursWithin(c *gin.Context) {
	lat, lng, unit, err := geoParams(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil || distance <= 0 {
		_ = c.Error(apperrors.New(http.StatusBadRequest, "Please provide a positive distance."))
		return
	}

	tours, err := h.service.Within(c.Request.Context(), lat, lng, distance, unit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.List(c, tours, len(tours))
}

// GetDistances godoc
// @Summary      Distances to every tour
// @Tags         tours
// @Produce      json
// @Param        latlng  path      string  true  "Point as lat,lng"
// @Param        unit    path      string  true  "mi or km"
// @Success      200     {object}  response.Response{data=response.DataEnvelope{data=[]models.TourDistance}}
// @Failure      400     {object}  response.ErrorResponse
// @Router       /tours/distances/{latlng}/unit/{unit} [get]
func (h *TourHandler) GetDistances(c *gin.Context) {
	lat, lng, unit, err := geoParams(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	distances, err := h.service.Distances(c.Request.Context(), lat, lng, unit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Document(c, http.StatusOK, distances)
}

func geoParams(c *gin.Context) (lat, lng float64, unit string, err error) {
	badPoint := apperrors.New(http.StatusBadRequest, "Please provide latitude and longitude in the format lat,lng.")

	latStr, lngStr, ok := strings.Cut(c.Param("latlng"), ",")
	if !ok {
		return 0, 0, "", badPoint
	}
	if lat, err = strconv.ParseFloat(strings.TrimSpace(latStr), 64); err != nil {
		return 0, 0, "", badPoint
	}
	if lng, err = strconv.ParseFloat(strings.TrimSpace(lngStr), 64); err != nil {
		return 0, 0, "", badPoint
	}

	unit = c.Param("unit")
	if unit != UnitMiles && unit != UnitKilometers {
		return 0, 0, "", apperrors.New(http.StatusBadRequest, "Unit must be mi or km.")
	}
	return lat, lng, unit, nil
}
