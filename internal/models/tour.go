package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tour difficulties.
const (
	DifficultyEasy      = "easy"
	DifficultyMedium    = "medium"
	DifficultyDifficult = "difficult"
)

// DefaultRatingsAverage is the rating a tour starts with before any review.
const DefaultRatingsAverage = 4.5

// GeoPoint is a GeoJSON point with display metadata.
type GeoPoint struct {
	Type        string    `json:"type" bson:"type" binding:"omitempty,eq=Point" example:"Point"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates" binding:"omitempty,len=2"`
	Address     string    `json:"address,omitempty" bson:"address,omitempty" example:"Miami, USA"`
	Description string    `json:"description,omitempty" bson:"description,omitempty" example:"Miami, USA"`
	Day         int       `json:"day,omitempty" bson:"day,omitempty" example:"1"`
}

// Tour is a bookable tour.
type Tour struct {
	Base            `bson:",inline"`
	Name            string               `json:"name" bson:"name" binding:"required,min=10,max=40" example:"The Sea Explorer"`
	Slug            string               `json:"slug" bson:"slug" binding:"omitempty,slug" example:"the-sea-explorer"`
	Duration        int                  `json:"duration" bson:"duration" binding:"required,gt=0" example:"7"`
	MaxGroupSize    int                  `json:"maxGroupSize" bson:"maxGroupSize" binding:"required,gt=0" example:"15"`
	Difficulty      string               `json:"difficulty" bson:"difficulty" binding:"required,oneof=easy medium difficult" example:"medium"`
	RatingsAverage  float64              `json:"ratingsAverage" bson:"ratingsAverage" binding:"min=1,max=5" example:"4.8"`
	RatingsQuantity int                  `json:"ratingsQuantity" bson:"ratingsQuantity" binding:"min=0" example:"23"`
	Price           float64              `json:"price" bson:"price" binding:"required,gt=0" example:"497"`
	PriceDiscount   float64              `json:"priceDiscount,omitempty" bson:"priceDiscount,omitempty" binding:"omitempty,gte=0,ltfield=Price" example:"100"`
	Summary         string               `json:"summary" bson:"summary" binding:"required" example:"Exploring the jaw-dropping US east coast by foot and by boat"`
	Description     string               `json:"description,omitempty" bson:"description,omitempty"`
	ImageCover      string               `json:"imageCover" bson:"imageCover" binding:"required" example:"tour-2-cover.jpg"`
	ImageCoverURL   string               `json:"imageCoverUrl,omitempty" bson:"-"` // resolved at read time, not stored
	Images          []string             `json:"images" bson:"images"`
	StartDates      []time.Time          `json:"startDates" bson:"startDates"`
	SecretTour      bool                 `json:"secretTour" bson:"secretTour"`
	StartLocation   *GeoPoint            `json:"startLocation,omitempty" bson:"startLocation,omitempty"`
	Locations       []GeoPoint           `json:"locations" bson:"locations" binding:"dive"`
	Guides          []primitive.ObjectID `json:"guides" bson:"guides"`
	GuideInfo       []UserSummary        `json:"guideInfo,omitempty" bson:"guideInfo,omitempty"`
	Reviews         []Review             `json:"reviews,omitempty" bson:"reviews,omitempty"`
}

// ApplyDefaults fills the fields a new tour starts with.
func (t *Tour) ApplyDefaults() {
	if t.RatingsAverage == 0 {
		t.RatingsAverage = DefaultRatingsAverage
	}
	if t.Images == nil {
		t.Images = []string{}
	}
	if t.StartDates == nil {
		t.StartDates = []time.Time{}
	}
	if t.Locations == nil {
		t.Locations = []GeoPoint{}
	}
	if t.Guides == nil {
		t.Guides = []primitive.ObjectID{}
	}
	t.Name = strings.TrimSpace(t.Name)
	t.Summary = strings.TrimSpace(t.Summary)
	t.Description = strings.TrimSpace(t.Description)
}

// ClearPopulated drops joined fields before the tour is written back.
func (t *Tour) ClearPopulated() {
	t.GuideInfo = nil
	t.Reviews = nil
	t.ImageCoverURL = ""
}

// DurationWeeks is the tour length in weeks.
func (t *Tour) DurationWeeks() float64 {
	return float64(t.Duration) / 7
}

// Slugify lowercases s and joins its alphanumeric runs with hyphens.
func Slugify(s string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// TourSummary is the projection of a tour embedded in bookings.
type TourSummary struct {
	ID    primitive.ObjectID `json:"id" bson:"_id"`
	Name  string             `json:"name" bson:"name"`
	Slug  string             `json:"slug" bson:"slug"`
	Price float64            `json:"price" bson:"price"`
}

// TourStats is one row of the per-difficulty statistics.
type TourStats struct {
	Difficulty string  `json:"difficulty" bson:"_id" example:"MEDIUM"`
	NumTours   int     `json:"numTours" bson:"numTours" example:"3"`
	NumRatings int     `json:"numRatings" bson:"numRatings" example:"70"`
	AvgRating  float64 `json:"avgRating" bson:"avgRating" example:"4.8"`
	AvgPrice   float64 `json:"avgPrice" bson:"avgPrice" example:"1663.67"`
	MinPrice   float64 `json:"minPrice" bson:"minPrice" example:"497"`
	MaxPrice   float64 `json:"maxPrice" bson:"maxPrice" example:"2997"`
}

// MonthlyPlan counts tour starts in one month of a year.
type MonthlyPlan struct {
	Month         int      `json:"month" bson:"month" example:"7"`
	NumTourStarts int      `json:"numTourStarts" bson:"numTourStarts" example:"3"`
	Tours         []string `json:"tours" bson:"tours"`
}

// TourDistance is a tour name with its distance from a point.
type TourDistance struct {
	ID       primitive.ObjectID `json:"id" bson:"_id"`
	Name     string             `json:"name" bson:"name"`
	Distance float64            `json:"distance" bson:"distance"`
}
