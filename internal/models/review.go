package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Review is a user's rating of a tour. A user reviews a tour at most once.
type Review struct {
	Base     `bson:",inline"`
	Review   string             `json:"review" bson:"review" binding:"required" example:"Amazing experience, would book again!"`
	Rating   float64            `json:"rating" bson:"rating" binding:"required,min=1,max=5" example:"5"`
	Tour     primitive.ObjectID `json:"tour" bson:"tour" binding:"required" swaggertype:"string" example:"5c88fa8cf4afda39709c2955"`
	User     primitive.ObjectID `json:"user" bson:"user" binding:"required" swaggertype:"string" example:"5c8a1d5b0190b214360dc057"`
	UserInfo *UserSummary       `json:"userInfo,omitempty" bson:"userInfo,omitempty"`
}

// ClearPopulated drops the joined author before the review is written back.
func (r *Review) ClearPopulated() {
	r.UserInfo = nil
}

// RatingSummary is the aggregate rating of a tour.
type RatingSummary struct {
	TourID    primitive.ObjectID `bson:"_id"`
	NRating   int                `bson:"nRating"`
	AvgRating float64            `bson:"avgRating"`
}
