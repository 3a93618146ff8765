package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Booking records that a user paid for a tour.
type Booking struct {
	Base     `bson:",inline"`
	Tour     primitive.ObjectID `json:"tour" bson:"tour" binding:"required" swaggertype:"string" example:"5c88fa8cf4afda39709c2955"`
	User     primitive.ObjectID `json:"user" bson:"user" binding:"required" swaggertype:"string" example:"5c8a1d5b0190b214360dc057"`
	Price    float64            `json:"price" bson:"price" binding:"required,gt=0" example:"497"`
	Paid     *bool              `json:"paid" bson:"paid" example:"true"`
	TourInfo *TourSummary       `json:"tourInfo,omitempty" bson:"tourInfo,omitempty"`
	UserInfo *UserSummary       `json:"userInfo,omitempty" bson:"userInfo,omitempty"`
}

// ApplyDefaults marks a new booking as paid unless stated otherwise.
func (b *Booking) ApplyDefaults() {
	if b.Paid == nil {
		paid := true
		b.Paid = &paid
	}
}

// ClearPopulated drops joined fields before the booking is written back.
func (b *Booking) ClearPopulated() {
	b.TourInfo = nil
	b.UserInfo = nil
}

// TourIDs returns the distinct tour ids of bookings, in first-seen order.
func TourIDs(bookings []Booking) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(bookings))
	ids := make([]primitive.ObjectID, 0, len(bookings))
	for _, b := range bookings {
		if seen[b.Tour] {
			continue
		}
		seen[b.Tour] = true
		ids = append(ids, b.Tour)
	}
	return ids
}
