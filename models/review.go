package models

import "time"

// Review limits.
const (
	MinReviewRating  = 1
	MaxReviewRating  = 5
	MaxReviewTextLen = 500
)

// Review is a customer's one-time rating of a completed booking. At most one
// review exists per booking (unique index on bookingId).
type Review struct {
	ID         string    `bson:"id" json:"id"`
	BookingID  string    `bson:"bookingId" json:"bookingId"`
	CustomerID string    `bson:"customerId" json:"customerId"`
	Rating     float64   `bson:"rating" json:"rating"`
	Text       string    `bson:"text" json:"text"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
