package models

import "time"

// Booking statuses. Values are exposed verbatim at the API boundary.
const (
	BookingPending   = "Pending"
	BookingConfirmed = "Confirmed"
	BookingCompleted = "Completed"
	BookingCancelled = "Cancelled"
	BookingRejected  = "Rejected"
)

// Booking links one customer, one provider and one listing at a point in
// time. TotalAmount is snapshotted from the listing price at creation and
// never changes afterwards, regardless of later listing price edits.
type Booking struct {
	ID                  string    `bson:"id" json:"id"`
	CustomerID          string    `bson:"customerId" json:"customerId"`
	ProviderID          string    `bson:"providerId" json:"providerId"`
	ListingID           string    `bson:"listingId" json:"listingId"`
	BookingDateTime     time.Time `bson:"bookingDateTime" json:"bookingDateTime"`
	ServiceDateTime     time.Time `bson:"serviceDateTime" json:"serviceDateTime"`
	Status              string    `bson:"status" json:"status"`
	SpecialInstructions string    `bson:"specialInstructions,omitempty" json:"specialInstructions,omitempty"`
	TotalAmount         float64   `bson:"totalAmount" json:"totalAmount"`
	CommissionAmount    float64   `bson:"commissionAmount" json:"commissionAmount"`
	ProviderEarning     float64   `bson:"providerEarning" json:"providerEarning"`
	CommissionPaid      bool      `bson:"commissionPaid" json:"commissionPaid"`
	CreatedAt           time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BookingDetail is a booking assembled with the listing and counterpart
// identities a caller needs to render it.
type BookingDetail struct {
	Booking
	Listing  *ListingSummary `json:"listing,omitempty"`
	Customer *UserSummary    `json:"customer,omitempty"`
	Provider *UserSummary    `json:"provider,omitempty"`
}
