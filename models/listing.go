package models

import "time"

// Listing is a priced, bookable service offered by a single provider under a
// single category. CommissionAmount and ProviderEarning are derived from the
// price and the provider's commission rate whenever the price changes, so
// CommissionAmount + ProviderEarning == Price after every successful save.
type Listing struct {
	ID               string    `bson:"id" json:"id"`
	ProviderID       string    `bson:"providerId" json:"providerId"`
	CategoryID       string    `bson:"categoryId" json:"categoryId"`
	Title            string    `bson:"title" json:"title"`
	Price            float64   `bson:"price" json:"price"`
	Details          string    `bson:"details" json:"details"`
	Image            string    `bson:"image" json:"image"`
	IsActive         bool      `bson:"isActive" json:"isActive"`
	CommissionAmount float64   `bson:"commissionAmount" json:"commissionAmount"`
	ProviderEarning  float64   `bson:"providerEarning" json:"providerEarning"`
	Duration         int       `bson:"duration" json:"duration"`
	ServiceLocation  string    `bson:"serviceLocation" json:"serviceLocation,omitempty"`
	Tags             []string  `bson:"tags" json:"tags"`
	AverageRating    float64   `bson:"averageRating" json:"averageRating"`
	ReviewCount      int       `bson:"reviewCount" json:"reviewCount"`
	BookingCount     int       `bson:"bookingCount" json:"bookingCount"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ListingPatch enumerates the patchable listing fields.
type ListingPatch struct {
	Title           *string  `json:"title,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Details         *string  `json:"details,omitempty"`
	Duration        *int     `json:"duration,omitempty"`
	ServiceLocation *string  `json:"serviceLocation,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	IsActive        *bool    `json:"isActive,omitempty"`
}

// ListingSummary is the slice of a listing embedded in booking views.
type ListingSummary struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	Image        string  `json:"image,omitempty"`
	CategoryName string  `json:"categoryName,omitempty"`
}

// ListingView is a listing assembled with its category name and owning
// provider's running rating.
type ListingView struct {
	Listing
	CategoryName   string  `json:"categoryName,omitempty"`
	ProviderRating float64 `json:"providerRating"`
}
