package models

import "time"

// Provider verification statuses.
const (
	VerificationPending  = "Pending"
	VerificationVerified = "Verified"
	VerificationRejected = "Rejected"
)

// Provider availability modes.
const (
	AvailabilityWeekdays = "Weekdays"
	AvailabilityWeekends = "Weekends"
	AvailabilityAllDays  = "All Days"
	AvailabilityCustom   = "Custom"
)

// Commission rate bounds (percent).
const (
	DefaultCommissionRate = 10.0
	MaxCommissionRate     = 30.0
)

// BankDetails holds the payout account for a provider.
type BankDetails struct {
	AccountName   string `bson:"accountName" json:"accountName,omitempty"`
	AccountNumber string `bson:"accountNumber" json:"accountNumber,omitempty"`
	BankName      string `bson:"bankName" json:"bankName,omitempty"`
	IFSCCode      string `bson:"ifscCode" json:"ifscCode,omitempty"`
}

// Provider is the one-to-one extension of a service_provider user. Listings
// may only be published while VerificationStatus is Verified.
type Provider struct {
	ID                  string         `bson:"id" json:"id"`
	UserID              string         `bson:"userId" json:"userId"`
	CategoryIDs         []string       `bson:"categoryIds" json:"categoryIds"`
	Description         string         `bson:"description" json:"description"`
	Availability        string         `bson:"availability" json:"availability"`
	AvailabilityDetails map[string]any `bson:"availabilityDetails,omitempty" json:"availabilityDetails,omitempty"`
	Rating              float64        `bson:"rating" json:"rating"`
	VerificationStatus  string         `bson:"verificationStatus" json:"verificationStatus"`
	CommissionRate      float64        `bson:"commissionRate" json:"commissionRate"`
	BankDetails         BankDetails    `bson:"bankDetails,omitempty" json:"bankDetails,omitzero"`
	TotalEarnings       float64        `bson:"totalEarnings" json:"totalEarnings"`
	TotalCommissionPaid float64        `bson:"totalCommissionPaid" json:"totalCommissionPaid"`
	Location            GeoPoint       `bson:"location" json:"location"`
	CreatedAt           time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// ProviderPatch enumerates the patchable provider profile fields.
type ProviderPatch struct {
	Description         *string        `json:"description,omitempty"`
	CategoryIDs         []string       `json:"categoryIds,omitempty"`
	Availability        *string        `json:"availability,omitempty"`
	AvailabilityDetails map[string]any `json:"availabilityDetails,omitempty"`
	BankDetails         *BankDetails   `json:"bankDetails,omitempty"`
}

// ProviderView is a provider assembled with its owning user and category names.
type ProviderView struct {
	Provider
	User          *UserSummary `json:"user,omitempty"`
	CategoryNames []string     `json:"categoryNames,omitempty"`
}
