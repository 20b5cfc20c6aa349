package models

import "time"

// EarningsRecord is the daily rollup of platform commission. One record
// exists per calendar date; records are appended to, never deleted.
type EarningsRecord struct {
	ID                    string    `bson:"id" json:"id"`
	Date                  time.Time `bson:"date" json:"date"`
	TotalCommissionEarned float64   `bson:"totalCommissionEarned" json:"totalCommissionEarned"`
	TotalBookings         int       `bson:"totalBookings" json:"totalBookings"`
	Bookings              []string  `bson:"bookings" json:"bookings"`
	Notes                 string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt             time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time `bson:"updatedAt" json:"updatedAt"`
}

// EarningsBucket is one granularity bucket of an earnings summary.
type EarningsBucket struct {
	Key        string  `json:"key"` // YYYY-MM-DD or YYYY-MM
	Commission float64 `json:"commission"`
	Bookings   int     `json:"bookings"`
}

// EarningsSummary aggregates the ledger over a rolling window.
type EarningsSummary struct {
	Period          string           `json:"period"`
	From            time.Time        `json:"from"`
	To              time.Time        `json:"to"`
	TotalCommission float64          `json:"totalCommission"`
	TotalBookings   int              `json:"totalBookings"`
	Buckets         []EarningsBucket `json:"buckets"`
}
