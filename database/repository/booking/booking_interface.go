package bookingRepo

import (
	"fixly/models"

	"go.mongodb.org/mongo-driver/bson"
)

// BookingRepository defines methods for booking data access. Lookups return
// (nil, nil) when no document matches.
type BookingRepository interface {
	// Create inserts a new booking.
	Create(booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Booking, error)
	// ListByCustomer retrieves a customer's bookings, newest first.
	ListByCustomer(customerID string) ([]models.Booking, error)
	// ListByProvider retrieves a provider's bookings, newest first. An empty
	// status means all statuses.
	ListByProvider(providerID, status string) ([]models.Booking, error)
	// ListByListing retrieves all bookings placed against a listing.
	ListByListing(listingID string) ([]models.Booking, error)
	// ListCompletedUnpaid retrieves completed bookings whose commission has
	// not yet been rolled into the earnings ledger.
	ListCompletedUnpaid(limit int) ([]models.Booking, error)
	// UpdateWithDocument patches a booking document with the specified update document.
	UpdateWithDocument(id string, updateDoc bson.M) error
}
