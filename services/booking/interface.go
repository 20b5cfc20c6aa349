package booking

import (
	"time"

	bookingRepo "fixly/database/repository/booking"
	listingRepo "fixly/database/repository/listing"
	providerRepo "fixly/database/repository/provider"
	userRepo "fixly/database/repository/user"
	"fixly/models"
)

// CreateRequest carries the caller-supplied fields of a new booking. Money
// fields are never accepted from the caller; they are derived server-side.
type CreateRequest struct {
	ListingID           string    `json:"listingId" binding:"required"`
	ServiceDateTime     time.Time `json:"serviceDateTime"`
	SpecialInstructions string    `json:"specialInstructions"`
}

// BookingService drives the booking lifecycle.
type BookingService interface {
	// Create places a Pending booking for the actor against a listing.
	Create(actor models.Actor, req CreateRequest) (*models.Booking, error)
	// UpdateStatus moves a booking along the lifecycle on behalf of the actor.
	UpdateStatus(actor models.Actor, bookingID, target string) (*models.Booking, error)
	// GetByID returns an assembled booking visible to the actor.
	GetByID(actor models.Actor, bookingID string) (*models.BookingDetail, error)
	// ListForCustomer returns the actor's own bookings, newest first.
	ListForCustomer(actor models.Actor) ([]models.BookingDetail, error)
	// ListForProvider returns the bookings of the actor's provider profile,
	// optionally filtered by status, newest first.
	ListForProvider(actor models.Actor, status string) ([]models.BookingDetail, error)
}

// DefaultBookingService is the production implementation of BookingService.
type DefaultBookingService struct {
	BookingRepo  bookingRepo.BookingRepository
	ListingRepo  listingRepo.ListingRepository
	ProviderRepo providerRepo.ProviderRepository
	UserRepo     userRepo.UserRepository
}
