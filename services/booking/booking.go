package booking

import (
	"fmt"
	"time"

	"fixly/models"
	"fixly/services/commission"
	"fixly/utils"
	"fixly/utils/apperr"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// allowedTransitions is the closed booking state machine. Statuses absent
// from the map are terminal.
var allowedTransitions = map[string][]string{
	models.BookingPending:   {models.BookingConfirmed, models.BookingCancelled, models.BookingRejected},
	models.BookingConfirmed: {models.BookingCompleted, models.BookingCancelled},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to string) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

func (s *DefaultBookingService) Create(actor models.Actor, req CreateRequest) (*models.Booking, error) {
	if req.ServiceDateTime.IsZero() {
		return nil, apperr.New(apperr.Validation, "serviceDateTime is required")
	}
	if len(req.SpecialInstructions) > 500 {
		return nil, apperr.New(apperr.Validation, "specialInstructions must be at most 500 characters")
	}

	listing, err := s.ListingRepo.GetByID(req.ListingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, apperr.Newf(apperr.NotFound, "listing %s not found", req.ListingID)
	}
	if !listing.IsActive {
		return nil, apperr.New(apperr.Unavailable, "listing is not available for booking")
	}

	// A failed provider lookup falls back to the default rate; it never
	// blocks the booking write.
	provider, err := s.ProviderRepo.GetByID(listing.ProviderID)
	if err != nil {
		utils.GetLogger().Warn("Failed to resolve provider for commission rate, using default",
			zap.String("providerId", listing.ProviderID), zap.Error(err))
		provider = nil
	}
	commissionAmount, providerEarning := commission.Split(listing.Price, commission.RateFor(provider))

	now := time.Now().UTC()
	booking := &models.Booking{
		ID:                  uuid.NewString(),
		CustomerID:          actor.ID,
		ProviderID:          listing.ProviderID,
		ListingID:           listing.ID,
		BookingDateTime:     now,
		ServiceDateTime:     req.ServiceDateTime.UTC(),
		Status:              models.BookingPending,
		SpecialInstructions: req.SpecialInstructions,
		TotalAmount:         listing.Price,
		CommissionAmount:    commissionAmount,
		ProviderEarning:     providerEarning,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.BookingRepo.Create(booking); err != nil {
		return nil, err
	}

	if err := s.ListingRepo.IncrementBookingCount(listing.ID); err != nil {
		utils.GetLogger().Warn("Failed to bump listing booking count",
			zap.String("listingId", listing.ID), zap.Error(err))
	}
	return booking, nil
}

func (s *DefaultBookingService) UpdateStatus(actor models.Actor, bookingID, target string) (*models.Booking, error) {
	switch target {
	case models.BookingConfirmed, models.BookingCompleted, models.BookingCancelled, models.BookingRejected:
	default:
		return nil, apperr.Newf(apperr.Validation, "unknown booking status %q", target)
	}

	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.Newf(apperr.NotFound, "booking %s not found", bookingID)
	}
	if err := s.authorize(actor, booking); err != nil {
		return nil, err
	}
	if !CanTransition(booking.Status, target) {
		return nil, apperr.Newf(apperr.Conflict, "cannot move booking from %s to %s", booking.Status, target)
	}

	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{"status": target, "updatedAt": now}}
	if err := s.BookingRepo.UpdateWithDocument(bookingID, update); err != nil {
		return nil, err
	}
	booking.Status = target
	booking.UpdatedAt = now
	return booking, nil
}

func (s *DefaultBookingService) GetByID(actor models.Actor, bookingID string) (*models.BookingDetail, error) {
	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.Newf(apperr.NotFound, "booking %s not found", bookingID)
	}
	if err := s.authorize(actor, booking); err != nil {
		return nil, err
	}
	details, err := s.assemble([]models.Booking{*booking})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (s *DefaultBookingService) ListForCustomer(actor models.Actor) ([]models.BookingDetail, error) {
	bookings, err := s.BookingRepo.ListByCustomer(actor.ID)
	if err != nil {
		return nil, err
	}
	return s.assemble(bookings)
}

func (s *DefaultBookingService) ListForProvider(actor models.Actor, status string) ([]models.BookingDetail, error) {
	provider, err := s.ProviderRepo.GetByUserID(actor.ID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, apperr.New(apperr.NotFound, "no provider profile for this account")
	}
	bookings, err := s.BookingRepo.ListByProvider(provider.ID, status)
	if err != nil {
		return nil, err
	}
	return s.assemble(bookings)
}

// authorize admits the booking's customer, the owning provider's user, and
// admins.
func (s *DefaultBookingService) authorize(actor models.Actor, booking *models.Booking) error {
	if actor.IsAdmin() || booking.CustomerID == actor.ID {
		return nil
	}
	provider, err := s.ProviderRepo.GetByID(booking.ProviderID)
	if err != nil {
		return err
	}
	if provider != nil && provider.UserID == actor.ID {
		return nil
	}
	return apperr.New(apperr.Forbidden, "you do not have access to this booking")
}

// assemble joins bookings with their listing and counterpart user summaries
// in batched lookups.
func (s *DefaultBookingService) assemble(bookings []models.Booking) ([]models.BookingDetail, error) {
	if len(bookings) == 0 {
		return []models.BookingDetail{}, nil
	}

	listingIDs := make([]string, 0, len(bookings))
	providerIDs := make([]string, 0, len(bookings))
	customerIDs := make([]string, 0, len(bookings))
	seenListing := map[string]bool{}
	seenProvider := map[string]bool{}
	seenCustomer := map[string]bool{}
	for _, b := range bookings {
		if !seenListing[b.ListingID] {
			seenListing[b.ListingID] = true
			listingIDs = append(listingIDs, b.ListingID)
		}
		if !seenProvider[b.ProviderID] {
			seenProvider[b.ProviderID] = true
			providerIDs = append(providerIDs, b.ProviderID)
		}
		if !seenCustomer[b.CustomerID] {
			seenCustomer[b.CustomerID] = true
			customerIDs = append(customerIDs, b.CustomerID)
		}
	}

	listings := map[string]*models.ListingSummary{}
	for _, id := range listingIDs {
		listing, err := s.ListingRepo.GetByID(id)
		if err != nil {
			return nil, fmt.Errorf("failed to assemble booking listings: %w", err)
		}
		if listing != nil {
			listings[id] = &models.ListingSummary{
				ID:    listing.ID,
				Title: listing.Title,
				Price: listing.Price,
				Image: listing.Image,
			}
		}
	}

	providers, err := s.ProviderRepo.GetByIDs(providerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble booking providers: %w", err)
	}
	providerUserByID := map[string]string{}
	providerUserIDs := make([]string, 0, len(providers))
	for _, p := range providers {
		providerUserByID[p.ID] = p.UserID
		providerUserIDs = append(providerUserIDs, p.UserID)
	}

	users, err := s.UserRepo.GetByIDs(append(customerIDs, providerUserIDs...))
	if err != nil {
		return nil, fmt.Errorf("failed to assemble booking users: %w", err)
	}
	userByID := map[string]*models.UserSummary{}
	for i := range users {
		userByID[users[i].ID] = users[i].Summary()
	}

	details := make([]models.BookingDetail, 0, len(bookings))
	for _, b := range bookings {
		detail := models.BookingDetail{
			Booking:  b,
			Listing:  listings[b.ListingID],
			Customer: userByID[b.CustomerID],
		}
		if userID, ok := providerUserByID[b.ProviderID]; ok {
			detail.Provider = userByID[userID]
		}
		details = append(details, detail)
	}
	return details, nil
}
