package review

import (
	"strings"
	"time"

	bookingRepo "fixly/database/repository/booking"
	listingRepo "fixly/database/repository/listing"
	providerRepo "fixly/database/repository/provider"
	reviewRepo "fixly/database/repository/review"
	"fixly/models"
	"fixly/utils"
	"fixly/utils/apperr"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CreateRequest carries the caller-supplied fields of a new review.
type CreateRequest struct {
	BookingID string  `json:"bookingId" binding:"required"`
	Rating    float64 `json:"rating"`
	Text      string  `json:"text"`
}

// ReviewService accepts reviews and keeps the derived rating aggregates
// current.
type ReviewService interface {
	// Create stores a review for a completed booking of the actor and
	// refreshes the listing and provider rating aggregates.
	Create(actor models.Actor, req CreateRequest) (*models.Review, error)
	// GetForBooking returns the review left for a booking, if any.
	GetForBooking(bookingID string) (*models.Review, error)
}

// DefaultReviewService is the production implementation of ReviewService.
type DefaultReviewService struct {
	ReviewRepo   reviewRepo.ReviewRepository
	BookingRepo  bookingRepo.BookingRepository
	ListingRepo  listingRepo.ListingRepository
	ProviderRepo providerRepo.ProviderRepository
}

func (s *DefaultReviewService) Create(actor models.Actor, req CreateRequest) (*models.Review, error) {
	if req.Rating < models.MinReviewRating || req.Rating > models.MaxReviewRating {
		return nil, apperr.Newf(apperr.Validation, "rating must be between %d and %d",
			models.MinReviewRating, models.MaxReviewRating)
	}
	if len(req.Text) > models.MaxReviewTextLen {
		return nil, apperr.Newf(apperr.Validation, "review text must be at most %d characters",
			models.MaxReviewTextLen)
	}

	booking, err := s.BookingRepo.GetByID(req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.Newf(apperr.NotFound, "booking %s not found", req.BookingID)
	}
	if booking.CustomerID != actor.ID {
		return nil, apperr.New(apperr.Forbidden, "only the booking customer can leave a review")
	}
	if booking.Status != models.BookingCompleted {
		return nil, apperr.New(apperr.Unavailable, "only completed bookings can be reviewed")
	}

	review := &models.Review{
		ID:         uuid.NewString(),
		BookingID:  booking.ID,
		CustomerID: actor.ID,
		Rating:     req.Rating,
		Text:       strings.TrimSpace(req.Text),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.ReviewRepo.Create(review); err != nil {
		return nil, err
	}

	// Aggregate refresh failures never undo an accepted review.
	if err := s.refreshListingRating(booking.ListingID); err != nil {
		utils.GetLogger().Error("Failed to refresh listing rating",
			zap.String("listingId", booking.ListingID), zap.Error(err))
	}
	if err := s.refreshProviderRating(booking.ProviderID); err != nil {
		utils.GetLogger().Error("Failed to refresh provider rating",
			zap.String("providerId", booking.ProviderID), zap.Error(err))
	}
	return review, nil
}

func (s *DefaultReviewService) GetForBooking(bookingID string) (*models.Review, error) {
	review, err := s.ReviewRepo.GetByBookingID(bookingID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, apperr.Newf(apperr.NotFound, "no review for booking %s", bookingID)
	}
	return review, nil
}

// refreshListingRating recomputes a listing's mean rating and review count
// over all reviews of its bookings.
func (s *DefaultReviewService) refreshListingRating(listingID string) error {
	bookings, err := s.BookingRepo.ListByListing(listingID)
	if err != nil {
		return err
	}
	mean, count, err := s.meanOverBookings(bookings)
	if err != nil {
		return err
	}
	return s.ListingRepo.UpdateWithDocument(listingID, bson.M{
		"$set": bson.M{
			"averageRating": mean,
			"reviewCount":   count,
			"updatedAt":     time.Now().UTC(),
		},
	})
}

// refreshProviderRating recomputes a provider's mean rating over all reviews
// across every booking of the provider.
func (s *DefaultReviewService) refreshProviderRating(providerID string) error {
	bookings, err := s.BookingRepo.ListByProvider(providerID, "")
	if err != nil {
		return err
	}
	mean, _, err := s.meanOverBookings(bookings)
	if err != nil {
		return err
	}
	return s.ProviderRepo.UpdateWithDocument(providerID, bson.M{
		"$set": bson.M{
			"rating":    mean,
			"updatedAt": time.Now().UTC(),
		},
	})
}

// meanOverBookings returns sum/count of ratings across all reviews left for
// the given bookings, 0 when there are none.
func (s *DefaultReviewService) meanOverBookings(bookings []models.Booking) (float64, int, error) {
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}
	reviews, err := s.ReviewRepo.ListByBookingIDs(ids)
	if err != nil {
		return 0, 0, err
	}
	if len(reviews) == 0 {
		return 0, 0, nil
	}
	var sum float64
	for _, r := range reviews {
		sum += r.Rating
	}
	return sum / float64(len(reviews)), len(reviews), nil
}
