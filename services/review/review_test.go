package review

import (
	"testing"

	listingRepo "fixly/database/repository/listing"
	providerRepo "fixly/database/repository/provider"
	"fixly/models"
	"fixly/utils/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeReviewRepo struct {
	byBooking map[string]*models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{byBooking: map[string]*models.Review{}}
}

func (f *fakeReviewRepo) Create(r *models.Review) error {
	if _, ok := f.byBooking[r.BookingID]; ok {
		return apperr.New(apperr.Conflict, "booking has already been reviewed")
	}
	cp := *r
	f.byBooking[r.BookingID] = &cp
	return nil
}

func (f *fakeReviewRepo) GetByBookingID(bookingID string) (*models.Review, error) {
	if r, ok := f.byBooking[bookingID]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeReviewRepo) ListByBookingIDs(bookingIDs []string) ([]models.Review, error) {
	var out []models.Review
	for _, id := range bookingIDs {
		if r, ok := f.byBooking[id]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
}

func (f *fakeBookingRepo) Create(b *models.Booking) error { f.bookings[b.ID] = b; return nil }

func (f *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	if b, ok := f.bookings[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeBookingRepo) ListByCustomer(customerID string) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) ListByProvider(providerID, status string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ProviderID == providerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByListing(listingID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ListingID == listingID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListCompletedUnpaid(limit int) ([]models.Booking, error) { return nil, nil }

func (f *fakeBookingRepo) UpdateWithDocument(id string, updateDoc bson.M) error { return nil }

type ratingSink struct {
	listingRating  float64
	listingCount   int
	providerRating float64
}

type fakeListingRepo struct{ sink *ratingSink }

func (f *fakeListingRepo) Create(l *models.Listing) error               { return nil }
func (f *fakeListingRepo) GetByID(id string) (*models.Listing, error)   { return nil, nil }
func (f *fakeListingRepo) IncrementBookingCount(id string) error        { return nil }
func (f *fakeListingRepo) ListByProvider(string) ([]models.Listing, error) { return nil, nil }

func (f *fakeListingRepo) Search(criteria listingRepo.SearchCriteria) ([]models.Listing, int64, error) {
	return nil, 0, nil
}

func (f *fakeListingRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	set := updateDoc["$set"].(bson.M)
	f.sink.listingRating = set["averageRating"].(float64)
	f.sink.listingCount = set["reviewCount"].(int)
	return nil
}

type fakeProviderRepo struct{ sink *ratingSink }

func (f *fakeProviderRepo) Create(p *models.Provider) error { return nil }
func (f *fakeProviderRepo) GetByID(id string) (*models.Provider, error) { return nil, nil }
func (f *fakeProviderRepo) GetByUserID(userID string) (*models.Provider, error) { return nil, nil }
func (f *fakeProviderRepo) GetByIDs(ids []string) ([]models.Provider, error) { return nil, nil }

func (f *fakeProviderRepo) Search(criteria providerRepo.SearchCriteria) ([]models.Provider, int64, error) {
	return nil, 0, nil
}

func (f *fakeProviderRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	set := updateDoc["$set"].(bson.M)
	f.sink.providerRating = set["rating"].(float64)
	return nil
}

func completedBooking(customerID, providerID, listingID string) *models.Booking {
	return &models.Booking{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		ProviderID: providerID,
		ListingID:  listingID,
		Status:     models.BookingCompleted,
	}
}

func newTestService(bookings ...*models.Booking) (*DefaultReviewService, *ratingSink) {
	byID := map[string]*models.Booking{}
	for _, b := range bookings {
		byID[b.ID] = b
	}
	sink := &ratingSink{}
	svc := &DefaultReviewService{
		ReviewRepo:   newFakeReviewRepo(),
		BookingRepo:  &fakeBookingRepo{bookings: byID},
		ListingRepo:  &fakeListingRepo{sink: sink},
		ProviderRepo: &fakeProviderRepo{sink: sink},
	}
	return svc, sink
}

func TestCreateRecomputesAggregates(t *testing.T) {
	b1 := completedBooking("c1", "p1", "l1")
	b2 := completedBooking("c2", "p1", "l1")
	svc, sink := newTestService(b1, b2)

	_, err := svc.Create(models.Actor{ID: "c1"}, CreateRequest{BookingID: b1.ID, Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, 5.0, sink.listingRating)
	assert.Equal(t, 1, sink.listingCount)
	assert.Equal(t, 5.0, sink.providerRating)

	_, err = svc.Create(models.Actor{ID: "c2"}, CreateRequest{BookingID: b2.ID, Rating: 2})
	require.NoError(t, err)
	assert.Equal(t, 3.5, sink.listingRating)
	assert.Equal(t, 2, sink.listingCount)
	assert.Equal(t, 3.5, sink.providerRating)
}

func TestCreateRejectsSecondReview(t *testing.T) {
	b := completedBooking("c1", "p1", "l1")
	svc, _ := newTestService(b)

	_, err := svc.Create(models.Actor{ID: "c1"}, CreateRequest{BookingID: b.ID, Rating: 4})
	require.NoError(t, err)

	_, err = svc.Create(models.Actor{ID: "c1"}, CreateRequest{BookingID: b.ID, Rating: 1})
	assert.True(t, apperr.Is(err, apperr.Conflict))
}

func TestCreateGuards(t *testing.T) {
	b := completedBooking("c1", "p1", "l1")
	pending := completedBooking("c1", "p1", "l1")
	pending.Status = models.BookingPending
	svc, _ := newTestService(b, pending)

	_, err := svc.Create(models.Actor{ID: "c1"}, CreateRequest{BookingID: b.ID, Rating: 0})
	assert.True(t, apperr.Is(err, apperr.Validation))

	_, err = svc.Create(models.Actor{ID: "c1"}, CreateRequest{BookingID: b.ID, Rating: 6})
	assert.True(t, apperr.Is(err, apperr.Validation))

	_, err = svc.Create(models.Actor{ID: "c1"}, CreateRequest{BookingID: "missing", Rating: 4})
	assert.True(t, apperr.Is(err, apperr.NotFound))

	_, err = svc.Create(models.Actor{ID: "someone-else"}, CreateRequest{BookingID: b.ID, Rating: 4})
	assert.True(t, apperr.Is(err, apperr.Forbidden))

	_, err = svc.Create(models.Actor{ID: "c1"}, CreateRequest{BookingID: pending.ID, Rating: 4})
	assert.True(t, apperr.Is(err, apperr.Unavailable))
}
