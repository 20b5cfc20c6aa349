package booking

import (
	"errors"
	"testing"
	"time"

	listingRepo "fixly/database/repository/listing"
	providerRepo "fixly/database/repository/provider"
	userRepo "fixly/database/repository/user"
	"fixly/models"
	"fixly/utils/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[string]*models.Booking{}}
}

func (f *fakeBookingRepo) Create(b *models.Booking) error {
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	if b, ok := f.bookings[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeBookingRepo) ListByCustomer(customerID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByProvider(providerID, status string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ProviderID == providerID && (status == "" || b.Status == status) {
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

func (f *fakeBookingRepo) ListCompletedUnpaid(limit int) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Status == models.BookingCompleted && !b.CommissionPaid {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	b := f.bookings[id]
	if set, ok := updateDoc["$set"].(bson.M); ok {
		if status, ok := set["status"].(string); ok {
			b.Status = status
		}
		if paid, ok := set["commissionPaid"].(bool); ok {
			b.CommissionPaid = paid
		}
	}
	return nil
}

type fakeListingRepo struct {
	listings   map[string]*models.Listing
	bookingInc map[string]int
}

func newFakeListingRepo(listings ...*models.Listing) *fakeListingRepo {
	f := &fakeListingRepo{listings: map[string]*models.Listing{}, bookingInc: map[string]int{}}
	for _, l := range listings {
		f.listings[l.ID] = l
	}
	return f
}

func (f *fakeListingRepo) Create(l *models.Listing) error {
	f.listings[l.ID] = l
	return nil
}

func (f *fakeListingRepo) GetByID(id string) (*models.Listing, error) {
	if l, ok := f.listings[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeListingRepo) Search(criteria listingRepo.SearchCriteria) ([]models.Listing, int64, error) {
	return nil, 0, nil
}

func (f *fakeListingRepo) ListByProvider(providerID string) ([]models.Listing, error) {
	return nil, nil
}

func (f *fakeListingRepo) IncrementBookingCount(id string) error {
	f.bookingInc[id]++
	return nil
}

func (f *fakeListingRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	return nil
}

type fakeProviderRepo struct {
	providers map[string]*models.Provider
}

func newFakeProviderRepo(providers ...*models.Provider) *fakeProviderRepo {
	f := &fakeProviderRepo{providers: map[string]*models.Provider{}}
	for _, p := range providers {
		f.providers[p.ID] = p
	}
	return f
}

func (f *fakeProviderRepo) Create(p *models.Provider) error {
	f.providers[p.ID] = p
	return nil
}

func (f *fakeProviderRepo) GetByID(id string) (*models.Provider, error) {
	if p, ok := f.providers[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeProviderRepo) GetByUserID(userID string) (*models.Provider, error) {
	for _, p := range f.providers {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProviderRepo) GetByIDs(ids []string) ([]models.Provider, error) {
	var out []models.Provider
	for _, id := range ids {
		if p, ok := f.providers[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProviderRepo) Search(criteria providerRepo.SearchCriteria) ([]models.Provider, int64, error) {
	return nil, 0, nil
}

func (f *fakeProviderRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	return nil
}

// erroringProviderRepo fails every lookup.
type erroringProviderRepo struct{ *fakeProviderRepo }

func (f erroringProviderRepo) GetByID(id string) (*models.Provider, error) {
	return nil, errors.New("provider lookup failed")
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	f := &fakeUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(u *models.User) error { f.users[u.ID] = u; return nil }

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByIDs(ids []string) ([]models.User, error) {
	var out []models.User
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetByResetTokenHash(hash string) (*models.User, error) { return nil, nil }

func (f *fakeUserRepo) SearchIDsByNameOrEmail(query, role string) ([]string, error) {
	return nil, nil
}

func (f *fakeUserRepo) List(filter userRepo.ListFilter) ([]models.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) CountActiveAdmins() (int64, error) { return 1, nil }

func (f *fakeUserRepo) UpdateWithDocument(id string, updateDoc bson.M) error { return nil }

func (f *fakeUserRepo) Delete(id string) error { delete(f.users, id); return nil }

func newTestService() (*DefaultBookingService, *fakeBookingRepo, *fakeListingRepo) {
	listing := &models.Listing{
		ID:         "l1",
		ProviderID: "p1",
		Title:      "Pipe repair",
		Price:      2000,
		IsActive:   true,
	}
	bookingRepo := newFakeBookingRepo()
	listingRepo := newFakeListingRepo(listing)
	providerRepo := newFakeProviderRepo(&models.Provider{ID: "p1", UserID: "u-provider", CommissionRate: 10})
	userRepo := newFakeUserRepo(
		&models.User{ID: "u-customer", FirstName: "Ada", Role: models.RoleCustomer},
		&models.User{ID: "u-provider", FirstName: "Ben", Role: models.RoleServiceProvider},
	)
	svc := &DefaultBookingService{
		BookingRepo:  bookingRepo,
		ListingRepo:  listingRepo,
		ProviderRepo: providerRepo,
		UserRepo:     userRepo,
	}
	return svc, bookingRepo, listingRepo
}

var customer = models.Actor{ID: "u-customer", Role: models.RoleCustomer}
var providerUser = models.Actor{ID: "u-provider", Role: models.RoleServiceProvider}
var admin = models.Actor{ID: "u-admin", Role: models.RoleAdmin}
var stranger = models.Actor{ID: "u-nobody", Role: models.RoleCustomer}

func TestCreateSnapshotsAmounts(t *testing.T) {
	svc, repo, listingRepo := newTestService()

	booking, err := svc.Create(customer, CreateRequest{
		ListingID:       "l1",
		ServiceDateTime: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Equal(t, 2000.0, booking.TotalAmount)
	assert.Equal(t, 200.0, booking.CommissionAmount)
	assert.Equal(t, 1800.0, booking.ProviderEarning)
	assert.Equal(t, "p1", booking.ProviderID)
	assert.Equal(t, 1, listingRepo.bookingInc["l1"])

	// Later price edits must not touch the snapshot.
	listingRepo.listings["l1"].Price = 9999
	stored, err := repo.GetByID(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, stored.TotalAmount)
}

func TestCreateDefaultsRateOnProviderLookupFailure(t *testing.T) {
	svc, repo, _ := newTestService()
	svc.ProviderRepo = erroringProviderRepo{newFakeProviderRepo()}

	booking, err := svc.Create(customer, CreateRequest{
		ListingID:       "l1",
		ServiceDateTime: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	// The default 10% rate applies when the provider cannot be resolved.
	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Equal(t, 200.0, booking.CommissionAmount)
	assert.Equal(t, 1800.0, booking.ProviderEarning)
	assert.Len(t, repo.bookings, 1)
}

func TestCreateValidation(t *testing.T) {
	svc, repo, _ := newTestService()

	_, err := svc.Create(customer, CreateRequest{ListingID: "l1"})
	assert.True(t, apperr.Is(err, apperr.Validation))

	_, err = svc.Create(customer, CreateRequest{ListingID: "missing", ServiceDateTime: time.Now()})
	assert.True(t, apperr.Is(err, apperr.NotFound))

	assert.Empty(t, repo.bookings)
}

func TestCreateInactiveListing(t *testing.T) {
	svc, repo, listingRepo := newTestService()
	listingRepo.listings["l1"].IsActive = false

	_, err := svc.Create(customer, CreateRequest{ListingID: "l1", ServiceDateTime: time.Now()})
	assert.True(t, apperr.Is(err, apperr.Unavailable))
	assert.Empty(t, repo.bookings)
	assert.Zero(t, listingRepo.bookingInc["l1"])
}

func TestTransitionTable(t *testing.T) {
	all := []string{
		models.BookingPending, models.BookingConfirmed, models.BookingCompleted,
		models.BookingCancelled, models.BookingRejected,
	}
	allowed := map[[2]string]bool{
		{models.BookingPending, models.BookingConfirmed}:   true,
		{models.BookingPending, models.BookingCancelled}:   true,
		{models.BookingPending, models.BookingRejected}:    true,
		{models.BookingConfirmed, models.BookingCompleted}: true,
		{models.BookingConfirmed, models.BookingCancelled}: true,
	}
	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]string{from, to}], CanTransition(from, to),
				"%s -> %s", from, to)
		}
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, _, _ := newTestService()
	booking, err := svc.Create(customer, CreateRequest{ListingID: "l1", ServiceDateTime: time.Now()})
	require.NoError(t, err)

	// Provider confirms, then completes.
	updated, err := svc.UpdateStatus(providerUser, booking.ID, models.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, updated.Status)

	updated, err = svc.UpdateStatus(admin, booking.ID, models.BookingCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, updated.Status)

	// Completed is terminal.
	_, err = svc.UpdateStatus(customer, booking.ID, models.BookingCancelled)
	assert.True(t, apperr.Is(err, apperr.Conflict))
}

func TestUpdateStatusForbidden(t *testing.T) {
	svc, _, _ := newTestService()
	booking, err := svc.Create(customer, CreateRequest{ListingID: "l1", ServiceDateTime: time.Now()})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(stranger, booking.ID, models.BookingCancelled)
	assert.True(t, apperr.Is(err, apperr.Forbidden))

	_, err = svc.UpdateStatus(customer, "missing", models.BookingCancelled)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestGetByIDAssemblesDetail(t *testing.T) {
	svc, _, _ := newTestService()
	booking, err := svc.Create(customer, CreateRequest{ListingID: "l1", ServiceDateTime: time.Now()})
	require.NoError(t, err)

	detail, err := svc.GetByID(customer, booking.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Listing)
	assert.Equal(t, "Pipe repair", detail.Listing.Title)
	require.NotNil(t, detail.Customer)
	assert.Equal(t, "Ada", detail.Customer.FirstName)
	require.NotNil(t, detail.Provider)
	assert.Equal(t, "Ben", detail.Provider.FirstName)

	_, err = svc.GetByID(stranger, booking.ID)
	assert.True(t, apperr.Is(err, apperr.Forbidden))
}
