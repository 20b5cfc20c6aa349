package listing

import (
	"fmt"
	"sort"
	"testing"

	listingRepo "fixly/database/repository/listing"
	providerRepo "fixly/database/repository/provider"
	"fixly/models"
	"fixly/utils/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeListingRepo struct {
	listings map[string]*models.Listing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: map[string]*models.Listing{}}
}

func (f *fakeListingRepo) Create(l *models.Listing) error {
	cp := *l
	f.listings[l.ID] = &cp
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
	var matched []models.Listing
	for _, l := range f.listings {
		if criteria.ActiveOnly && !l.IsActive {
			continue
		}
		if criteria.CategoryID != "" && l.CategoryID != criteria.CategoryID {
			continue
		}
		if criteria.MinPrice != nil && l.Price < *criteria.MinPrice {
			continue
		}
		if criteria.MaxPrice != nil && l.Price > *criteria.MaxPrice {
			continue
		}
		matched = append(matched, *l)
	}
	switch criteria.Sort {
	case listingRepo.SortPriceAsc:
		sort.Slice(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case listingRepo.SortPriceDesc:
		sort.Slice(matched, func(i, j int) bool { return matched[i].Price > matched[j].Price })
	default:
		sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	}
	total := int64(len(matched))
	start := (criteria.Page - 1) * criteria.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + criteria.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeListingRepo) ListByProvider(providerID string) ([]models.Listing, error) {
	var out []models.Listing
	for _, l := range f.listings {
		if l.ProviderID == providerID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeListingRepo) IncrementBookingCount(id string) error { return nil }

func (f *fakeListingRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	l, ok := f.listings[id]
	if !ok {
		return fmt.Errorf("listing with id %s not found", id)
	}
	set := updateDoc["$set"].(bson.M)
	if v, ok := set["price"].(float64); ok {
		l.Price = v
	}
	if v, ok := set["commissionAmount"].(float64); ok {
		l.CommissionAmount = v
	}
	if v, ok := set["providerEarning"].(float64); ok {
		l.ProviderEarning = v
	}
	if v, ok := set["isActive"].(bool); ok {
		l.IsActive = v
	}
	if v, ok := set["title"].(string); ok {
		l.Title = v
	}
	if v, ok := set["image"].(string); ok {
		l.Image = v
	}
	return nil
}

type fakeProviderRepo struct {
	providers map[string]*models.Provider
}

func (f *fakeProviderRepo) Create(p *models.Provider) error { f.providers[p.ID] = p; return nil }

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

func (f *fakeProviderRepo) UpdateWithDocument(id string, updateDoc bson.M) error { return nil }

type fakeCategoryRepo struct {
	categories map[string]*models.Category
}

func (f *fakeCategoryRepo) Create(c *models.Category) error { f.categories[c.ID] = c; return nil }

func (f *fakeCategoryRepo) GetByID(id string) (*models.Category, error) {
	if c, ok := f.categories[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeCategoryRepo) GetByIDs(ids []string) ([]models.Category, error) {
	var out []models.Category
	for _, id := range ids {
		if c, ok := f.categories[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) GetByName(name string) (*models.Category, error) { return nil, nil }

func (f *fakeCategoryRepo) List(activeOnly bool) ([]models.Category, error) { return nil, nil }

func (f *fakeCategoryRepo) UpdateWithDocument(id string, updateDoc bson.M) error { return nil }

func (f *fakeCategoryRepo) Delete(id string) error { return nil }

var (
	providerActor = models.Actor{ID: "u-provider", Role: models.RoleServiceProvider}
	customerActor = models.Actor{ID: "u-customer", Role: models.RoleCustomer}
	adminActor    = models.Actor{ID: "u-admin", Role: models.RoleAdmin}
)

func newTestService() (*DefaultListingService, *fakeListingRepo) {
	repo := newFakeListingRepo()
	svc := &DefaultListingService{
		ListingRepo: repo,
		ProviderRepo: &fakeProviderRepo{providers: map[string]*models.Provider{
			"p1": {
				ID: "p1", UserID: "u-provider",
				VerificationStatus: models.VerificationVerified,
				CommissionRate:     10, Rating: 4.2,
			},
			"p2": {
				ID: "p2", UserID: "u-unverified",
				VerificationStatus: models.VerificationPending,
				CommissionRate:     10,
			},
		}},
		CategoryRepo: &fakeCategoryRepo{categories: map[string]*models.Category{
			"cat1": {ID: "cat1", Name: "Plumbing", IsActive: true},
			"cat2": {ID: "cat2", Name: "Old trade", IsActive: false},
		}},
	}
	return svc, repo
}

func TestCreateRequiresVerifiedProvider(t *testing.T) {
	svc, _ := newTestService()

	unverified := models.Actor{ID: "u-unverified", Role: models.RoleServiceProvider}
	_, err := svc.Create(unverified, CreateRequest{CategoryID: "cat1", Title: "Leak fix", Price: 100})
	assert.True(t, apperr.Is(err, apperr.Unavailable))

	_, err = svc.Create(providerActor, CreateRequest{CategoryID: "cat2", Title: "Leak fix", Price: 100})
	assert.True(t, apperr.Is(err, apperr.Validation))

	listing, err := svc.Create(providerActor, CreateRequest{CategoryID: "cat1", Title: "Leak fix", Price: 100})
	require.NoError(t, err)
	assert.True(t, listing.IsActive)
	assert.Equal(t, 10.0, listing.CommissionAmount)
	assert.Equal(t, 90.0, listing.ProviderEarning)
}

func TestUpdatePriceRecomputesCommission(t *testing.T) {
	svc, repo := newTestService()
	listing, err := svc.Create(providerActor, CreateRequest{CategoryID: "cat1", Title: "Leak fix", Price: 100})
	require.NoError(t, err)

	newPrice := 250.0
	updated, err := svc.Update(providerActor, listing.ID, models.ListingPatch{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 250.0, updated.Price)
	assert.Equal(t, 25.0, updated.CommissionAmount)
	assert.Equal(t, 225.0, updated.ProviderEarning)
	assert.Equal(t, updated.Price, updated.CommissionAmount+updated.ProviderEarning)

	// Only the owner or an admin may patch.
	_, err = svc.Update(customerActor, listing.ID, models.ListingPatch{Price: &newPrice})
	assert.True(t, apperr.Is(err, apperr.Forbidden))

	stored, _ := repo.GetByID(listing.ID)
	assert.Equal(t, 250.0, stored.Price)
}

func TestSearchPagination(t *testing.T) {
	svc, _ := newTestService()
	for i := 0; i < 25; i++ {
		_, err := svc.Create(providerActor, CreateRequest{
			CategoryID: "cat1",
			Title:      fmt.Sprintf("Job %02d", i),
			Price:      float64(100 + i),
		})
		require.NoError(t, err)
	}

	result, err := svc.Search(customerActor, SearchRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), result.Pagination.Total)
	assert.Equal(t, 3, result.Pagination.Pages)
	assert.Len(t, result.Listings, 10)

	result, err = svc.Search(customerActor, SearchRequest{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Pagination.Page)
	assert.Len(t, result.Listings, 5)

	result, err = svc.Search(customerActor, SearchRequest{Page: 4, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, result.Listings)
}

func TestSearchVisibility(t *testing.T) {
	svc, repo := newTestService()
	listing, err := svc.Create(providerActor, CreateRequest{CategoryID: "cat1", Title: "Leak fix", Price: 100})
	require.NoError(t, err)
	repo.listings[listing.ID].IsActive = false

	result, err := svc.Search(customerActor, SearchRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, result.Listings)

	result, err = svc.Search(adminActor, SearchRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, result.Listings, 1)

	// Hidden listings look absent to outsiders but not to their owner.
	_, err = svc.GetByID(customerActor, listing.ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))
	view, err := svc.GetByID(providerActor, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plumbing", view.CategoryName)
	assert.Equal(t, 4.2, view.ProviderRating)
}

func TestSearchPriceSort(t *testing.T) {
	svc, _ := newTestService()
	for _, price := range []float64{300, 100, 200} {
		_, err := svc.Create(providerActor, CreateRequest{CategoryID: "cat1", Title: "Job", Price: price})
		require.NoError(t, err)
	}

	result, err := svc.Search(customerActor, SearchRequest{Sort: listingRepo.SortPriceAsc, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, result.Listings, 3)
	assert.Equal(t, 100.0, result.Listings[0].Price)
	assert.Equal(t, 300.0, result.Listings[2].Price)

	_, err = svc.Search(customerActor, SearchRequest{
		MinPrice: ptr(500.0), MaxPrice: ptr(100.0), Page: 1, Limit: 10,
	})
	assert.True(t, apperr.Is(err, apperr.Validation))
}

func ptr[T any](v T) *T { return &v }
