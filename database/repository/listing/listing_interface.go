package listingRepo

import (
	"fixly/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Directory sort keys for listings.
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortRating    = "rating"
	SortNewest    = "newest"
)

// SearchCriteria defines the directory filters for listings. Zero values
// disable the corresponding predicate; predicates combine with implicit AND.
type SearchCriteria struct {
	CategoryID string
	ProviderID string
	MinPrice   *float64
	MaxPrice   *float64
	Tags       []string
	Search     string // case-insensitive substring over title/details
	ActiveOnly bool
	Sort       string // one of the Sort* keys, default SortNewest
	Page       int
	Limit      int
}

// ListingRepository defines methods for listing data access. Lookups return
// (nil, nil) when no document matches.
type ListingRepository interface {
	// Create inserts a new listing.
	Create(listing *models.Listing) error
	// GetByID retrieves a listing by its unique ID.
	GetByID(id string) (*models.Listing, error)
	// Search runs the directory query, returning one page and the total match count.
	Search(criteria SearchCriteria) ([]models.Listing, int64, error)
	// ListByProvider retrieves all listings owned by a provider, newest first.
	ListByProvider(providerID string) ([]models.Listing, error)
	// IncrementBookingCount bumps a listing's booking counter by one.
	IncrementBookingCount(id string) error
	// UpdateWithDocument patches a listing document with the specified update document.
	UpdateWithDocument(id string, updateDoc bson.M) error
}
