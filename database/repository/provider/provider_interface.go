package providerRepo

import (
	"fixly/models"

	"go.mongodb.org/mongo-driver/bson"
)

// SearchCriteria defines the directory filters for providers. Zero values
// disable the corresponding predicate; predicates combine with implicit AND.
type SearchCriteria struct {
	CategoryID         string
	MinRating          float64
	Availability       string
	VerificationStatus string   // "" disables the status filter
	UserIDs            []string // restrict to these owning users (name/email search join)
	Latitude           float64
	Longitude          float64
	RadiusKm           float64 // > 0 enables the geo predicate
	Sort               string  // "rating" (default) or "newest"
	Page               int
	Limit              int
}

// ProviderRepository defines methods for provider data access. Lookups
// return (nil, nil) when no document matches.
type ProviderRepository interface {
	// Create inserts a new provider profile.
	Create(provider *models.Provider) error
	// GetByID retrieves a provider by its unique ID.
	GetByID(id string) (*models.Provider, error)
	// GetByUserID retrieves the provider profile owned by the given user.
	GetByUserID(userID string) (*models.Provider, error)
	// GetByIDs retrieves the providers whose IDs appear in ids.
	GetByIDs(ids []string) ([]models.Provider, error)
	// Search runs the directory query, returning one page and the total match count.
	Search(criteria SearchCriteria) ([]models.Provider, int64, error)
	// UpdateWithDocument patches a provider document with the specified update document.
	UpdateWithDocument(id string, updateDoc bson.M) error
}
