package listing

import (
	"io"

	categoryRepo "fixly/database/repository/category"
	listingRepo "fixly/database/repository/listing"
	providerRepo "fixly/database/repository/provider"
	"fixly/models"
	"fixly/services/storage"
)

// CreateRequest carries the caller-supplied fields of a new listing.
type CreateRequest struct {
	CategoryID      string   `json:"categoryId" binding:"required"`
	Title           string   `json:"title" binding:"required"`
	Price           float64  `json:"price"`
	Details         string   `json:"details"`
	Duration        int      `json:"duration"`
	ServiceLocation string   `json:"serviceLocation"`
	Tags            []string `json:"tags"`
}

// SearchRequest is the public directory query for listings.
type SearchRequest struct {
	CategoryID string
	ProviderID string
	MinPrice   *float64
	MaxPrice   *float64
	Tags       []string
	Search     string
	Sort       string
	Page       int
	Limit      int
}

// SearchResult is one page of directory listings.
type SearchResult struct {
	Listings   []models.ListingView `json:"listings"`
	Pagination models.Pagination    `json:"pagination"`
}

// ListingService manages the service listing catalogue.
type ListingService interface {
	// Create publishes a new listing under the actor's provider profile.
	Create(actor models.Actor, req CreateRequest) (*models.Listing, error)
	// GetByID returns an assembled listing view.
	GetByID(actor models.Actor, id string) (*models.ListingView, error)
	// Search runs the directory query. Non-admin callers only see active listings.
	Search(actor models.Actor, req SearchRequest) (*SearchResult, error)
	// ListOwn returns all listings of the actor's provider profile.
	ListOwn(actor models.Actor) ([]models.Listing, error)
	// Update patches a listing owned by the actor.
	Update(actor models.Actor, id string, patch models.ListingPatch) (*models.Listing, error)
	// UploadImage stores a listing image and records its URL.
	UploadImage(actor models.Actor, id string, file io.Reader) (*models.Listing, error)
}

// DefaultListingService is the production implementation of ListingService.
type DefaultListingService struct {
	ListingRepo  listingRepo.ListingRepository
	ProviderRepo providerRepo.ProviderRepository
	CategoryRepo categoryRepo.CategoryRepository
	Storage      storage.StorageService
}
