package provider

import (
	categoryRepo "fixly/database/repository/category"
	providerRepo "fixly/database/repository/provider"
	userRepo "fixly/database/repository/user"
	"fixly/models"
)

// RegisterRequest carries the combined account and profile fields of a new
// provider signup.
type RegisterRequest struct {
	FirstName    string              `json:"firstName" binding:"required"`
	LastName     string              `json:"lastName" binding:"required"`
	Email        string              `json:"email" binding:"required,email"`
	Password     string              `json:"password" binding:"required,min=8"`
	Phone        string              `json:"phone"`
	Address      string              `json:"address"`
	Description  string              `json:"description"`
	CategoryIDs  []string            `json:"categoryIds"`
	Availability string              `json:"availability"`
	BankDetails  *models.BankDetails `json:"bankDetails"`
	Latitude     float64             `json:"latitude"`
	Longitude    float64             `json:"longitude"`
}

// SearchRequest is the public directory query for providers.
type SearchRequest struct {
	CategoryID         string
	MinRating          float64
	Availability       string
	Search             string // name/email substring over the owning user
	VerificationStatus string // admin only; "all" disables the filter
	Latitude           float64
	Longitude          float64
	RadiusKm           float64
	Sort               string
	Page               int
	Limit              int
}

// SearchResult is one page of directory providers.
type SearchResult struct {
	Providers  []models.ProviderView `json:"providers"`
	Pagination models.Pagination     `json:"pagination"`
}

// ProviderService manages provider profiles and the provider directory.
type ProviderService interface {
	// Register creates the user account and its Pending provider profile in
	// one flow.
	Register(req RegisterRequest) (*models.ProviderView, error)
	// GetProfile returns the actor's own assembled profile.
	GetProfile(actor models.Actor) (*models.ProviderView, error)
	// GetByID returns a provider's assembled public view.
	GetByID(id string) (*models.ProviderView, error)
	// Update patches the actor's own profile.
	Update(actor models.Actor, patch models.ProviderPatch) (*models.ProviderView, error)
	// UpdateLocation moves the actor's service point.
	UpdateLocation(actor models.Actor, latitude, longitude float64) error
	// Search runs the directory query. verificationStatus filtering is
	// admin-only; the public always sees Verified providers.
	Search(actor models.Actor, req SearchRequest) (*SearchResult, error)
	// SetVerificationStatus moves a provider through the verification flow.
	SetVerificationStatus(id, status string) (*models.ProviderView, error)
}

// DefaultProviderService is the production implementation of ProviderService.
type DefaultProviderService struct {
	ProviderRepo providerRepo.ProviderRepository
	UserRepo     userRepo.UserRepository
	CategoryRepo categoryRepo.CategoryRepository
}
