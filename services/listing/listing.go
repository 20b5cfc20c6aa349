package listing

import (
	"context"
	"io"
	"strings"
	"time"

	listingRepo "fixly/database/repository/listing"
	"fixly/models"
	"fixly/services/commission"
	"fixly/services/storage"
	"fixly/utils"
	"fixly/utils/apperr"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func (s *DefaultListingService) Create(actor models.Actor, req CreateRequest) (*models.Listing, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperr.New(apperr.Validation, "title is required")
	}
	if req.Price <= 0 {
		return nil, apperr.New(apperr.Validation, "price must be greater than zero")
	}

	provider, err := s.ProviderRepo.GetByUserID(actor.ID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, apperr.New(apperr.NotFound, "no provider profile for this account")
	}
	if provider.VerificationStatus != models.VerificationVerified {
		return nil, apperr.New(apperr.Unavailable, "provider must be verified before publishing listings")
	}

	category, err := s.CategoryRepo.GetByID(req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil || !category.IsActive {
		return nil, apperr.Newf(apperr.Validation, "category %s does not exist or is inactive", req.CategoryID)
	}

	commissionAmount, providerEarning := commission.Split(req.Price, commission.RateFor(provider))
	now := time.Now().UTC()
	listing := &models.Listing{
		ID:               uuid.NewString(),
		ProviderID:       provider.ID,
		CategoryID:       category.ID,
		Title:            strings.TrimSpace(req.Title),
		Price:            req.Price,
		Details:          req.Details,
		IsActive:         true,
		CommissionAmount: commissionAmount,
		ProviderEarning:  providerEarning,
		Duration:         req.Duration,
		ServiceLocation:  req.ServiceLocation,
		Tags:             req.Tags,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.ListingRepo.Create(listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *DefaultListingService) GetByID(actor models.Actor, id string) (*models.ListingView, error) {
	listing, err := s.ListingRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, apperr.Newf(apperr.NotFound, "listing %s not found", id)
	}
	if !listing.IsActive && !actor.IsAdmin() {
		owner, err := s.ProviderRepo.GetByID(listing.ProviderID)
		if err != nil {
			return nil, err
		}
		if owner == nil || owner.UserID != actor.ID {
			return nil, apperr.Newf(apperr.NotFound, "listing %s not found", id)
		}
	}
	views, err := s.assemble([]models.Listing{*listing})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *DefaultListingService) Search(actor models.Actor, req SearchRequest) (*SearchResult, error) {
	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		return nil, apperr.New(apperr.Validation, "minPrice cannot exceed maxPrice")
	}

	page, limit := req.Page, req.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = utils.DefaultPageSize
	}

	criteria := listingRepo.SearchCriteria{
		CategoryID: req.CategoryID,
		ProviderID: req.ProviderID,
		MinPrice:   req.MinPrice,
		MaxPrice:   req.MaxPrice,
		Tags:       req.Tags,
		Search:     req.Search,
		ActiveOnly: !actor.IsAdmin(),
		Sort:       req.Sort,
		Page:       page,
		Limit:      limit,
	}
	listings, total, err := s.ListingRepo.Search(criteria)
	if err != nil {
		return nil, err
	}
	views, err := s.assemble(listings)
	if err != nil {
		return nil, err
	}
	return &SearchResult{
		Listings:   views,
		Pagination: models.NewPagination(total, page, limit),
	}, nil
}

func (s *DefaultListingService) ListOwn(actor models.Actor) ([]models.Listing, error) {
	provider, err := s.ProviderRepo.GetByUserID(actor.ID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, apperr.New(apperr.NotFound, "no provider profile for this account")
	}
	return s.ListingRepo.ListByProvider(provider.ID)
}

func (s *DefaultListingService) Update(actor models.Actor, id string, patch models.ListingPatch) (*models.Listing, error) {
	listing, provider, err := s.getOwned(actor, id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, apperr.New(apperr.Validation, "title cannot be empty")
		}
		set["title"] = strings.TrimSpace(*patch.Title)
	}
	if patch.Details != nil {
		set["details"] = *patch.Details
	}
	if patch.Duration != nil {
		set["duration"] = *patch.Duration
	}
	if patch.ServiceLocation != nil {
		set["serviceLocation"] = *patch.ServiceLocation
	}
	if patch.Tags != nil {
		set["tags"] = patch.Tags
	}
	if patch.IsActive != nil {
		set["isActive"] = *patch.IsActive
	}
	if patch.Price != nil {
		if *patch.Price <= 0 {
			return nil, apperr.New(apperr.Validation, "price must be greater than zero")
		}
		commissionAmount, providerEarning := commission.Split(*patch.Price, commission.RateFor(provider))
		set["price"] = *patch.Price
		set["commissionAmount"] = commissionAmount
		set["providerEarning"] = providerEarning
	}

	if err := s.ListingRepo.UpdateWithDocument(listing.ID, bson.M{"$set": set}); err != nil {
		return nil, err
	}
	return s.ListingRepo.GetByID(listing.ID)
}

func (s *DefaultListingService) UploadImage(actor models.Actor, id string, file io.Reader) (*models.Listing, error) {
	listing, _, err := s.getOwned(actor, id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	url, err := s.Storage.Upload(ctx, file, storage.FolderServices)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to upload listing image", err)
	}

	if listing.Image != "" {
		if err := s.Storage.Delete(ctx, listing.Image, storage.FolderServices); err != nil {
			utils.GetLogger().Warn("Failed to delete previous listing image",
				zap.String("listingId", listing.ID), zap.Error(err))
		}
	}

	update := bson.M{"$set": bson.M{"image": url, "updatedAt": time.Now().UTC()}}
	if err := s.ListingRepo.UpdateWithDocument(listing.ID, update); err != nil {
		return nil, err
	}
	return s.ListingRepo.GetByID(listing.ID)
}

// getOwned loads a listing and verifies the actor owns it or is an admin.
func (s *DefaultListingService) getOwned(actor models.Actor, id string) (*models.Listing, *models.Provider, error) {
	listing, err := s.ListingRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if listing == nil {
		return nil, nil, apperr.Newf(apperr.NotFound, "listing %s not found", id)
	}
	provider, err := s.ProviderRepo.GetByID(listing.ProviderID)
	if err != nil {
		return nil, nil, err
	}
	if !actor.IsAdmin() {
		if provider == nil || provider.UserID != actor.ID {
			return nil, nil, apperr.New(apperr.Forbidden, "you do not own this listing")
		}
	}
	return listing, provider, nil
}

// assemble joins listings with their category names and provider ratings.
func (s *DefaultListingService) assemble(listings []models.Listing) ([]models.ListingView, error) {
	if len(listings) == 0 {
		return []models.ListingView{}, nil
	}

	categoryIDs := make([]string, 0, len(listings))
	providerIDs := make([]string, 0, len(listings))
	seenCategory := map[string]bool{}
	seenProvider := map[string]bool{}
	for _, l := range listings {
		if !seenCategory[l.CategoryID] {
			seenCategory[l.CategoryID] = true
			categoryIDs = append(categoryIDs, l.CategoryID)
		}
		if !seenProvider[l.ProviderID] {
			seenProvider[l.ProviderID] = true
			providerIDs = append(providerIDs, l.ProviderID)
		}
	}

	categories, err := s.CategoryRepo.GetByIDs(categoryIDs)
	if err != nil {
		return nil, err
	}
	categoryNames := map[string]string{}
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	providers, err := s.ProviderRepo.GetByIDs(providerIDs)
	if err != nil {
		return nil, err
	}
	providerRatings := map[string]float64{}
	for _, p := range providers {
		providerRatings[p.ID] = p.Rating
	}

	views := make([]models.ListingView, 0, len(listings))
	for _, l := range listings {
		views = append(views, models.ListingView{
			Listing:        l,
			CategoryName:   categoryNames[l.CategoryID],
			ProviderRating: providerRatings[l.ProviderID],
		})
	}
	return views, nil
}
