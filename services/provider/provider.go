package provider

import (
	"strings"
	"time"

	providerRepo "fixly/database/repository/provider"
	"fixly/models"
	"fixly/utils"
	"fixly/utils/apperr"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (s *DefaultProviderService) Register(req RegisterRequest) (*models.ProviderView, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.UserRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.New(apperr.Conflict, "an account with this email already exists")
	}
	if err := s.validateCategories(req.CategoryIDs); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to hash password", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Address:      req.Address,
		Role:         models.RoleServiceProvider,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	availability := req.Availability
	if availability == "" {
		availability = models.AvailabilityAllDays
	}
	profile := &models.Provider{
		ID:                 uuid.NewString(),
		UserID:             user.ID,
		CategoryIDs:        req.CategoryIDs,
		Description:        req.Description,
		Availability:       availability,
		VerificationStatus: models.VerificationPending,
		CommissionRate:     models.DefaultCommissionRate,
		Location:           models.NewGeoPoint(req.Latitude, req.Longitude),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if req.BankDetails != nil {
		profile.BankDetails = *req.BankDetails
	}
	if err := s.ProviderRepo.Create(profile); err != nil {
		// Roll the orphaned account back so the email can be reused.
		if delErr := s.UserRepo.Delete(user.ID); delErr != nil {
			utils.GetLogger().Error("Failed to roll back user after provider create failure",
				zap.String("userId", user.ID), zap.Error(delErr))
		}
		return nil, err
	}
	return s.assembleOne(profile)
}

func (s *DefaultProviderService) GetProfile(actor models.Actor) (*models.ProviderView, error) {
	profile, err := s.ProviderRepo.GetByUserID(actor.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperr.New(apperr.NotFound, "no provider profile for this account")
	}
	return s.assembleOne(profile)
}

func (s *DefaultProviderService) GetByID(id string) (*models.ProviderView, error) {
	profile, err := s.ProviderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperr.Newf(apperr.NotFound, "provider %s not found", id)
	}
	return s.assembleOne(profile)
}

func (s *DefaultProviderService) Update(actor models.Actor, patch models.ProviderPatch) (*models.ProviderView, error) {
	profile, err := s.ProviderRepo.GetByUserID(actor.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperr.New(apperr.NotFound, "no provider profile for this account")
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.CategoryIDs != nil {
		if err := s.validateCategories(patch.CategoryIDs); err != nil {
			return nil, err
		}
		set["categoryIds"] = patch.CategoryIDs
	}
	if patch.Availability != nil {
		switch *patch.Availability {
		case models.AvailabilityWeekdays, models.AvailabilityWeekends,
			models.AvailabilityAllDays, models.AvailabilityCustom:
		default:
			return nil, apperr.Newf(apperr.Validation, "unknown availability %q", *patch.Availability)
		}
		set["availability"] = *patch.Availability
	}
	if patch.AvailabilityDetails != nil {
		set["availabilityDetails"] = patch.AvailabilityDetails
	}
	if patch.BankDetails != nil {
		set["bankDetails"] = *patch.BankDetails
	}

	if err := s.ProviderRepo.UpdateWithDocument(profile.ID, bson.M{"$set": set}); err != nil {
		return nil, err
	}
	updated, err := s.ProviderRepo.GetByID(profile.ID)
	if err != nil {
		return nil, err
	}
	return s.assembleOne(updated)
}

func (s *DefaultProviderService) UpdateLocation(actor models.Actor, latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return apperr.New(apperr.Validation, "latitude/longitude out of range")
	}
	profile, err := s.ProviderRepo.GetByUserID(actor.ID)
	if err != nil {
		return err
	}
	if profile == nil {
		return apperr.New(apperr.NotFound, "no provider profile for this account")
	}
	return s.ProviderRepo.UpdateWithDocument(profile.ID, bson.M{"$set": bson.M{
		"location":  models.NewGeoPoint(latitude, longitude),
		"updatedAt": time.Now().UTC(),
	}})
}

func (s *DefaultProviderService) Search(actor models.Actor, req SearchRequest) (*SearchResult, error) {
	page, limit := req.Page, req.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = utils.DefaultPageSize
	}

	status := models.VerificationVerified
	if actor.IsAdmin() {
		status = req.VerificationStatus
		if status == "" || status == "all" {
			status = ""
		}
	}

	criteria := providerRepo.SearchCriteria{
		CategoryID:         req.CategoryID,
		MinRating:          req.MinRating,
		Availability:       req.Availability,
		VerificationStatus: status,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		RadiusKm:           req.RadiusKm,
		Sort:               req.Sort,
		Page:               page,
		Limit:              limit,
	}
	if q := strings.TrimSpace(req.Search); q != "" {
		ids, err := s.UserRepo.SearchIDsByNameOrEmail(q, models.RoleServiceProvider)
		if err != nil {
			return nil, err
		}
		if ids == nil {
			ids = []string{}
		}
		criteria.UserIDs = ids
	}

	providers, total, err := s.ProviderRepo.Search(criteria)
	if err != nil {
		return nil, err
	}
	views, err := s.assemble(providers)
	if err != nil {
		return nil, err
	}
	return &SearchResult{
		Providers:  views,
		Pagination: models.NewPagination(total, page, limit),
	}, nil
}

func (s *DefaultProviderService) SetVerificationStatus(id, status string) (*models.ProviderView, error) {
	switch status {
	case models.VerificationPending, models.VerificationVerified, models.VerificationRejected:
	default:
		return nil, apperr.Newf(apperr.Validation, "unknown verification status %q", status)
	}
	profile, err := s.ProviderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperr.Newf(apperr.NotFound, "provider %s not found", id)
	}
	err = s.ProviderRepo.UpdateWithDocument(id, bson.M{"$set": bson.M{
		"verificationStatus": status,
		"updatedAt":          time.Now().UTC(),
	}})
	if err != nil {
		return nil, err
	}
	profile.VerificationStatus = status
	return s.assembleOne(profile)
}

func (s *DefaultProviderService) validateCategories(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	categories, err := s.CategoryRepo.GetByIDs(ids)
	if err != nil {
		return err
	}
	found := map[string]bool{}
	for _, c := range categories {
		found[c.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return apperr.Newf(apperr.Validation, "category %s does not exist", id)
		}
	}
	return nil
}

func (s *DefaultProviderService) assembleOne(p *models.Provider) (*models.ProviderView, error) {
	views, err := s.assemble([]models.Provider{*p})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// assemble joins providers with their owning user summaries and category names.
func (s *DefaultProviderService) assemble(providers []models.Provider) ([]models.ProviderView, error) {
	if len(providers) == 0 {
		return []models.ProviderView{}, nil
	}

	userIDs := make([]string, 0, len(providers))
	categoryIDs := []string{}
	seenCategory := map[string]bool{}
	for _, p := range providers {
		userIDs = append(userIDs, p.UserID)
		for _, id := range p.CategoryIDs {
			if !seenCategory[id] {
				seenCategory[id] = true
				categoryIDs = append(categoryIDs, id)
			}
		}
	}

	users, err := s.UserRepo.GetByIDs(userIDs)
	if err != nil {
		return nil, err
	}
	userByID := map[string]*models.UserSummary{}
	for i := range users {
		userByID[users[i].ID] = users[i].Summary()
	}

	categories, err := s.CategoryRepo.GetByIDs(categoryIDs)
	if err != nil {
		return nil, err
	}
	categoryNames := map[string]string{}
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	views := make([]models.ProviderView, 0, len(providers))
	for _, p := range providers {
		view := models.ProviderView{Provider: p, User: userByID[p.UserID]}
		for _, id := range p.CategoryIDs {
			if name, ok := categoryNames[id]; ok {
				view.CategoryNames = append(view.CategoryNames, name)
			}
		}
		views = append(views, view)
	}
	return views, nil
}
