package category

import (
	"context"
	"io"
	"strings"
	"time"

	categoryRepo "fixly/database/repository/category"
	listingRepo "fixly/database/repository/listing"
	"fixly/models"
	"fixly/services/storage"
	"fixly/utils"
	"fixly/utils/apperr"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CreateRequest carries the fields of a new service category.
type CreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CategoryService manages the service category taxonomy.
type CategoryService interface {
	// Create adds a new category. Names are unique.
	Create(req CreateRequest) (*models.Category, error)
	// GetByID returns a single category.
	GetByID(id string) (*models.Category, error)
	// List returns all categories, optionally restricted to active ones.
	List(activeOnly bool) ([]models.Category, error)
	// Update patches a category.
	Update(id string, patch models.CategoryPatch) (*models.Category, error)
	// Delete removes a category that has no listings under it.
	Delete(id string) error
	// UploadImage stores a category image and records its URL.
	UploadImage(id string, file io.Reader) (*models.Category, error)
}

// DefaultCategoryService is the production implementation of CategoryService.
type DefaultCategoryService struct {
	CategoryRepo categoryRepo.CategoryRepository
	ListingRepo  listingRepo.ListingRepository
	Storage      storage.StorageService
}

func (s *DefaultCategoryService) Create(req CreateRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.New(apperr.Validation, "name is required")
	}
	existing, err := s.CategoryRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Newf(apperr.Conflict, "category %q already exists", name)
	}

	now := time.Now().UTC()
	category := &models.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: req.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.CategoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *DefaultCategoryService) GetByID(id string) (*models.Category, error) {
	category, err := s.CategoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperr.Newf(apperr.NotFound, "category %s not found", id)
	}
	return category, nil
}

func (s *DefaultCategoryService) List(activeOnly bool) ([]models.Category, error) {
	return s.CategoryRepo.List(activeOnly)
}

func (s *DefaultCategoryService) Update(id string, patch models.CategoryPatch) (*models.Category, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperr.New(apperr.Validation, "name cannot be empty")
		}
		existing, err := s.CategoryRepo.GetByName(name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperr.Newf(apperr.Conflict, "category %q already exists", name)
		}
		set["name"] = name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.IsActive != nil {
		set["isActive"] = *patch.IsActive
	}

	if err := s.CategoryRepo.UpdateWithDocument(id, bson.M{"$set": set}); err != nil {
		return nil, err
	}
	return s.CategoryRepo.GetByID(id)
}

func (s *DefaultCategoryService) Delete(id string) error {
	category, err := s.GetByID(id)
	if err != nil {
		return err
	}

	listings, _, err := s.ListingRepo.Search(listingRepo.SearchCriteria{
		CategoryID: id, Page: 1, Limit: 1,
	})
	if err != nil {
		return err
	}
	if len(listings) > 0 {
		return apperr.New(apperr.Conflict, "category still has listings; deactivate it instead")
	}

	if err := s.CategoryRepo.Delete(id); err != nil {
		return err
	}
	if category.Image != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.Storage.Delete(ctx, category.Image, storage.FolderCategories); err != nil {
			utils.GetLogger().Warn("Failed to delete category image",
				zap.String("categoryId", id), zap.Error(err))
		}
	}
	return nil
}

func (s *DefaultCategoryService) UploadImage(id string, file io.Reader) (*models.Category, error) {
	category, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	url, err := s.Storage.Upload(ctx, file, storage.FolderCategories)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to upload category image", err)
	}
	if category.Image != "" {
		if err := s.Storage.Delete(ctx, category.Image, storage.FolderCategories); err != nil {
			utils.GetLogger().Warn("Failed to delete previous category image",
				zap.String("categoryId", id), zap.Error(err))
		}
	}

	update := bson.M{"$set": bson.M{"image": url, "updatedAt": time.Now().UTC()}}
	if err := s.CategoryRepo.UpdateWithDocument(id, update); err != nil {
		return nil, err
	}
	return s.CategoryRepo.GetByID(id)
}
