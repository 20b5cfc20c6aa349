package storage

import (
	"context"
	"io"
)

// Cloudinary folders used by the platform.
const (
	FolderServices   = "fixly/services"
	FolderProfiles   = "fixly/profiles"
	FolderCategories = "fixly/categories"
)

// StorageService defines the contract for the image storage provider.
// Uploads return a stable URL; deletes are addressed by the stored URL,
// from which the provider-side identifier is derived.
type StorageService interface {
	Upload(ctx context.Context, file io.Reader, folder string) (string, error)
	Delete(ctx context.Context, fileURL, folder string) error
}
