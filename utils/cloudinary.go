package utils

import (
	"fixly/config"
	"fixly/services/storage"
)

// Cloudinary initializes and returns a Cloudinary-based StorageService from
// the loaded application configuration.
func Cloudinary() (storage.StorageService, error) {
	cfg := config.AppConfig
	return storage.NewCloudinaryStorage(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
}
