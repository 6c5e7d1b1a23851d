package utils

import (
	"fmt"

	"digibook/config"
	"digibook/services/storage"

	"github.com/cloudinary/cloudinary-go/v2"
)

// Cloudinary initializes and returns a Cloudinary-based StorageService from the app config.
func Cloudinary() (*storage.CloudinaryStorage, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("utils.Cloudinary: failed to initialize Cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true

	return storage.NewStorageService(cld, cfg.CloudinaryFolder), nil
}
