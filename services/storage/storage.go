package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"digibook/services/wizard"
)

var _ StorageService = (*CloudinaryStorage)(nil)

// CloudinaryStorage uploads wizard files into a single Cloudinary folder.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewStorageService creates a new CloudinaryStorage instance.
func NewStorageService(cld *cloudinary.Cloudinary, folder string) *CloudinaryStorage {
	return &CloudinaryStorage{cld: cld, folder: folder}
}

// Upload stores the bytes under a fresh public ID and returns the secure URL.
func (s *CloudinaryStorage) Upload(ctx context.Context, file wizard.Upload) (string, error) {
	params := uploader.UploadParams{
		Folder:         s.folder,
		PublicID:       publicID(file.Name),
		ResourceType:   "auto",
		UniqueFilename: api.Bool(false),
		Overwrite:      api.Bool(false),
	}
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(file.Data), params)
	if err != nil {
		return "", fmt.Errorf("CloudinaryStorage: failed to upload %s: %w", file.Name, err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("CloudinaryStorage: upload of %s rejected: %s", file.Name, result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("CloudinaryStorage: no secure URL returned for %s", file.Name)
	}
	return result.SecureURL, nil
}

// publicID keeps a readable stem of the original name and makes it unique.
func publicID(name string) string {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	var b strings.Builder
	for _, r := range strings.ToLower(stem) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == ' ' || r == '.':
			b.WriteRune('-')
		}
	}
	clean := strings.Trim(b.String(), "-")
	if len(clean) > 40 {
		clean = clean[:40]
	}
	id := uuid.New().String()[:8]
	if clean == "" {
		return id
	}
	return clean + "-" + id
}
