package storage

import (
	"context"

	"digibook/services/wizard"
)

// StorageService persists uploaded wizard files and hands back a public URL.
// It satisfies wizard.Uploader.
type StorageService interface {
	Upload(ctx context.Context, file wizard.Upload) (string, error)
}
