package wizard

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"digibook/models"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Upload is one file as received from the client.
type Upload struct {
	Name string
	Type string
	Data []byte
}

// Rejection is a user-facing notice for a file that was not accepted.
type Rejection struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Uploader stores accepted bytes and returns a public URL.
type Uploader interface {
	Upload(ctx context.Context, file Upload) (string, error)
}

// DetectMime sniffs the content type, falling back to the declared type when sniffing is inconclusive.
func DetectMime(declared string, data []byte) string {
	sniffed := mimetype.Detect(data).String()
	if sniffed == "application/octet-stream" && declared != "" {
		sniffed = declared
	}
	if i := strings.IndexByte(sniffed, ';'); i >= 0 {
		sniffed = sniffed[:i]
	}
	return strings.TrimSpace(strings.ToLower(sniffed))
}

// AcceptsMime applies the per-service upload filter.
func AcceptsMime(service, mime string) bool {
	if service == ServiceTShirtPrinting {
		return mime == "image/png"
	}
	return strings.HasPrefix(mime, "image/") ||
		strings.HasPrefix(mime, "video/") ||
		mime == "application/pdf"
}

// RejectionNotice explains the filter for service.
func RejectionNotice(service string) string {
	if service == ServiceTShirtPrinting {
		return "Only PNG files are accepted for T-shirt printing"
	}
	return "Only images, videos and PDF files are accepted"
}

// maxInspectPixels bounds the decoded size of an image scanned for transparency (40 MP).
var maxInspectPixels = 40_000_000

// withinPixelBudget reads only the image header.
func withinPixelBudget(data []byte) bool {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return false
	}
	return int64(cfg.Width)*int64(cfg.Height) <= int64(maxInspectPixels)
}

// HasTransparency reports whether any pixel is below full opacity.
// Undecodable data and images above the pixel budget are reported as opaque.
func HasTransparency(data []byte) bool {
	if !withinPixelBudget(data) {
		return false
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return false
	}
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a < 0xffff {
				return true
			}
		}
	}
	return false
}

// ProcessUploads filters uploads for service and builds descriptors for the accepted ones.
// Accepted files are inspected and stored concurrently; the result keeps submission order.
func ProcessUploads(ctx context.Context, service string, uploads []Upload, store Uploader) ([]models.FileDescriptor, []Rejection, error) {
	var rejected []Rejection
	results := make([]*models.FileDescriptor, len(uploads))

	g, gctx := errgroup.WithContext(ctx)
	for i, up := range uploads {
		mime := DetectMime(up.Type, up.Data)
		if !AcceptsMime(service, mime) {
			rejected = append(rejected, Rejection{Name: up.Name, Reason: RejectionNotice(service)})
			continue
		}

		i, up := i, up
		up.Type = mime
		g.Go(func() error {
			fd := models.FileDescriptor{
				ID:   uuid.New().String(),
				Name: up.Name,
				Size: int64(len(up.Data)),
				Type: up.Type,
			}
			if service == ServiceTShirtPrinting && strings.HasPrefix(up.Type, "image/") {
				transparent := HasTransparency(up.Data)
				fd.IsTransparent = &transparent
			}
			if store != nil {
				url, err := store.Upload(gctx, up)
				if err != nil {
					return fmt.Errorf("upload %s: %w", up.Name, err)
				}
				fd.URL = url
			}
			results[i] = &fd
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, rejected, err
	}

	accepted := make([]models.FileDescriptor, 0, len(uploads))
	for _, fd := range results {
		if fd != nil {
			accepted = append(accepted, *fd)
		}
	}
	return accepted, rejected, nil
}
