package wizard

import "digibook/models"

// Service identifiers.
const (
	ServiceWordPress      = "wordpress"
	ServiceGraphicDesign  = "graphic-design"
	ServiceVideoEditing   = "video-editing"
	ServiceTShirtPrinting = "tshirt-printing"
)

// Contact channels.
const (
	ChannelWhatsApp = "whatsapp"
	ChannelEmail    = "email"
	ChannelPhone    = "phone"
)

// fileUploadServices get a File Upload step before Contact Information.
var fileUploadServices = map[string]bool{
	ServiceTShirtPrinting: true,
	ServiceGraphicDesign:  true,
}

// filesHiddenInReview lists services whose review summary omits uploaded files.
var filesHiddenInReview = map[string]bool{
	ServiceWordPress:    true,
	ServiceVideoEditing: true,
}

var catalogue = []models.ServiceMetadata{
	{
		ID:          ServiceWordPress,
		Title:       "WordPress",
		Description: "Website development and maintenance services",
		Features:    []string{"Custom Development", "Maintenance", "SEO Optimization", "Responsive Design"},
	},
	{
		ID:          ServiceGraphicDesign,
		Title:       "Graphic Design",
		Description: "Logos, banners, and social media graphics",
		Features:    []string{"Logo Design", "Social Media Graphics", "Banners", "Brand Identity"},
		Popular:     true,
	},
	{
		ID:          ServiceVideoEditing,
		Title:       "Video Editing",
		Description: "Promotional videos and social content",
		Features:    []string{"Promotional Videos", "Social Content", "Presentations", "Motion Graphics"},
	},
	{
		ID:          ServiceTShirtPrinting,
		Title:       "T-shirt Printing",
		Description: "DTF & Embroidery custom apparel",
		Features:    []string{"DTF Printing", "Embroidery", "Custom Designs", "Bulk Orders"},
	},
}

// Catalogue lists the bookable services in display order.
func Catalogue() []models.ServiceMetadata {
	out := make([]models.ServiceMetadata, len(catalogue))
	for i, s := range catalogue {
		s.NeedsFiles = NeedsFiles(s.ID)
		s.Features = append([]string(nil), s.Features...)
		out[i] = s
	}
	return out
}

// IsKnownService reports whether service is in the catalogue.
func IsKnownService(service string) bool {
	for _, s := range catalogue {
		if s.ID == service {
			return true
		}
	}
	return false
}

// DisplayName returns the catalogue title for service, or service itself when unknown.
func DisplayName(service string) string {
	for _, s := range catalogue {
		if s.ID == service {
			return s.Title
		}
	}
	return service
}

// NeedsFiles reports whether the service collects uploads.
func NeedsFiles(service string) bool {
	return fileUploadServices[service]
}

// ShowsFilesInReview reports whether the review summary lists uploads for service.
func ShowsFilesInReview(service string) bool {
	return !filesHiddenInReview[service]
}

// IsValidChannel reports whether ch is a supported preferred contact channel.
func IsValidChannel(ch string) bool {
	switch ch {
	case ChannelWhatsApp, ChannelEmail, ChannelPhone:
		return true
	}
	return false
}
