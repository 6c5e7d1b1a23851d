package wizard

import (
	"strconv"
	"strings"
)

// Details is the typed view of a record's serviceDetails. Exactly one variant exists per service.
type Details interface {
	ServiceID() string
}

type WordPressDetails struct {
	WebsiteType string // "new" or "maintenance"
	PageCount   string
	Features    string
	ExistingURL string
}

func (WordPressDetails) ServiceID() string { return ServiceWordPress }

type GraphicDesignDetails struct {
	DesignType   string
	Dimensions   string
	ConceptCount string
	BrandColors  string
}

func (GraphicDesignDetails) ServiceID() string { return ServiceGraphicDesign }

type VideoEditingDetails struct {
	VideoLength       string
	VideoLengthUnit   string
	StylePreference   string
	RawFootage        string
	ExportFormat      string
	SocialMediaFormat string
}

func (VideoEditingDetails) ServiceID() string { return ServiceVideoEditing }

// Length parses VideoLength as a number.
func (d VideoEditingDetails) Length() (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(d.VideoLength), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// Unit is the length unit, defaulting to seconds.
func (d VideoEditingDetails) Unit() string {
	if d.VideoLengthUnit == "" {
		return "seconds"
	}
	return d.VideoLengthUnit
}

type TShirtDetails struct {
	PrintingMethod        string // "dtf" or "embroidery"
	Quantity              string
	Sizes                 string
	Colors                string
	EmbroideryGarmentType string
	EmbroideryType        string
	EmbroideryPlacement   string
}

func (TShirtDetails) ServiceID() string { return ServiceTShirtPrinting }

// Qty parses Quantity as a positive integer.
func (d TShirtDetails) Qty() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(d.Quantity))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// DecodeDetails builds the variant for service from the raw detail map.
func DecodeDetails(service string, d map[string]string) (Details, error) {
	switch service {
	case ServiceWordPress:
		return WordPressDetails{
			WebsiteType: d["websiteType"],
			PageCount:   d["pageCount"],
			Features:    d["features"],
			ExistingURL: d["existingUrl"],
		}, nil
	case ServiceGraphicDesign:
		return GraphicDesignDetails{
			DesignType:   d["designType"],
			Dimensions:   d["dimensions"],
			ConceptCount: d["conceptCount"],
			BrandColors:  d["brandColors"],
		}, nil
	case ServiceVideoEditing:
		return VideoEditingDetails{
			VideoLength:       d["videoLength"],
			VideoLengthUnit:   d["videoLengthUnit"],
			StylePreference:   d["stylePreference"],
			RawFootage:        d["rawFootage"],
			ExportFormat:      d["exportFormat"],
			SocialMediaFormat: d["socialMediaFormat"],
		}, nil
	case ServiceTShirtPrinting:
		return TShirtDetails{
			PrintingMethod:        d["printingMethod"],
			Quantity:              d["quantity"],
			Sizes:                 d["sizes"],
			Colors:                d["colors"],
			EmbroideryGarmentType: d["embroideryGarmentType"],
			EmbroideryType:        d["embroideryType"],
			EmbroideryPlacement:   d["embroideryPlacement"],
		}, nil
	case "":
		return nil, ErrNoService
	}
	return nil, ErrUnknownService
}
