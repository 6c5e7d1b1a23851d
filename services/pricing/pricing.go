package pricing

import (
	"errors"
	"fmt"

	"digibook/services/wizard"
)

// DefaultCurrency is the studio's billing currency (dirham).
const DefaultCurrency = "MAD"

// ErrNoPrice means the details do not map to a priced offer.
var ErrNoPrice = errors.New("no price for the selected options")

// Quote is an estimated price in major currency units.
type Quote struct {
	Service     string `json:"service"`
	Tier        string `json:"tier"`
	Price       int64  `json:"price"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
}

// MinorUnits is the amount sent to payment gateways.
func (q Quote) MinorUnits() int64 { return q.Price * 100 }

type offer struct {
	price       int64
	description string
}

var wordpressNew = map[string]offer{
	"e-commerce":     {3500, "Full online store with payments and catalogue"},
	"press":          {2500, "News or magazine site"},
	"hostel-booking": {3000, "Accommodation site with booking forms"},
	"business-page":  {2000, "Multi-page business website"},
	"one-page":       {1000, "Single landing page"},
	"portfolio":      {1500, "Portfolio showcase"},
}

var wordpressMaintenance = map[string]offer{
	"elementor":                 {500, "Elementor layout fixes"},
	"errors":                    {400, "Error diagnosis and repair"},
	"plugin-theme-installation": {300, "Plugin or theme installation recovery"},
}

var graphicDesign = map[string]offer{
	"logo":          {400, "Logo with revisions"},
	"banner":        {250, "Banner or header"},
	"social":        {200, "Social media graphics"},
	"business-card": {150, "Business card design"},
	"flyer":         {250, "Flyer or poster"},
	"other":         {300, "Custom design work"},
}

var videoEditing = map[string]offer{
	"short":  {150, "Short clip (under 10 seconds)"},
	"medium": {300, "Medium clip (up to 30 seconds)"},
	"long":   {500, "Long form edit"},
}

var dtf = map[string]offer{
	"less-than-5":  {150, "DTF printing"},
	"5-to-10":      {120, "DTF printing"},
	"more-than-10": {100, "DTF printing"},
}

// embroidery[garment][type][tier]
var embroidery = map[string]map[string]map[string]offer{
	"tshirt": {
		"logo": {
			"less-than-5":  {180, "Embroidered logo on t-shirt"},
			"5-to-10":      {160, "Embroidered logo on t-shirt"},
			"more-than-10": {140, "Embroidered logo on t-shirt"},
		},
		"design": {
			"less-than-5":  {250, "Embroidered design on t-shirt"},
			"5-to-10":      {220, "Embroidered design on t-shirt"},
			"more-than-10": {200, "Embroidered design on t-shirt"},
		},
	},
	"hoodie": {
		"logo": {
			"less-than-5":  {280, "Embroidered logo on hoodie"},
			"5-to-10":      {250, "Embroidered logo on hoodie"},
			"more-than-10": {220, "Embroidered logo on hoodie"},
		},
		"design": {
			"less-than-5":  {350, "Embroidered design on hoodie"},
			"5-to-10":      {320, "Embroidered design on hoodie"},
			"more-than-10": {290, "Embroidered design on hoodie"},
		},
	},
}

// QuantityTier buckets a piece count.
func QuantityTier(qty int) string {
	switch {
	case qty < 5:
		return "less-than-5"
	case qty <= 10:
		return "5-to-10"
	default:
		return "more-than-10"
	}
}

// VideoTier buckets a length in the given unit ("seconds" or "minutes").
func VideoTier(length float64, unit string) string {
	if unit == "minutes" {
		switch {
		case length < 1:
			return "short"
		case length <= 2:
			return "medium"
		default:
			return "long"
		}
	}
	switch {
	case length < 10:
		return "short"
	case length <= 30:
		return "medium"
	default:
		return "long"
	}
}

// For prices a typed details variant.
func For(details wizard.Details) (*Quote, error) {
	var (
		tier string
		o    offer
		ok   bool
	)

	switch d := details.(type) {
	case wizard.WordPressDetails:
		tier = d.WebsiteType + "/" + d.PageCount
		switch d.WebsiteType {
		case "new":
			o, ok = wordpressNew[d.PageCount]
		case "maintenance":
			o, ok = wordpressMaintenance[d.PageCount]
		}
	case wizard.GraphicDesignDetails:
		tier = d.DesignType
		o, ok = graphicDesign[d.DesignType]
	case wizard.VideoEditingDetails:
		length, valid := d.Length()
		if valid {
			tier = VideoTier(length, d.Unit())
			o, ok = videoEditing[tier]
		}
	case wizard.TShirtDetails:
		qty, valid := d.Qty()
		if !valid {
			break
		}
		tier = QuantityTier(qty)
		switch d.PrintingMethod {
		case "dtf":
			o, ok = dtf[tier]
		case "embroidery":
			o, ok = embroidery[d.EmbroideryGarmentType][d.EmbroideryType][tier]
		}
	default:
		return nil, fmt.Errorf("%w: unsupported details %T", ErrNoPrice, details)
	}

	if !ok {
		return nil, ErrNoPrice
	}
	return &Quote{
		Service:     details.ServiceID(),
		Tier:        tier,
		Price:       o.price,
		Currency:    DefaultCurrency,
		Description: o.description,
	}, nil
}

// ForRecord decodes the record's details and prices them.
func ForRecord(r *wizard.Record) (*Quote, error) {
	details, err := wizard.DecodeDetails(r.Service, r.ServiceDetails)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoPrice, err)
	}
	return For(details)
}

// StartingPrice is the lowest listed price for a service, shown in the catalogue.
func StartingPrice(service string) (int64, bool) {
	var tables []map[string]offer
	switch service {
	case wizard.ServiceWordPress:
		tables = []map[string]offer{wordpressNew, wordpressMaintenance}
	case wizard.ServiceGraphicDesign:
		tables = []map[string]offer{graphicDesign}
	case wizard.ServiceVideoEditing:
		tables = []map[string]offer{videoEditing}
	case wizard.ServiceTShirtPrinting:
		tables = []map[string]offer{dtf}
		for _, types := range embroidery {
			for _, tiers := range types {
				tables = append(tables, tiers)
			}
		}
	default:
		return 0, false
	}

	var lowest int64
	for _, t := range tables {
		for _, o := range t {
			if lowest == 0 || o.price < lowest {
				lowest = o.price
			}
		}
	}
	return lowest, lowest > 0
}
