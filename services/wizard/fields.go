package wizard

import (
	"strings"
	"unicode"
)

// FieldRule declares one writable detail field and when it is required.
type FieldRule struct {
	Field    string
	Required func(details map[string]string) bool
}

func always(map[string]string) bool { return true }

func never(map[string]string) bool { return false }

func when(field, value string) func(map[string]string) bool {
	return func(details map[string]string) bool {
		return details[field] == value
	}
}

// serviceFields is the per-service detail table. Fields not listed are rejected on write.
var serviceFields = map[string][]FieldRule{
	ServiceWordPress: {
		{Field: "websiteType", Required: always},
		{Field: "pageCount", Required: always},
		{Field: "existingUrl", Required: when("websiteType", "maintenance")},
		{Field: "features", Required: never},
	},
	ServiceGraphicDesign: {
		{Field: "designType", Required: always},
		{Field: "dimensions", Required: always},
		{Field: "conceptCount", Required: always},
		{Field: "brandColors", Required: never},
	},
	ServiceVideoEditing: {
		{Field: "videoLength", Required: always},
		{Field: "stylePreference", Required: always},
		{Field: "rawFootage", Required: always},
		{Field: "exportFormat", Required: always},
		{Field: "socialMediaFormat", Required: when("exportFormat", "social-optimized")},
		{Field: "videoLengthUnit", Required: never},
	},
	ServiceTShirtPrinting: {
		{Field: "printingMethod", Required: always},
		{Field: "quantity", Required: always},
		{Field: "sizes", Required: always},
		{Field: "embroideryGarmentType", Required: when("printingMethod", "embroidery")},
		{Field: "embroideryType", Required: when("printingMethod", "embroidery")},
		{Field: "embroideryPlacement", Required: when("printingMethod", "embroidery")},
		{Field: "colors", Required: never},
	},
}

// FieldAllowed reports whether field may be written for service.
func FieldAllowed(service, field string) bool {
	for _, rule := range serviceFields[service] {
		if rule.Field == field {
			return true
		}
	}
	return false
}

// Fields returns the writable detail fields for service in table order.
func Fields(service string) []string {
	rules := serviceFields[service]
	out := make([]string, 0, len(rules))
	for _, rule := range rules {
		out = append(out, rule.Field)
	}
	return out
}

// RequiredFields evaluates the table against the current details.
func RequiredFields(service string, details map[string]string) []string {
	var out []string
	for _, rule := range serviceFields[service] {
		if rule.Required(details) {
			out = append(out, rule.Field)
		}
	}
	return out
}

// FieldLabel turns a camelCase field key into a title-cased label ("websiteType" -> "Website Type").
func FieldLabel(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
