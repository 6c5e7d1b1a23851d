package wizard

import "strings"

const defaultCountryCode = "212"

// NormalizePhone keeps digits and a leading '+', then prefixes the default country code
// when the number has none, dropping a trunk '0'.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && b.Len() == 0:
			b.WriteRune(r)
		}
	}

	s := b.String()
	switch {
	case s == "" || s == "+":
		return ""
	case strings.HasPrefix(s, "+"):
		return s
	case strings.HasPrefix(s, defaultCountryCode):
		return "+" + s
	default:
		return "+" + defaultCountryCode + strings.TrimPrefix(s, "0")
	}
}
