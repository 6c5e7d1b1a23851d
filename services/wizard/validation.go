package wizard

import (
	"regexp"
	"strings"
)

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	phoneRe = regexp.MustCompile(`^\+\d{10,15}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidationErrors maps a field key to a user-facing message.
type ValidationErrors map[string]string

// Empty reports whether there are no errors.
func (v ValidationErrors) Empty() bool { return len(v) == 0 }

func (v ValidationErrors) merge(other ValidationErrors) {
	for k, msg := range other {
		v[k] = msg
	}
}

// ValidateStep runs the validator for kind against r. Review and file upload always pass.
func ValidateStep(kind StepKind, r *Record) ValidationErrors {
	switch kind {
	case StepService:
		return validateService(r)
	case StepDetails:
		return validateDetails(r)
	case StepContact:
		return ValidateContact(r.ContactInfo.Name, r.ContactInfo.Phone, r.ContactInfo.Email)
	}
	return ValidationErrors{}
}

func validateService(r *Record) ValidationErrors {
	errs := ValidationErrors{}
	if r.Service == "" {
		errs["service"] = "Please select a service"
	} else if !IsKnownService(r.Service) {
		errs["service"] = "Unknown service"
	}
	return errs
}

func validateDetails(r *Record) ValidationErrors {
	errs := validateService(r)
	if !errs.Empty() {
		return errs
	}
	for _, field := range RequiredFields(r.Service, r.ServiceDetails) {
		if strings.TrimSpace(r.ServiceDetails[field]) == "" {
			errs[field] = FieldLabel(field) + " is required"
		}
	}
	return errs
}

// ValidateContact checks the three contact fields.
func ValidateContact(name, phone, email string) ValidationErrors {
	errs := ValidationErrors{}

	switch {
	case strings.TrimSpace(name) == "":
		errs["name"] = "Name is required"
	case !nameRe.MatchString(name):
		errs["name"] = "Name can only contain letters and spaces"
	}

	switch {
	case strings.TrimSpace(phone) == "":
		errs["phone"] = "Phone number is required"
	case !phoneRe.MatchString(phone):
		errs["phone"] = "Please enter a valid phone number with country code (e.g., +212612345678)"
	}

	switch {
	case strings.TrimSpace(email) == "":
		errs["email"] = "Email is required"
	case !emailRe.MatchString(email):
		errs["email"] = "Please enter a valid email address"
	}
	return errs
}
