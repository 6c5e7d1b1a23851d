package wizard

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownService  = errors.New("unknown service")
	ErrNoService       = errors.New("no service selected")
	ErrInvalidChannel  = errors.New("invalid preferred contact channel")
	ErrSessionNotFound = errors.New("wizard session not found or expired")
)

// FieldError reports a detail write that the selected service does not accept.
type FieldError struct {
	Service string
	Field   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q is not part of the %s details", e.Field, e.Service)
}
