package booking

import "errors"

var ErrIncompleteHandoff = errors.New("booking needs a service and a contact name before it can be handed off")
