package wizard

import (
	"strings"

	"digibook/models"
)

// Controller drives the step state machine over a single owned Record.
// Validation failures are published through Errors and never returned.
type Controller struct {
	record  *Record
	current int
	errors  ValidationErrors
}

// NewController wraps record, placing the cursor at current (clamped to the visible steps).
func NewController(record *Record, current int) *Controller {
	if record == nil {
		record = NewRecord()
	}
	if record.ServiceDetails == nil {
		record.ServiceDetails = map[string]string{}
	}
	if record.Files == nil {
		record.Files = []models.FileDescriptor{}
	}
	c := &Controller{record: record, current: current, errors: ValidationErrors{}}
	c.clamp()
	return c
}

func (c *Controller) Record() *Record { return c.record }

func (c *Controller) CurrentStep() int { return c.current }

func (c *Controller) Steps() []Step { return Steps(c.record.Service) }

func (c *Controller) Current() Step { return c.Steps()[c.current-1] }

func (c *Controller) Errors() ValidationErrors { return c.errors }

func (c *Controller) IsLast() bool { return c.current == len(c.Steps()) }

func (c *Controller) clamp() {
	if n := len(c.Steps()); c.current > n {
		c.current = n
	}
	if c.current < 1 {
		c.current = 1
	}
}

// Advance validates the current step and moves forward on success.
func (c *Controller) Advance() bool {
	errs := ValidateStep(c.Current().Kind, c.record)
	if !errs.Empty() {
		c.errors = errs
		return false
	}
	c.errors = ValidationErrors{}
	if c.current < len(c.Steps()) {
		c.current++
	}
	return true
}

// Retreat moves back one step without validating.
func (c *Controller) Retreat() {
	if c.current > 1 {
		c.current--
	}
	c.errors = ValidationErrors{}
}

// JumpTo moves to target only when every earlier step passes validation.
func (c *Controller) JumpTo(target int) bool {
	steps := c.Steps()
	if target < 1 || target > len(steps) {
		return false
	}
	for _, s := range steps[:target-1] {
		if !ValidateStep(s.Kind, c.record).Empty() {
			return false
		}
	}
	c.current = target
	return true
}

// ChangeService returns to the first step and clears the service selection.
func (c *Controller) ChangeService() {
	c.record.Service = ""
	c.record.ServiceDetails = map[string]string{}
	c.current = 1
	c.errors = ValidationErrors{}
}

// SelectService sets the service. A different service discards previous details and
// moves a cursor past Service Details back to it, since those details are now empty.
func (c *Controller) SelectService(service string) error {
	if !IsKnownService(service) {
		return ErrUnknownService
	}
	if service == c.record.Service {
		return nil
	}

	c.record.Service = service
	c.record.ServiceDetails = map[string]string{}
	if c.current > 2 {
		c.current = 2
	}
	c.clamp()
	delete(c.errors, "service")
	return nil
}

// SetDetail writes one detail field. An empty value removes it.
func (c *Controller) SetDetail(field, value string) error {
	if c.record.Service == "" {
		return ErrNoService
	}
	if !FieldAllowed(c.record.Service, field) {
		return &FieldError{Service: c.record.Service, Field: field}
	}
	if strings.TrimSpace(value) == "" {
		delete(c.record.ServiceDetails, field)
	} else {
		c.record.ServiceDetails[field] = value
	}
	delete(c.errors, field)
	return nil
}

// SetDetails applies several fields at once; nothing is written if any field is rejected.
func (c *Controller) SetDetails(values map[string]string) error {
	if c.record.Service == "" {
		return ErrNoService
	}
	for field := range values {
		if !FieldAllowed(c.record.Service, field) {
			return &FieldError{Service: c.record.Service, Field: field}
		}
	}
	for field, value := range values {
		if err := c.SetDetail(field, value); err != nil {
			return err
		}
	}
	return nil
}

// SetContact replaces the contact info, normalizing the phone number.
func (c *Controller) SetContact(info models.ContactInfo) error {
	if info.PreferredContact == "" {
		info.PreferredContact = ChannelWhatsApp
	}
	if !IsValidChannel(info.PreferredContact) {
		return ErrInvalidChannel
	}
	info.Name = strings.TrimSpace(info.Name)
	info.Email = strings.TrimSpace(info.Email)
	info.Phone = NormalizePhone(info.Phone)
	c.record.ContactInfo = info
	for _, k := range []string{"name", "phone", "email"} {
		delete(c.errors, k)
	}
	return nil
}

// AddFiles appends descriptors in the given order.
func (c *Controller) AddFiles(files []models.FileDescriptor) {
	c.record.Files = append(c.record.Files, files...)
}

// RemoveFile drops the file with id and reports whether it was present.
func (c *Controller) RemoveFile(id string) bool {
	for i, f := range c.record.Files {
		if f.ID == id {
			c.record.Files = append(c.record.Files[:i], c.record.Files[i+1:]...)
			return true
		}
	}
	return false
}

// ValidateAll runs every step validator and merges the results.
func (c *Controller) ValidateAll() ValidationErrors {
	errs := ValidationErrors{}
	for _, s := range c.Steps() {
		errs.merge(ValidateStep(s.Kind, c.record))
	}
	return errs
}

// Complete reports whether the record is ready for submission.
func (c *Controller) Complete() bool {
	return c.ValidateAll().Empty()
}

// Reset discards everything and starts over.
func (c *Controller) Reset() {
	c.record = NewRecord()
	c.current = 1
	c.errors = ValidationErrors{}
}
