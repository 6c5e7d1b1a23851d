// File: digibook/handlers/bundle.go
package handlers

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Wizard   *WizardHandler
	Payment  *PaymentHandler
	Services *ServicesHandler
	Admin    *AdminHandler
}
