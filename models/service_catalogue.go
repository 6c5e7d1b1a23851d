package models

// ServiceMetadata is the public listing entry for a bookable service.
type ServiceMetadata struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Popular     bool     `json:"popular"`
	NeedsFiles  bool     `json:"needsFiles"`
}
