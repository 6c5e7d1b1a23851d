package wizard

// StepKind identifies the validator a step runs.
type StepKind string

const (
	StepService StepKind = "service"
	StepDetails StepKind = "details"
	StepFiles   StepKind = "files"
	StepContact StepKind = "contact"
	StepReview  StepKind = "review"
)

// Step is one visible wizard step. IDs are 1-based and contiguous.
type Step struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Kind        StepKind `json:"kind"`
}

var (
	serviceStep = Step{Title: "Service Selection", Description: "Choose the service you need", Kind: StepService}
	detailsStep = Step{Title: "Service Details", Description: "Tell us about your project", Kind: StepDetails}
	filesStep   = Step{Title: "File Upload", Description: "Share your designs and references", Kind: StepFiles}
	contactStep = Step{Title: "Contact Information", Description: "How can we reach you?", Kind: StepContact}
	reviewStep  = Step{Title: "Review & Submit", Description: "Confirm your booking", Kind: StepReview}
)

// Steps computes the visible steps for service.
func Steps(service string) []Step {
	steps := []Step{serviceStep, detailsStep}
	if NeedsFiles(service) {
		steps = append(steps, filesStep)
	}
	steps = append(steps, contactStep, reviewStep)
	for i := range steps {
		steps[i].ID = i + 1
	}
	return steps
}
