package tasks

import (
	"encoding/json"

	"digibook/models"

	"github.com/hibiken/asynq"
)

const TypeBookingHandoff = "booking:handoff"

// NewHandoffTask builds the studio notification task. It is attempted once.
func NewHandoffTask(payload models.HandoffPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingHandoff, b)
	opts := []asynq.Option{asynq.MaxRetry(0), asynq.Queue("default")}

	return task, opts, nil
}
