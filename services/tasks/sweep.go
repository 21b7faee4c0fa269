package tasks

import (
	"encoding/json"
	"time"

	"slotpoll/models"

	"github.com/hibiken/asynq"
)

const TypePollSweep = "poll:sweep"

// NewPollSweepTask builds the retention-sweep task for a poll, scheduled to
// fire once the poll's retention window has passed.
func NewPollSweepTask(payload models.SweepPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypePollSweep, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
