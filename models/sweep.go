package models

// SweepPayload is the retention-sweep task payload.
type SweepPayload struct {
	PollID string `json:"pollId"`
}
