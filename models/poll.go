package models

import "time"

// Poll statuses. A poll finalizes exactly once; there is no transition out of
// "finalized" other than deletion.
const (
	PollStatusOpen      = "open"
	PollStatusFinalized = "finalized"
)

// Poll represents a scheduling poll: a date range, a fixed meeting duration
// and the frozen set of votable slots generated at creation.
type Poll struct {
	ID              string    `bson:"id" json:"id"`
	Title           string    `bson:"title" json:"title"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
	DateRangeStart  string    `bson:"dateRangeStart" json:"dateRangeStart"` // e.g., "2025-06-09"
	DateRangeEnd    string    `bson:"dateRangeEnd" json:"dateRangeEnd"`
	Status          string    `bson:"status" json:"status"` // "open" or "finalized"
	FinalizedSlotID string    `bson:"finalizedSlotId,omitempty" json:"finalizedSlotId,omitempty"`
	CreatorID       string    `bson:"creatorId" json:"creatorId"`
	AdminKeyHash    string    `bson:"adminKeyHash" json:"-"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}

// IsFinalized reports whether the poll has been committed to a single slot.
func (p *Poll) IsFinalized() bool {
	return p.Status == PollStatusFinalized
}

// CreatePollRequest defines the payload for creating a poll. The creator's
// grid selection arrives as atomic cells; the server merges and expands them.
type CreatePollRequest struct {
	Title           string     `json:"title" binding:"required"`
	DurationMinutes int        `json:"durationMinutes" binding:"required"`
	DateRangeStart  string     `json:"dateRangeStart" binding:"required"`
	DateRangeEnd    string     `json:"dateRangeEnd" binding:"required"`
	Cells           []GridCell `json:"cells" binding:"required"`
}

// RespondRequest defines the payload for casting or replacing a vote.
type RespondRequest struct {
	SlotID       string `json:"slotId" binding:"required"`
	Availability string `json:"availability" binding:"required"` // "yes", "maybe" or "no"
}

// FinalizeRequest defines the payload for committing a poll to one slot.
type FinalizeRequest struct {
	SlotID string `json:"slotId" binding:"required"`
}
