// File: database/repository/poll/interface.go
package pollRepo

import (
	"context"
	"errors"

	"slotpoll/models"
)

// Sentinel errors shared by every backend. The service layer maps these onto
// its user-facing error taxonomy.
var (
	// ErrPollNotFound is returned when the referenced poll does not exist.
	ErrPollNotFound = errors.New("poll not found")
	// ErrFinalizeConflict is returned when a conditional finalize matched
	// nothing: the poll was already finalized with a different slot.
	ErrFinalizeConflict = errors.New("poll already finalized with a different slot")
)

// PollRepository is the persistence contract for polls, their frozen slot
// sets and participant responses. Any durable store satisfying it is an
// acceptable backend.
type PollRepository interface {
	// CreatePollWithSlots persists the poll together with its generated
	// slots as one logical transaction: either both are visible or neither
	// is. If the poll already exists with slots, the call is a no-op so
	// that slot generation executes at most once per poll.
	CreatePollWithSlots(ctx context.Context, poll *models.Poll, slots []models.TimeSlot) error

	// GetPoll retrieves a poll by ID, or ErrPollNotFound.
	GetPoll(ctx context.Context, pollID string) (*models.Poll, error)

	// GetSlots returns the poll's slot set ordered by (day, start).
	GetSlots(ctx context.Context, pollID string) ([]models.TimeSlot, error)

	// GetResponses returns every response cast on the poll.
	GetResponses(ctx context.Context, pollID string) ([]models.Response, error)

	// UpsertResponse stores a vote keyed by (pollId, slotId, participantId);
	// a later vote for the same key replaces the prior one.
	UpsertResponse(ctx context.Context, resp models.Response) error

	// FinalizePoll conditionally commits the poll to the given slot. The
	// update only applies while the poll is open, or when it is already
	// finalized with the same slot (idempotent re-finalize); otherwise
	// ErrFinalizeConflict is returned.
	FinalizePoll(ctx context.Context, pollID, slotID string) error

	// DeletePoll removes the poll and, transitively, its slots and
	// responses.
	DeletePoll(ctx context.Context, pollID string) error

	// ListPollsByCreator returns the polls created by the given creator,
	// newest first.
	ListPollsByCreator(ctx context.Context, creatorID string) ([]models.Poll, error)
}
