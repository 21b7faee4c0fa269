package poll

import "fmt"

// ValidationError signals bad input shape: non-positive duration, inverted
// date range, malformed day keys or a selection producing zero slots. Always
// detected before any write.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return "validation failed: " + e.Message
}

// UnknownPollError signals a reference to a poll that does not exist.
type UnknownPollError struct {
	PollID string
}

func (e UnknownPollError) Error() string {
	return fmt.Sprintf("unknown poll %s", e.PollID)
}

// UnknownSlotError signals a slot ID that does not belong to the poll.
type UnknownSlotError struct {
	PollID string
	SlotID string
}

func (e UnknownSlotError) Error() string {
	return fmt.Sprintf("slot %s does not belong to poll %s", e.SlotID, e.PollID)
}

// PollFinalizedError signals a vote on a poll that has already been decided.
// This is a benign rejection; the participant should refresh.
type PollFinalizedError struct {
	PollID string
}

func (e PollFinalizedError) Error() string {
	return fmt.Sprintf("poll %s is already finalized", e.PollID)
}

// AlreadyFinalizedError signals a finalize attempt with a different slot
// after the poll was committed. Re-finalizing with the same slot is a no-op
// success, not this error.
type AlreadyFinalizedError struct {
	PollID string
	SlotID string
}

func (e AlreadyFinalizedError) Error() string {
	return fmt.Sprintf("poll %s is already finalized with a different slot than %s", e.PollID, e.SlotID)
}

// AdminKeyError signals a missing or wrong admin key on a creator-only
// operation.
type AdminKeyError struct {
	PollID string
}

func (e AdminKeyError) Error() string {
	return fmt.Sprintf("invalid admin key for poll %s", e.PollID)
}
