// File: database/repository/poll/memory.go
package pollRepo

import (
	"context"
	"sort"
	"sync"

	"slotpoll/models"
)

// memoryPollRepo is a mutex-guarded in-memory PollRepository used by tests
// and the "memory" store backend.
type memoryPollRepo struct {
	mu        sync.RWMutex
	polls     map[string]models.Poll
	slots     map[string][]models.TimeSlot        // pollID -> slots
	responses map[string]map[string]models.Response // pollID -> responseKey -> response
}

// NewMemoryPollRepo constructs an empty in-memory PollRepository.
func NewMemoryPollRepo() PollRepository {
	return &memoryPollRepo{
		polls:     make(map[string]models.Poll),
		slots:     make(map[string][]models.TimeSlot),
		responses: make(map[string]map[string]models.Response),
	}
}

func responseKey(resp models.Response) string {
	return resp.SlotID + "|" + resp.ParticipantID
}

func (r *memoryPollRepo) CreatePollWithSlots(ctx context.Context, poll *models.Poll, slots []models.TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Slot generation must execute at most once per poll.
	if existing, ok := r.slots[poll.ID]; ok && len(existing) > 0 {
		return nil
	}

	r.polls[poll.ID] = *poll
	stored := make([]models.TimeSlot, len(slots))
	copy(stored, slots)
	r.slots[poll.ID] = stored
	r.responses[poll.ID] = make(map[string]models.Response)
	return nil
}

func (r *memoryPollRepo) GetPoll(ctx context.Context, pollID string) (*models.Poll, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	poll, ok := r.polls[pollID]
	if !ok {
		return nil, ErrPollNotFound
	}
	return &poll, nil
}

func (r *memoryPollRepo) GetSlots(ctx context.Context, pollID string) ([]models.TimeSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.polls[pollID]; !ok {
		return nil, ErrPollNotFound
	}
	slots := make([]models.TimeSlot, len(r.slots[pollID]))
	copy(slots, r.slots[pollID])
	return slots, nil
}

func (r *memoryPollRepo) GetResponses(ctx context.Context, pollID string) ([]models.Response, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Response
	for _, resp := range r.responses[pollID] {
		out = append(out, resp)
	}
	// Map iteration order is random; keep output deterministic.
	sort.Slice(out, func(i, j int) bool {
		if out[i].SlotID != out[j].SlotID {
			return out[i].SlotID < out[j].SlotID
		}
		return out[i].ParticipantID < out[j].ParticipantID
	})
	return out, nil
}

func (r *memoryPollRepo) UpsertResponse(ctx context.Context, resp models.Response) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.polls[resp.PollID]; !ok {
		return ErrPollNotFound
	}
	if r.responses[resp.PollID] == nil {
		r.responses[resp.PollID] = make(map[string]models.Response)
	}
	r.responses[resp.PollID][responseKey(resp)] = resp
	return nil
}

func (r *memoryPollRepo) FinalizePoll(ctx context.Context, pollID, slotID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	poll, ok := r.polls[pollID]
	if !ok {
		return ErrPollNotFound
	}
	if poll.Status == models.PollStatusFinalized && poll.FinalizedSlotID != slotID {
		return ErrFinalizeConflict
	}
	poll.Status = models.PollStatusFinalized
	poll.FinalizedSlotID = slotID
	r.polls[pollID] = poll
	return nil
}

func (r *memoryPollRepo) DeletePoll(ctx context.Context, pollID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.polls[pollID]; !ok {
		return ErrPollNotFound
	}
	delete(r.polls, pollID)
	delete(r.slots, pollID)
	delete(r.responses, pollID)
	return nil
}

func (r *memoryPollRepo) ListPollsByCreator(ctx context.Context, creatorID string) ([]models.Poll, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Poll
	for _, poll := range r.polls {
		if poll.CreatorID == creatorID {
			out = append(out, poll)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
