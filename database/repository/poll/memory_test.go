package pollRepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"slotpoll/models"
)

func seedPoll(t *testing.T, repo PollRepository, pollID string) []models.TimeSlot {
	t.Helper()
	poll := models.Poll{
		ID:        pollID,
		Title:     "Sprint planning",
		Status:    models.PollStatusOpen,
		CreatorID: "creator-1",
		CreatedAt: time.Now(),
	}
	slots := []models.TimeSlot{
		{ID: pollID + "-s1", PollID: pollID, Day: "2025-06-10", Start: 540, End: 600},
		{ID: pollID + "-s2", PollID: pollID, Day: "2025-06-10", Start: 600, End: 660},
	}
	if err := repo.CreatePollWithSlots(context.Background(), &poll, slots); err != nil {
		t.Fatalf("CreatePollWithSlots failed: %v", err)
	}
	return slots
}

func TestMemoryRepoCreateGuard(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPollRepo()
	seedPoll(t, repo, "p1")

	// A second creation attempt for the same poll must not replace the
	// frozen slot set.
	dup := models.Poll{ID: "p1", Title: "Replay"}
	err := repo.CreatePollWithSlots(ctx, &dup, []models.TimeSlot{
		{ID: "other", PollID: "p1", Day: "2025-06-11", Start: 0, End: 60},
	})
	if err != nil {
		t.Fatalf("replayed create should be a no-op, got %v", err)
	}

	slots, err := repo.GetSlots(ctx, "p1")
	if err != nil {
		t.Fatalf("GetSlots failed: %v", err)
	}
	if len(slots) != 2 || slots[0].ID != "p1-s1" {
		t.Errorf("original slot set was replaced: %+v", slots)
	}
	poll, err := repo.GetPoll(ctx, "p1")
	if err != nil {
		t.Fatalf("GetPoll failed: %v", err)
	}
	if poll.Title != "Sprint planning" {
		t.Errorf("original poll was replaced: %+v", poll)
	}
}

func TestMemoryRepoUpsertResponse(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPollRepo()
	slots := seedPoll(t, repo, "p1")

	first := models.Response{PollID: "p1", SlotID: slots[0].ID, ParticipantID: "alice", Availability: models.AvailabilityNo}
	if err := repo.UpsertResponse(ctx, first); err != nil {
		t.Fatalf("UpsertResponse failed: %v", err)
	}
	second := first
	second.Availability = models.AvailabilityYes
	if err := repo.UpsertResponse(ctx, second); err != nil {
		t.Fatalf("UpsertResponse failed: %v", err)
	}

	responses, err := repo.GetResponses(ctx, "p1")
	if err != nil {
		t.Fatalf("GetResponses failed: %v", err)
	}
	if len(responses) != 1 {
		t.Fatalf("expected one response after re-vote, got %d", len(responses))
	}
	if responses[0].Availability != models.AvailabilityYes {
		t.Errorf("expected last write to win, got %s", responses[0].Availability)
	}

	err = repo.UpsertResponse(ctx, models.Response{PollID: "missing", SlotID: "s", ParticipantID: "alice", Availability: models.AvailabilityYes})
	if !errors.Is(err, ErrPollNotFound) {
		t.Errorf("expected ErrPollNotFound, got %v", err)
	}
}

func TestMemoryRepoFinalize(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPollRepo()
	slots := seedPoll(t, repo, "p1")

	if err := repo.FinalizePoll(ctx, "p1", slots[0].ID); err != nil {
		t.Fatalf("FinalizePoll failed: %v", err)
	}
	poll, err := repo.GetPoll(ctx, "p1")
	if err != nil {
		t.Fatalf("GetPoll failed: %v", err)
	}
	if poll.Status != models.PollStatusFinalized || poll.FinalizedSlotID != slots[0].ID {
		t.Errorf("finalize not recorded: %+v", poll)
	}

	if err := repo.FinalizePoll(ctx, "p1", slots[0].ID); err != nil {
		t.Errorf("same-slot re-finalize should succeed, got %v", err)
	}
	if err := repo.FinalizePoll(ctx, "p1", slots[1].ID); !errors.Is(err, ErrFinalizeConflict) {
		t.Errorf("expected ErrFinalizeConflict, got %v", err)
	}
	if err := repo.FinalizePoll(ctx, "missing", slots[0].ID); !errors.Is(err, ErrPollNotFound) {
		t.Errorf("expected ErrPollNotFound, got %v", err)
	}
}

func TestMemoryRepoDeleteCascades(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPollRepo()
	slots := seedPoll(t, repo, "p1")

	resp := models.Response{PollID: "p1", SlotID: slots[0].ID, ParticipantID: "alice", Availability: models.AvailabilityYes}
	if err := repo.UpsertResponse(ctx, resp); err != nil {
		t.Fatalf("UpsertResponse failed: %v", err)
	}

	if err := repo.DeletePoll(ctx, "p1"); err != nil {
		t.Fatalf("DeletePoll failed: %v", err)
	}
	if _, err := repo.GetPoll(ctx, "p1"); !errors.Is(err, ErrPollNotFound) {
		t.Errorf("expected ErrPollNotFound after delete, got %v", err)
	}
	if _, err := repo.GetSlots(ctx, "p1"); !errors.Is(err, ErrPollNotFound) {
		t.Errorf("expected slots gone after delete, got %v", err)
	}
	responses, err := repo.GetResponses(ctx, "p1")
	if err != nil {
		t.Fatalf("GetResponses failed: %v", err)
	}
	if len(responses) != 0 {
		t.Errorf("expected responses gone after delete, got %d", len(responses))
	}

	if err := repo.DeletePoll(ctx, "p1"); !errors.Is(err, ErrPollNotFound) {
		t.Errorf("expected ErrPollNotFound on double delete, got %v", err)
	}
}

func TestMemoryRepoListPollsByCreator(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPollRepo()

	base := time.Now()
	for i, id := range []string{"p1", "p2"} {
		poll := models.Poll{ID: id, CreatorID: "creator-1", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := repo.CreatePollWithSlots(ctx, &poll, []models.TimeSlot{{ID: id + "-s1", PollID: id}}); err != nil {
			t.Fatalf("CreatePollWithSlots failed: %v", err)
		}
	}
	other := models.Poll{ID: "p3", CreatorID: "creator-2", CreatedAt: base}
	if err := repo.CreatePollWithSlots(ctx, &other, []models.TimeSlot{{ID: "p3-s1", PollID: "p3"}}); err != nil {
		t.Fatalf("CreatePollWithSlots failed: %v", err)
	}

	polls, err := repo.ListPollsByCreator(ctx, "creator-1")
	if err != nil {
		t.Fatalf("ListPollsByCreator failed: %v", err)
	}
	if len(polls) != 2 {
		t.Fatalf("expected 2 polls, got %d", len(polls))
	}
	// Newest first.
	if polls[0].ID != "p2" || polls[1].ID != "p1" {
		t.Errorf("expected [p2 p1], got [%s %s]", polls[0].ID, polls[1].ID)
	}
}
