package poll

import (
	"context"
	"errors"
	"testing"

	pollRepo "slotpoll/database/repository/poll"
	"slotpoll/models"
)

func newTestService() *DefaultPollService {
	return &DefaultPollService{Repo: pollRepo.NewMemoryPollRepo()}
}

func createRequest() models.CreatePollRequest {
	return models.CreatePollRequest{
		Title:           "Team sync",
		DurationMinutes: 60,
		DateRangeStart:  "2025-06-09",
		DateRangeEnd:    "2025-06-13",
		Cells: []models.GridCell{
			{Day: "2025-06-10", Minute: 540},
			{Day: "2025-06-10", Minute: 600},
		},
	}
}

func mustCreate(t *testing.T, svc *DefaultPollService) *CreatedPoll {
	t.Helper()
	created, err := svc.CreatePoll(context.Background(), "creator-1", createRequest())
	if err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}
	return created
}

func TestCreatePoll(t *testing.T) {
	t.Run("merges cells and freezes slots", func(t *testing.T) {
		created := mustCreate(t, newTestService())

		// Two adjacent hour cells merge into [540,660) and expand into
		// slots [540,600) and [600,660).
		if len(created.Slots) != 2 {
			t.Fatalf("expected 2 slots, got %d", len(created.Slots))
		}
		if created.Slots[0].Start != 540 || created.Slots[0].End != 600 {
			t.Errorf("first slot: expected [540,600), got [%d,%d)", created.Slots[0].Start, created.Slots[0].End)
		}
		if created.Slots[1].Start != 600 || created.Slots[1].End != 660 {
			t.Errorf("second slot: expected [600,660), got [%d,%d)", created.Slots[1].Start, created.Slots[1].End)
		}
		if created.Poll.Status != models.PollStatusOpen {
			t.Errorf("expected open poll, got %s", created.Poll.Status)
		}
		if created.AdminKey == "" || created.CreatorToken == "" {
			t.Error("expected admin key and creator token")
		}
	})

	t.Run("rejects bad input before any write", func(t *testing.T) {
		svc := newTestService()
		cases := map[string]func(*models.CreatePollRequest){
			"empty title":         func(r *models.CreatePollRequest) { r.Title = "" },
			"zero duration":       func(r *models.CreatePollRequest) { r.DurationMinutes = 0 },
			"negative duration":   func(r *models.CreatePollRequest) { r.DurationMinutes = -30 },
			"inverted date range": func(r *models.CreatePollRequest) { r.DateRangeStart, r.DateRangeEnd = r.DateRangeEnd, r.DateRangeStart },
			"malformed day key":   func(r *models.CreatePollRequest) { r.DateRangeStart = "06/09/2025" },
			"no cells":            func(r *models.CreatePollRequest) { r.Cells = nil },
			"cell out of range":   func(r *models.CreatePollRequest) { r.Cells[0].Day = "2025-07-01" },
			"cell past midnight":  func(r *models.CreatePollRequest) { r.Cells[0].Minute = 1500 },
		}
		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				req := createRequest()
				mutate(&req)
				_, err := svc.CreatePoll(context.Background(), "creator-1", req)
				var validationErr ValidationError
				if !errors.As(err, &validationErr) {
					t.Errorf("expected ValidationError, got %v", err)
				}
			})
		}
	})
}

func TestRespond(t *testing.T) {
	ctx := context.Background()

	t.Run("records and replaces votes", func(t *testing.T) {
		svc := newTestService()
		created := mustCreate(t, svc)
		slot := created.Slots[0]

		if err := svc.Respond(ctx, created.Poll.ID, slot.ID, "alice", models.AvailabilityNo); err != nil {
			t.Fatalf("Respond failed: %v", err)
		}
		// Re-vote: upsert, not append.
		if err := svc.Respond(ctx, created.Poll.ID, slot.ID, "alice", models.AvailabilityYes); err != nil {
			t.Fatalf("re-vote failed: %v", err)
		}

		detail, err := svc.GetPoll(ctx, created.Poll.ID)
		if err != nil {
			t.Fatalf("GetPoll failed: %v", err)
		}
		tally := detail.Slots[0].Tally
		if tally.Total != 1 || tally.Yes != 1 || tally.No != 0 {
			t.Errorf("expected the later vote to replace the earlier one, got %+v", tally)
		}
	})

	t.Run("rejects unknown poll", func(t *testing.T) {
		svc := newTestService()
		err := svc.Respond(ctx, "missing", "slot", "alice", models.AvailabilityYes)
		var unknownPollErr UnknownPollError
		if !errors.As(err, &unknownPollErr) {
			t.Errorf("expected UnknownPollError, got %v", err)
		}
	})

	t.Run("rejects foreign slot", func(t *testing.T) {
		svc := newTestService()
		created := mustCreate(t, svc)
		err := svc.Respond(ctx, created.Poll.ID, "not-a-slot", "alice", models.AvailabilityYes)
		var unknownSlotErr UnknownSlotError
		if !errors.As(err, &unknownSlotErr) {
			t.Errorf("expected UnknownSlotError, got %v", err)
		}
	})

	t.Run("rejects invalid availability", func(t *testing.T) {
		svc := newTestService()
		created := mustCreate(t, svc)
		err := svc.Respond(ctx, created.Poll.ID, created.Slots[0].ID, "alice", "perhaps")
		var validationErr ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})
}

func TestFinalize(t *testing.T) {
	ctx := context.Background()

	t.Run("commits the poll to one slot", func(t *testing.T) {
		svc := newTestService()
		created := mustCreate(t, svc)
		slot := created.Slots[0]

		if err := svc.Finalize(ctx, created.Poll.ID, slot.ID, created.AdminKey); err != nil {
			t.Fatalf("Finalize failed: %v", err)
		}

		detail, err := svc.GetPoll(ctx, created.Poll.ID)
		if err != nil {
			t.Fatalf("GetPoll failed: %v", err)
		}
		if detail.Poll.Status != models.PollStatusFinalized || detail.Poll.FinalizedSlotID != slot.ID {
			t.Errorf("poll not finalized: %+v", detail.Poll)
		}
	})

	t.Run("responses rejected after finalize", func(t *testing.T) {
		svc := newTestService()
		created := mustCreate(t, svc)

		if err := svc.Finalize(ctx, created.Poll.ID, created.Slots[0].ID, created.AdminKey); err != nil {
			t.Fatalf("Finalize failed: %v", err)
		}
		err := svc.Respond(ctx, created.Poll.ID, created.Slots[0].ID, "bob", models.AvailabilityYes)
		var finalizedErr PollFinalizedError
		if !errors.As(err, &finalizedErr) {
			t.Errorf("expected PollFinalizedError, got %v", err)
		}
	})

	t.Run("re-finalize with the same slot is a no-op", func(t *testing.T) {
		svc := newTestService()
		created := mustCreate(t, svc)
		slot := created.Slots[0]

		if err := svc.Finalize(ctx, created.Poll.ID, slot.ID, created.AdminKey); err != nil {
			t.Fatalf("first finalize failed: %v", err)
		}
		if err := svc.Finalize(ctx, created.Poll.ID, slot.ID, created.AdminKey); err != nil {
			t.Errorf("idempotent re-finalize should succeed, got %v", err)
		}
	})

	t.Run("finalize with a different slot fails", func(t *testing.T) {
		svc := newTestService()
		created := mustCreate(t, svc)

		if err := svc.Finalize(ctx, created.Poll.ID, created.Slots[0].ID, created.AdminKey); err != nil {
			t.Fatalf("first finalize failed: %v", err)
		}
		err := svc.Finalize(ctx, created.Poll.ID, created.Slots[1].ID, created.AdminKey)
		var alreadyErr AlreadyFinalizedError
		if !errors.As(err, &alreadyErr) {
			t.Errorf("expected AlreadyFinalizedError, got %v", err)
		}
	})

	t.Run("finalize with a foreign slot fails", func(t *testing.T) {
		svc := newTestService()
		created := mustCreate(t, svc)
		err := svc.Finalize(ctx, created.Poll.ID, "not-a-slot", created.AdminKey)
		var unknownSlotErr UnknownSlotError
		if !errors.As(err, &unknownSlotErr) {
			t.Errorf("expected UnknownSlotError, got %v", err)
		}
	})

	t.Run("finalize requires the admin key", func(t *testing.T) {
		svc := newTestService()
		created := mustCreate(t, svc)
		err := svc.Finalize(ctx, created.Poll.ID, created.Slots[0].ID, "wrong-key")
		var adminKeyErr AdminKeyError
		if !errors.As(err, &adminKeyErr) {
			t.Errorf("expected AdminKeyError, got %v", err)
		}
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes poll with slots and responses", func(t *testing.T) {
		svc := newTestService()
		created := mustCreate(t, svc)
		if err := svc.Respond(ctx, created.Poll.ID, created.Slots[0].ID, "alice", models.AvailabilityYes); err != nil {
			t.Fatalf("Respond failed: %v", err)
		}

		if err := svc.Delete(ctx, created.Poll.ID, created.AdminKey); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		_, err := svc.GetPoll(ctx, created.Poll.ID)
		var unknownPollErr UnknownPollError
		if !errors.As(err, &unknownPollErr) {
			t.Errorf("expected UnknownPollError after delete, got %v", err)
		}
	})

	t.Run("delete works on finalized polls", func(t *testing.T) {
		svc := newTestService()
		created := mustCreate(t, svc)
		if err := svc.Finalize(ctx, created.Poll.ID, created.Slots[0].ID, created.AdminKey); err != nil {
			t.Fatalf("Finalize failed: %v", err)
		}
		if err := svc.Delete(ctx, created.Poll.ID, created.AdminKey); err != nil {
			t.Errorf("Delete on finalized poll failed: %v", err)
		}
	})

	t.Run("delete requires the admin key", func(t *testing.T) {
		svc := newTestService()
		created := mustCreate(t, svc)
		err := svc.Delete(ctx, created.Poll.ID, "wrong-key")
		var adminKeyErr AdminKeyError
		if !errors.As(err, &adminKeyErr) {
			t.Errorf("expected AdminKeyError, got %v", err)
		}
	})
}

func TestResults(t *testing.T) {
	ctx := context.Background()

	t.Run("end-to-end ranking scenario", func(t *testing.T) {
		svc := newTestService()
		created := mustCreate(t, svc)
		slot1, slot2 := created.Slots[0], created.Slots[1]

		// yes, yes, no on slot 1; maybe on slot 2.
		for participant, availability := range map[string]string{
			"a": models.AvailabilityYes,
			"b": models.AvailabilityYes,
			"c": models.AvailabilityNo,
		} {
			if err := svc.Respond(ctx, created.Poll.ID, slot1.ID, participant, availability); err != nil {
				t.Fatalf("Respond failed: %v", err)
			}
		}
		if err := svc.Respond(ctx, created.Poll.ID, slot2.ID, "d", models.AvailabilityMaybe); err != nil {
			t.Fatalf("Respond failed: %v", err)
		}

		results, err := svc.Results(ctx, created.Poll.ID)
		if err != nil {
			t.Fatalf("Results failed: %v", err)
		}
		if results.Ranked[0].Slot.ID != slot1.ID || results.Ranked[0].Tally.Score != 3 {
			t.Errorf("expected slot1 first with score 3, got %s score %d",
				results.Ranked[0].Slot.ID, results.Ranked[0].Tally.Score)
		}
		if results.Ranked[1].Tally.Score != 1 {
			t.Errorf("expected slot2 score 1, got %d", results.Ranked[1].Tally.Score)
		}
		if results.Recommended == nil || results.Recommended.Slot.ID != slot1.ID {
			t.Error("expected slot1 recommended")
		}
	})

	t.Run("no responses means no recommendation", func(t *testing.T) {
		svc := newTestService()
		created := mustCreate(t, svc)

		results, err := svc.Results(ctx, created.Poll.ID)
		if err != nil {
			t.Fatalf("Results failed: %v", err)
		}
		if results.Recommended != nil {
			t.Errorf("expected no recommendation, got %s", results.Recommended.Slot.ID)
		}
	})
}

func TestCheckConflicts(t *testing.T) {
	svc := newTestService()
	created := mustCreate(t, svc)

	ids, err := svc.CheckConflicts(context.Background(), created.Poll.ID, nil)
	if err != nil {
		t.Fatalf("CheckConflicts failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected no conflicts with empty calendar, got %v", ids)
	}
}

func TestPreviewSelection(t *testing.T) {
	svc := newTestService()

	preview, err := svc.PreviewSelection(60, []models.GridCell{
		{Day: "2025-06-10", Minute: 540},
		{Day: "2025-06-10", Minute: 600},
	})
	if err != nil {
		t.Fatalf("PreviewSelection failed: %v", err)
	}
	if len(preview.Blocks) != 1 || len(preview.Slots) != 2 || len(preview.Cells) != 2 {
		t.Errorf("unexpected preview: %d blocks, %d slots, %d cells",
			len(preview.Blocks), len(preview.Slots), len(preview.Cells))
	}
}

func TestSweepExpired(t *testing.T) {
	ctx := context.Background()

	t.Run("removes polls past retention", func(t *testing.T) {
		svc := newTestService()
		req := createRequest()
		req.DateRangeStart = "2020-01-06"
		req.DateRangeEnd = "2020-01-10"
		req.Cells = []models.GridCell{{Day: "2020-01-07", Minute: 540}}
		created, err := svc.CreatePoll(ctx, "creator-1", req)
		if err != nil {
			t.Fatalf("CreatePoll failed: %v", err)
		}

		if err := svc.SweepExpired(ctx, created.Poll.ID); err != nil {
			t.Fatalf("SweepExpired failed: %v", err)
		}
		_, err = svc.GetPoll(ctx, created.Poll.ID)
		var unknownPollErr UnknownPollError
		if !errors.As(err, &unknownPollErr) {
			t.Errorf("expected poll to be swept, got %v", err)
		}
	})

	t.Run("keeps polls inside retention", func(t *testing.T) {
		svc := newTestService()
		req := createRequest()
		req.DateRangeStart = "2099-01-06"
		req.DateRangeEnd = "2099-01-10"
		req.Cells = []models.GridCell{{Day: "2099-01-07", Minute: 540}}
		created, err := svc.CreatePoll(ctx, "creator-1", req)
		if err != nil {
			t.Fatalf("CreatePoll failed: %v", err)
		}

		if err := svc.SweepExpired(ctx, created.Poll.ID); err != nil {
			t.Fatalf("SweepExpired failed: %v", err)
		}
		if _, err := svc.GetPoll(ctx, created.Poll.ID); err != nil {
			t.Errorf("poll inside retention should survive, got %v", err)
		}
	})

	t.Run("already-deleted poll is not an error", func(t *testing.T) {
		svc := newTestService()
		if err := svc.SweepExpired(ctx, "missing"); err != nil {
			t.Errorf("expected nil for missing poll, got %v", err)
		}
	})
}
