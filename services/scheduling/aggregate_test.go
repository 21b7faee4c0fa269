package scheduling

import (
	"testing"

	"slotpoll/models"
)

func vote(slotID, participantID, availability string) models.Response {
	return models.Response{
		PollID:        "p1",
		SlotID:        slotID,
		ParticipantID: participantID,
		Availability:  availability,
	}
}

func TestAggregate(t *testing.T) {
	t.Run("score formula", func(t *testing.T) {
		responses := []models.Response{
			vote("s1", "a", models.AvailabilityYes),
			vote("s1", "b", models.AvailabilityYes),
			vote("s1", "c", models.AvailabilityMaybe),
			vote("s1", "d", models.AvailabilityNo),
		}
		tally := Aggregate(responses, "s1")

		if tally.Yes != 2 || tally.Maybe != 1 || tally.No != 1 || tally.Total != 4 {
			t.Errorf("unexpected counts: %+v", tally)
		}
		if tally.Score != 4 {
			t.Errorf("expected score 4 (2*2+1-1), got %d", tally.Score)
		}
	})

	t.Run("responses for other slots are ignored", func(t *testing.T) {
		responses := []models.Response{
			vote("s1", "a", models.AvailabilityYes),
			vote("s2", "a", models.AvailabilityNo),
		}
		tally := Aggregate(responses, "s1")

		if tally.Total != 1 || tally.Score != 2 {
			t.Errorf("expected only s1 counted, got %+v", tally)
		}
	})

	t.Run("zero responses tally all zeroes", func(t *testing.T) {
		tally := Aggregate(nil, "s1")
		if tally != (models.VoteTally{}) {
			t.Errorf("expected zero tally, got %+v", tally)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		responses := []models.Response{vote("s1", "a", models.AvailabilityMaybe)}
		first := Aggregate(responses, "s1")
		second := Aggregate(responses, "s1")
		if first != second {
			t.Errorf("repeated aggregation differs: %+v vs %+v", first, second)
		}
	})
}
