package scheduling

import "slotpoll/models"

// Vote weights for the slot score.
const (
	yesWeight   = 2
	maybeWeight = 1
	noWeight    = -1
)

// Aggregate computes the vote tally for one slot from a poll's full response
// list. Responses for other slots are ignored. Pure and side-effect-free; a
// slot with zero responses tallies all zeroes.
func Aggregate(responses []models.Response, slotID string) models.VoteTally {
	var tally models.VoteTally
	for _, r := range responses {
		if r.SlotID != slotID {
			continue
		}
		switch r.Availability {
		case models.AvailabilityYes:
			tally.Yes++
		case models.AvailabilityMaybe:
			tally.Maybe++
		case models.AvailabilityNo:
			tally.No++
		default:
			continue
		}
		tally.Total++
	}
	tally.Score = yesWeight*tally.Yes + maybeWeight*tally.Maybe + noWeight*tally.No
	return tally
}
