package scheduling

import (
	"sort"

	"slotpoll/models"
)

// RankSlots orders slots best-first: score descending, ties broken by
// earliest (day, start). The chronological tie-break makes the ranking a pure
// function of the vote multiset, independent of vote arrival order.
func RankSlots(slots []models.TimeSlot, responses []models.Response) []models.TimeSlot {
	ranked := make([]models.TimeSlot, len(slots))
	copy(ranked, slots)

	scores := make(map[string]int, len(slots))
	for _, slot := range slots {
		scores[slot.ID] = Aggregate(responses, slot.ID).Score
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := scores[ranked[i].ID], scores[ranked[j].ID]
		if si != sj {
			return si > sj
		}
		if ranked[i].Day != ranked[j].Day {
			return ranked[i].Day < ranked[j].Day
		}
		return ranked[i].Start < ranked[j].Start
	})
	return ranked
}

// BestSlot returns the top-ranked slot, or nil when the poll has no responses
// at all. With zero votes there is no meaningful recommendation.
func BestSlot(slots []models.TimeSlot, responses []models.Response) *models.TimeSlot {
	if len(slots) == 0 || len(responses) == 0 {
		return nil
	}
	ranked := RankSlots(slots, responses)
	best := ranked[0]
	return &best
}
