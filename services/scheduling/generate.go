package scheduling

import (
	"sort"

	"slotpoll/models"

	"github.com/google/uuid"
)

// GenerateSlots expands availability blocks into discrete, duration-aligned
// time slots. For each block a slot is emitted every durationMinutes while it
// still fits entirely inside the block; a block shorter than the duration
// yields no slots. The result is sorted by (day, start) ascending and every
// slot satisfies End-Start == durationMinutes.
func GenerateSlots(blocks []models.AvailabilityBlock, durationMinutes int) []models.TimeSlot {
	if durationMinutes <= 0 {
		return nil
	}

	var slots []models.TimeSlot
	for _, block := range blocks {
		for start := block.Start; start+durationMinutes <= block.End; start += durationMinutes {
			slots = append(slots, models.TimeSlot{
				ID:    uuid.New().String(),
				Day:   block.Day,
				Start: start,
				End:   start + durationMinutes,
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Day != slots[j].Day {
			return slots[i].Day < slots[j].Day
		}
		return slots[i].Start < slots[j].Start
	})
	return slots
}

// CellsFromBlocks re-derives the grid selection that produced the given
// blocks: one cell per duration-sized step inside each block. For any block
// whose length is an integer multiple of the duration this is the exact left
// inverse of GenerateSlots followed by MergeCells.
func CellsFromBlocks(blocks []models.AvailabilityBlock, durationMinutes int) []models.GridCell {
	if durationMinutes <= 0 {
		return nil
	}

	var cells []models.GridCell
	for _, block := range blocks {
		for start := block.Start; start+durationMinutes <= block.End; start += durationMinutes {
			cells = append(cells, models.GridCell{Day: block.Day, Minute: start})
		}
	}
	return cells
}
