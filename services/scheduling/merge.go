package scheduling

import (
	"sort"

	"slotpoll/models"

	"github.com/google/uuid"
)

// MergeCells converts a sparse grid selection into the minimal set of
// contiguous availability blocks per day. Each cell is one granularity unit
// wide (the meeting duration). Cells are grouped by day, sorted by minute and
// merged on exact adjacency: a cell starting where the current block ends
// extends the block, anything else closes it. Duplicate cells collapse.
// A day with no cells yields no block.
func MergeCells(cells []models.GridCell, granularityMinutes int) map[string][]models.AvailabilityBlock {
	byDay := make(map[string][]int)
	for _, cell := range cells {
		byDay[cell.Day] = append(byDay[cell.Day], cell.Minute)
	}

	blocks := make(map[string][]models.AvailabilityBlock, len(byDay))
	for day, minutes := range byDay {
		sort.Ints(minutes)

		var dayBlocks []models.AvailabilityBlock
		var cur *models.AvailabilityBlock
		for _, m := range minutes {
			switch {
			case cur == nil:
				cur = &models.AvailabilityBlock{
					ID:    uuid.New().String(),
					Day:   day,
					Start: m,
					End:   m + granularityMinutes,
				}
			case m == cur.End:
				cur.End = m + granularityMinutes
			case m < cur.End:
				// Duplicate or overlapping cell; already covered.
			default:
				dayBlocks = append(dayBlocks, *cur)
				cur = &models.AvailabilityBlock{
					ID:    uuid.New().String(),
					Day:   day,
					Start: m,
					End:   m + granularityMinutes,
				}
			}
		}
		if cur != nil {
			dayBlocks = append(dayBlocks, *cur)
		}
		blocks[day] = dayBlocks
	}
	return blocks
}

// FlattenBlocks collapses a per-day block map into a single slice ordered by
// (day, start) ascending.
func FlattenBlocks(byDay map[string][]models.AvailabilityBlock) []models.AvailabilityBlock {
	var out []models.AvailabilityBlock
	for _, blocks := range byDay {
		out = append(out, blocks...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].Start < out[j].Start
	})
	return out
}
