package scheduling

import "slotpoll/models"

// HasConflict reports whether a slot overlaps any of the supplied busy
// intervals. Overlap is half-open: an event ending exactly when the slot
// starts, or starting exactly when the slot ends, is not a conflict.
func HasConflict(slot models.TimeSlot, busy []models.BusyInterval) bool {
	slotStart, err := MinuteInstant(slot.Day, slot.Start)
	if err != nil {
		return false
	}
	slotEnd, err := MinuteInstant(slot.Day, slot.End)
	if err != nil {
		return false
	}

	for _, b := range busy {
		if slotStart.Before(b.End) && slotEnd.After(b.Start) {
			return true
		}
	}
	return false
}

// ConflictingSlotIDs returns the IDs of slots that overlap at least one busy
// interval. Used for per-slot conflict badges and live grid highlighting.
func ConflictingSlotIDs(slots []models.TimeSlot, busy []models.BusyInterval) []string {
	var ids []string
	for _, slot := range slots {
		if HasConflict(slot, busy) {
			ids = append(ids, slot.ID)
		}
	}
	return ids
}
