package models

import "time"

// GridCell is one selected atomic cell on the availability grid: a day plus a
// minute-of-day, implicitly one granularity unit (the meeting duration) wide.
type GridCell struct {
	Day    string `json:"day"`    // e.g., "2025-06-10"
	Minute int    `json:"minute"` // minutes from midnight
}

// AvailabilityBlock is a merged, contiguous free-time interval on one day.
// Blocks are transient: they exist between grid selection and slot
// generation and are never the durable record once slots exist.
type AvailabilityBlock struct {
	ID    string `json:"id"`
	Day   string `json:"day"`
	Start int    `json:"start"` // minutes from midnight
	End   int    `json:"end"`   // minutes from midnight, exclusive
}

// BusyInterval is an externally supplied conflict source (e.g., an event from
// the participant's calendar), already projected onto absolute instants.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ConflictCheckRequest carries busy intervals for a per-slot conflict check.
type ConflictCheckRequest struct {
	BusyIntervals []BusyInterval `json:"busyIntervals" binding:"required"`
}

// PreviewRequest asks for the blocks and slots a grid selection would
// produce, without persisting anything. Used while the creator is editing.
type PreviewRequest struct {
	DurationMinutes int        `json:"durationMinutes" binding:"required"`
	Cells           []GridCell `json:"cells" binding:"required"`
}
