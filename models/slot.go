package models

// TimeSlot represents a single votable, duration-aligned meeting option.
// Slots are generated once at poll creation and are immutable from then on.
type TimeSlot struct {
	ID     string `bson:"id" json:"id"`
	PollID string `bson:"pollId" json:"pollId"`
	Day    string `bson:"day" json:"day"`     // e.g., "2025-06-10"
	Start  int    `bson:"start" json:"start"` // minutes from midnight (e.g., 540 for 9:00 AM)
	End    int    `bson:"end" json:"end"`     // minutes from midnight (e.g., 600 for 10:00 AM)
}

// VoteTally holds the aggregated votes for one slot.
// Score = 2*Yes + Maybe - No.
type VoteTally struct {
	Yes   int `json:"yes"`
	Maybe int `json:"maybe"`
	No    int `json:"no"`
	Total int `json:"total"`
	Score int `json:"score"`
}

// RankedSlot pairs a slot with its tally for results rendering.
type RankedSlot struct {
	Slot  TimeSlot  `json:"slot"`
	Tally VoteTally `json:"tally"`
	Label string    `json:"label"` // e.g., "9:00 AM - 10:00 AM"
}
