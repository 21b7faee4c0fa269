package models

// Vote availability values.
const (
	AvailabilityYes   = "yes"
	AvailabilityMaybe = "maybe"
	AvailabilityNo    = "no"
)

// ValidAvailability reports whether v is one of the three vote values.
func ValidAvailability(v string) bool {
	return v == AvailabilityYes || v == AvailabilityMaybe || v == AvailabilityNo
}

// Response is one participant's vote on one slot. A later vote for the same
// (slot, participant) pair replaces the prior one.
type Response struct {
	PollID        string `bson:"pollId" json:"pollId"`
	SlotID        string `bson:"slotId" json:"slotId"`
	ParticipantID string `bson:"participantId" json:"participantId"`
	Availability  string `bson:"availability" json:"availability"`
}
