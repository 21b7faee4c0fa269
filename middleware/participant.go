package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ParticipantHeader identifies a voter across requests. Clients persist the
// value locally; there is no account behind it.
const ParticipantHeader = "X-Participant-ID"

// ParticipantMiddleware resolves the participant ID for vote upserts. A
// missing header gets a fresh ID, echoed back so the client can persist it.
func ParticipantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		participantID := c.GetHeader(ParticipantHeader)
		if participantID == "" {
			participantID = uuid.New().String()
			c.Header(ParticipantHeader, participantID)
		}
		c.Set("participantID", participantID)
		c.Next()
	}
}
