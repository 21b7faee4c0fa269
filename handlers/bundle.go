// File: slotpoll/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Poll lifecycle endpoints
	CreatePollHandler gin.HandlerFunc
	GetPollHandler    gin.HandlerFunc
	ResultsHandler    gin.HandlerFunc
	RespondHandler    gin.HandlerFunc
	FinalizeHandler   gin.HandlerFunc
	DeletePollHandler gin.HandlerFunc

	// Availability endpoints
	ConflictsHandler gin.HandlerFunc
	PreviewHandler   gin.HandlerFunc

	// Creator endpoints
	ListMyPollsHandler gin.HandlerFunc
}
