package handlers

import (
	"errors"
	"net/http"

	"slotpoll/models"
	"slotpoll/services/poll"
	"slotpoll/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminKeyHeader carries the per-poll admin key issued at creation.
const AdminKeyHeader = "X-Admin-Key"

// PollHandler exposes the poll lifecycle over HTTP.
type PollHandler struct {
	Service poll.Service
}

// NewPollHandler constructs a PollHandler.
func NewPollHandler(svc poll.Service) *PollHandler {
	return &PollHandler{Service: svc}
}

func (h *PollHandler) CreatePollHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid poll creation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	creatorID := participantFromContext(c)
	created, err := h.Service.CreatePoll(c.Request.Context(), creatorID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *PollHandler) GetPollHandler(c *gin.Context) {
	detail, err := h.Service.GetPoll(c.Request.Context(), c.Param("pollID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *PollHandler) ResultsHandler(c *gin.Context) {
	results, err := h.Service.Results(c.Request.Context(), c.Param("pollID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *PollHandler) RespondHandler(c *gin.Context) {
	var req models.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	participantID := participantFromContext(c)
	err := h.Service.Respond(c.Request.Context(), c.Param("pollID"), req.SlotID, participantID, req.Availability)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vote recorded", "participantId": participantID})
}

func (h *PollHandler) FinalizeHandler(c *gin.Context) {
	var req models.FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	err := h.Service.Finalize(c.Request.Context(), c.Param("pollID"), req.SlotID, c.GetHeader(AdminKeyHeader))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Poll finalized", "slotId": req.SlotID})
}

func (h *PollHandler) DeletePollHandler(c *gin.Context) {
	err := h.Service.Delete(c.Request.Context(), c.Param("pollID"), c.GetHeader(AdminKeyHeader))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Poll deleted"})
}

func (h *PollHandler) ConflictsHandler(c *gin.Context) {
	var req models.ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	ids, err := h.Service.CheckConflicts(c.Request.Context(), c.Param("pollID"), req.BusyIntervals)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conflictingSlotIds": ids})
}

func (h *PollHandler) PreviewHandler(c *gin.Context) {
	var req models.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	preview, err := h.Service.PreviewSelection(req.DurationMinutes, req.Cells)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, preview)
}

func (h *PollHandler) ListMyPollsHandler(c *gin.Context) {
	creatorIDValue, exists := c.Get("creatorID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Creator not authenticated"})
		return
	}
	creatorID, _ := creatorIDValue.(string)

	polls, err := h.Service.ListByCreator(c.Request.Context(), creatorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"polls": polls})
}

// participantFromContext returns the participant ID set by
// ParticipantMiddleware.
func participantFromContext(c *gin.Context) string {
	if v, exists := c.Get("participantID"); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var (
		validationErr       poll.ValidationError
		unknownPollErr      poll.UnknownPollError
		unknownSlotErr      poll.UnknownSlotError
		finalizedErr        poll.PollFinalizedError
		alreadyFinalizedErr poll.AlreadyFinalizedError
		adminKeyErr         poll.AdminKeyError
	)

	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", validationErr.Message)
	case errors.As(err, &unknownPollErr):
		utils.JSONError(c, http.StatusNotFound, "Poll not found", err.Error())
	case errors.As(err, &unknownSlotErr):
		utils.JSONError(c, http.StatusNotFound, "Slot not found", err.Error())
	case errors.As(err, &finalizedErr):
		// Benign: the poll was decided while the participant's view was stale.
		utils.JSONError(c, http.StatusConflict, "Poll already decided", "This poll has been finalized; refresh to see the chosen time.")
	case errors.As(err, &alreadyFinalizedErr):
		utils.JSONError(c, http.StatusConflict, "Poll already finalized", err.Error())
	case errors.As(err, &adminKeyErr):
		utils.JSONError(c, http.StatusForbidden, "Invalid admin key", "Only the poll creator may perform this operation.")
	default:
		utils.GetLogger().Error("unexpected service error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
