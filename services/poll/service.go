package poll

import (
	"context"
	"errors"
	"time"

	pollRepo "slotpoll/database/repository/poll"
	"slotpoll/models"
	"slotpoll/services/scheduling"
	"slotpoll/services/tasks"
	"slotpoll/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const creatorTokenTTL = 90 * 24 * time.Hour

func (s *DefaultPollService) CreatePoll(ctx context.Context, creatorID string, req models.CreatePollRequest) (*CreatedPoll, error) {
	logger := utils.GetLogger()

	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	blocks := scheduling.FlattenBlocks(scheduling.MergeCells(req.Cells, req.DurationMinutes))
	slots := scheduling.GenerateSlots(blocks, req.DurationMinutes)
	if len(slots) == 0 {
		return nil, ValidationError{Message: "selection produces no votable slots"}
	}

	adminKey, adminKeyHash, err := utils.NewAdminKey()
	if err != nil {
		return nil, err
	}

	poll := models.Poll{
		ID:              uuid.New().String(),
		Title:           req.Title,
		DurationMinutes: req.DurationMinutes,
		DateRangeStart:  req.DateRangeStart,
		DateRangeEnd:    req.DateRangeEnd,
		Status:          models.PollStatusOpen,
		CreatorID:       creatorID,
		AdminKeyHash:    adminKeyHash,
		CreatedAt:       time.Now(),
	}
	for i := range slots {
		slots[i].PollID = poll.ID
	}

	if err := s.Repo.CreatePollWithSlots(ctx, &poll, slots); err != nil {
		return nil, err
	}

	creatorToken, err := utils.GenerateCreatorToken(creatorID, creatorTokenTTL)
	if err != nil {
		logger.Error("CreatePoll: failed to sign creator token", zap.Error(err))
		return nil, err
	}

	s.enqueueSweep(poll)

	logger.Info("poll created",
		zap.String("pollID", poll.ID),
		zap.Int("slots", len(slots)),
		zap.String("range", poll.DateRangeStart+".."+poll.DateRangeEnd))

	return &CreatedPoll{
		Poll:         poll,
		Slots:        slots,
		AdminKey:     adminKey,
		CreatorToken: creatorToken,
	}, nil
}

func validateCreateRequest(req models.CreatePollRequest) error {
	if req.Title == "" {
		return ValidationError{Message: "title is required"}
	}
	if req.DurationMinutes <= 0 {
		return ValidationError{Message: "durationMinutes must be a positive integer"}
	}
	if !scheduling.ValidDay(req.DateRangeStart) || !scheduling.ValidDay(req.DateRangeEnd) {
		return ValidationError{Message: "date range must use YYYY-MM-DD day keys"}
	}
	if req.DateRangeStart > req.DateRangeEnd {
		return ValidationError{Message: "dateRangeStart must not be after dateRangeEnd"}
	}
	for _, cell := range req.Cells {
		if !scheduling.ValidDay(cell.Day) {
			return ValidationError{Message: "cell day must use YYYY-MM-DD day keys"}
		}
		if cell.Day < req.DateRangeStart || cell.Day > req.DateRangeEnd {
			return ValidationError{Message: "cell outside the poll date range"}
		}
		if cell.Minute < 0 || cell.Minute >= 24*60 {
			return ValidationError{Message: "cell minute must be within the day"}
		}
	}
	return nil
}

func (s *DefaultPollService) Respond(ctx context.Context, pollID, slotID, participantID, availability string) error {
	if participantID == "" {
		return ValidationError{Message: "participant ID is required"}
	}
	if !models.ValidAvailability(availability) {
		return ValidationError{Message: "availability must be yes, maybe or no"}
	}

	poll, err := s.getPoll(ctx, pollID)
	if err != nil {
		return err
	}
	if poll.IsFinalized() {
		return PollFinalizedError{PollID: pollID}
	}
	if err := s.requireSlot(ctx, pollID, slotID); err != nil {
		return err
	}

	resp := models.Response{
		PollID:        pollID,
		SlotID:        slotID,
		ParticipantID: participantID,
		Availability:  availability,
	}
	if err := s.Repo.UpsertResponse(ctx, resp); err != nil {
		return err
	}
	s.invalidateResults(ctx, pollID)
	return nil
}

func (s *DefaultPollService) Finalize(ctx context.Context, pollID, slotID, adminKey string) error {
	poll, err := s.getPoll(ctx, pollID)
	if err != nil {
		return err
	}
	if !utils.CheckAdminKey(poll.AdminKeyHash, adminKey) {
		return AdminKeyError{PollID: pollID}
	}
	if err := s.requireSlot(ctx, pollID, slotID); err != nil {
		return err
	}
	if poll.IsFinalized() && poll.FinalizedSlotID == slotID {
		// Idempotent re-finalize.
		return nil
	}

	err = s.Repo.FinalizePoll(ctx, pollID, slotID)
	switch {
	case errors.Is(err, pollRepo.ErrPollNotFound):
		return UnknownPollError{PollID: pollID}
	case errors.Is(err, pollRepo.ErrFinalizeConflict):
		return AlreadyFinalizedError{PollID: pollID, SlotID: slotID}
	case err != nil:
		return err
	}

	s.invalidateResults(ctx, pollID)
	utils.GetLogger().Info("poll finalized",
		zap.String("pollID", pollID), zap.String("slotID", slotID))
	return nil
}

func (s *DefaultPollService) Delete(ctx context.Context, pollID, adminKey string) error {
	poll, err := s.getPoll(ctx, pollID)
	if err != nil {
		return err
	}
	if !utils.CheckAdminKey(poll.AdminKeyHash, adminKey) {
		return AdminKeyError{PollID: pollID}
	}

	if err := s.Repo.DeletePoll(ctx, pollID); err != nil {
		if errors.Is(err, pollRepo.ErrPollNotFound) {
			return UnknownPollError{PollID: pollID}
		}
		return err
	}
	s.invalidateResults(ctx, pollID)
	return nil
}

// SweepExpired deletes the poll when its retention window has passed. Called
// by the background worker; a poll deleted by its creator in the meantime is
// not an error.
func (s *DefaultPollService) SweepExpired(ctx context.Context, pollID string) error {
	poll, err := s.Repo.GetPoll(ctx, pollID)
	if errors.Is(err, pollRepo.ErrPollNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	cutoff := time.Now().AddDate(0, 0, -s.retentionDays()).Format(scheduling.DayKeyLayout)
	if poll.DateRangeEnd > cutoff {
		return nil
	}

	if err := s.Repo.DeletePoll(ctx, pollID); err != nil && !errors.Is(err, pollRepo.ErrPollNotFound) {
		return err
	}
	s.invalidateResults(ctx, pollID)
	utils.GetLogger().Info("expired poll swept", zap.String("pollID", pollID))
	return nil
}

func (s *DefaultPollService) retentionDays() int {
	if s.RetentionDays > 0 {
		return s.RetentionDays
	}
	return 30
}

func (s *DefaultPollService) enqueueSweep(poll models.Poll) {
	if s.Sweeper == nil {
		return
	}
	logger := utils.GetLogger()

	rangeEnd, err := scheduling.ParseDay(poll.DateRangeEnd)
	if err != nil {
		return
	}
	fireAt := rangeEnd.AddDate(0, 0, s.retentionDays()+1)

	task, opts, err := tasks.NewPollSweepTask(models.SweepPayload{PollID: poll.ID}, fireAt)
	if err != nil {
		logger.Error("failed to build sweep task", zap.String("pollID", poll.ID), zap.Error(err))
		return
	}
	if _, err := s.Sweeper.Enqueue(task, opts...); err != nil {
		// The sweep is best-effort housekeeping; creation still succeeds.
		logger.Warn("failed to enqueue sweep task", zap.String("pollID", poll.ID), zap.Error(err))
	}
}

// getPoll loads a poll, translating the repository sentinel.
func (s *DefaultPollService) getPoll(ctx context.Context, pollID string) (*models.Poll, error) {
	poll, err := s.Repo.GetPoll(ctx, pollID)
	if errors.Is(err, pollRepo.ErrPollNotFound) {
		return nil, UnknownPollError{PollID: pollID}
	}
	if err != nil {
		return nil, err
	}
	return poll, nil
}

// requireSlot verifies slot membership in the poll's frozen slot set.
func (s *DefaultPollService) requireSlot(ctx context.Context, pollID, slotID string) error {
	slots, err := s.Repo.GetSlots(ctx, pollID)
	if errors.Is(err, pollRepo.ErrPollNotFound) {
		return UnknownPollError{PollID: pollID}
	}
	if err != nil {
		return err
	}
	for _, slot := range slots {
		if slot.ID == slotID {
			return nil
		}
	}
	return UnknownSlotError{PollID: pollID, SlotID: slotID}
}
