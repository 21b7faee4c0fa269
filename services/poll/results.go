package poll

import (
	"context"
	"encoding/json"
	"time"

	"slotpoll/models"
	"slotpoll/services/scheduling"
	"slotpoll/utils"

	"go.uber.org/zap"
)

const (
	resultsCachePrefix = "pollResults:"
	resultsCacheTTL    = 30 * time.Second
)

func (s *DefaultPollService) GetPoll(ctx context.Context, pollID string) (*PollDetail, error) {
	poll, err := s.getPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}
	slots, err := s.Repo.GetSlots(ctx, pollID)
	if err != nil {
		return nil, err
	}
	responses, err := s.Repo.GetResponses(ctx, pollID)
	if err != nil {
		return nil, err
	}

	detail := &PollDetail{Poll: *poll, Slots: make([]models.RankedSlot, len(slots))}
	for i, slot := range slots {
		detail.Slots[i] = models.RankedSlot{
			Slot:  slot,
			Tally: scheduling.Aggregate(responses, slot.ID),
			Label: scheduling.RangeLabel(slot.Start, slot.End),
		}
	}
	return detail, nil
}

func (s *DefaultPollService) Results(ctx context.Context, pollID string) (*PollResults, error) {
	if cached := s.cachedResults(ctx, pollID); cached != nil {
		return cached, nil
	}

	poll, err := s.getPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}
	slots, err := s.Repo.GetSlots(ctx, pollID)
	if err != nil {
		return nil, err
	}
	responses, err := s.Repo.GetResponses(ctx, pollID)
	if err != nil {
		return nil, err
	}

	ranked := scheduling.RankSlots(slots, responses)
	results := &PollResults{Poll: *poll, Ranked: make([]models.RankedSlot, len(ranked))}
	for i, slot := range ranked {
		results.Ranked[i] = models.RankedSlot{
			Slot:  slot,
			Tally: scheduling.Aggregate(responses, slot.ID),
			Label: scheduling.RangeLabel(slot.Start, slot.End),
		}
	}
	if best := scheduling.BestSlot(slots, responses); best != nil {
		recommended := models.RankedSlot{
			Slot:  *best,
			Tally: scheduling.Aggregate(responses, best.ID),
			Label: scheduling.RangeLabel(best.Start, best.End),
		}
		results.Recommended = &recommended
	}

	s.storeResults(ctx, pollID, results)
	return results, nil
}

func (s *DefaultPollService) CheckConflicts(ctx context.Context, pollID string, busy []models.BusyInterval) ([]string, error) {
	if _, err := s.getPoll(ctx, pollID); err != nil {
		return nil, err
	}
	slots, err := s.Repo.GetSlots(ctx, pollID)
	if err != nil {
		return nil, err
	}
	return scheduling.ConflictingSlotIDs(slots, busy), nil
}

func (s *DefaultPollService) ListByCreator(ctx context.Context, creatorID string) ([]models.Poll, error) {
	return s.Repo.ListPollsByCreator(ctx, creatorID)
}

// PreviewSelection expands a grid selection without persisting anything,
// returning the merged blocks, the slots they would generate and the cells
// re-derived from the blocks (the grid state the client should render).
func (s *DefaultPollService) PreviewSelection(durationMinutes int, cells []models.GridCell) (*Preview, error) {
	if durationMinutes <= 0 {
		return nil, ValidationError{Message: "durationMinutes must be a positive integer"}
	}
	for _, cell := range cells {
		if !scheduling.ValidDay(cell.Day) {
			return nil, ValidationError{Message: "cell day must use YYYY-MM-DD day keys"}
		}
	}

	blocks := scheduling.FlattenBlocks(scheduling.MergeCells(cells, durationMinutes))
	return &Preview{
		Blocks: blocks,
		Slots:  scheduling.GenerateSlots(blocks, durationMinutes),
		Cells:  scheduling.CellsFromBlocks(blocks, durationMinutes),
	}, nil
}

// cachedResults returns the cached ranking, or nil on miss or when caching
// is disabled.
func (s *DefaultPollService) cachedResults(ctx context.Context, pollID string) *PollResults {
	if s.Cache == nil {
		return nil
	}
	raw, err := s.Cache.Get(ctx, resultsCachePrefix+pollID).Result()
	if err != nil {
		return nil
	}
	var results PollResults
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		return nil
	}
	return &results
}

func (s *DefaultPollService) storeResults(ctx context.Context, pollID string, results *PollResults) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, resultsCachePrefix+pollID, raw, resultsCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache poll results",
			zap.String("pollID", pollID), zap.Error(err))
	}
}

func (s *DefaultPollService) invalidateResults(ctx context.Context, pollID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, resultsCachePrefix+pollID).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate poll results cache",
			zap.String("pollID", pollID), zap.Error(err))
	}
}
