package poll

import (
	"context"

	pollRepo "slotpoll/database/repository/poll"
	"slotpoll/models"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// CreatedPoll is the creation result: the persisted poll, its frozen slot
// set, the one-time admin key and a creator token for listing own polls.
type CreatedPoll struct {
	Poll         models.Poll       `json:"poll"`
	Slots        []models.TimeSlot `json:"slots"`
	AdminKey     string            `json:"adminKey"`
	CreatorToken string            `json:"creatorToken"`
}

// PollDetail is a poll with its slots in chronological order, each carrying
// its current tally.
type PollDetail struct {
	Poll  models.Poll         `json:"poll"`
	Slots []models.RankedSlot `json:"slots"`
}

// PollResults is the best-first ranking plus the recommended slot. The
// recommendation is nil while the poll has no responses.
type PollResults struct {
	Poll        models.Poll         `json:"poll"`
	Ranked      []models.RankedSlot `json:"ranked"`
	Recommended *models.RankedSlot  `json:"recommended,omitempty"`
}

// Preview is the non-persisted expansion of a grid selection.
type Preview struct {
	Blocks []models.AvailabilityBlock `json:"blocks"`
	Slots  []models.TimeSlot          `json:"slots"`
	Cells  []models.GridCell          `json:"cells"`
}

// Service defines the poll lifecycle operations.
type Service interface {
	CreatePoll(ctx context.Context, creatorID string, req models.CreatePollRequest) (*CreatedPoll, error)
	GetPoll(ctx context.Context, pollID string) (*PollDetail, error)
	Results(ctx context.Context, pollID string) (*PollResults, error)
	Respond(ctx context.Context, pollID, slotID, participantID, availability string) error
	Finalize(ctx context.Context, pollID, slotID, adminKey string) error
	Delete(ctx context.Context, pollID, adminKey string) error
	CheckConflicts(ctx context.Context, pollID string, busy []models.BusyInterval) ([]string, error)
	ListByCreator(ctx context.Context, creatorID string) ([]models.Poll, error)
	PreviewSelection(durationMinutes int, cells []models.GridCell) (*Preview, error)
	SweepExpired(ctx context.Context, pollID string) error
}

// DefaultPollService is the production implementation. Cache and Sweeper are
// optional; a nil Cache disables results caching and a nil Sweeper disables
// retention sweeps.
type DefaultPollService struct {
	Repo          pollRepo.PollRepository
	Cache         *redis.Client
	Sweeper       *asynq.Client
	RetentionDays int
}
