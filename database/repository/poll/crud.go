// File: database/repository/poll/crud.go
package pollRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotpoll/models"
)

func (r *mongoPollRepo) CreatePollWithSlots(ctx context.Context, poll *models.Poll, slots []models.TimeSlot) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Slot generation must execute at most once per poll: if the document
	// already exists with a non-empty slot set, skip the insert.
	count, err := r.pollColl.CountDocuments(ctx, bson.M{"id": poll.ID, "slots.0": bson.M{"$exists": true}})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	doc := pollDocument{Poll: *poll, Slots: slots}
	_, err = r.pollColl.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

func (r *mongoPollRepo) GetPoll(ctx context.Context, pollID string) (*models.Poll, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc pollDocument
	err := r.pollColl.FindOne(ctx, bson.M{"id": pollID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrPollNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc.Poll, nil
}

func (r *mongoPollRepo) GetSlots(ctx context.Context, pollID string) ([]models.TimeSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc pollDocument
	err := r.pollColl.FindOne(ctx, bson.M{"id": pollID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrPollNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.Slots, nil
}

func (r *mongoPollRepo) UpsertResponse(ctx context.Context, resp models.Response) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"pollId":        resp.PollID,
		"slotId":        resp.SlotID,
		"participantId": resp.ParticipantID,
	}
	_, err := r.responseColl.ReplaceOne(ctx, filter, resp, options.Replace().SetUpsert(true))
	return err
}

func (r *mongoPollRepo) FinalizePoll(ctx context.Context, pollID, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// The update applies while the poll is open, or when it is already
	// finalized with the same slot (idempotent re-finalize).
	filter := bson.M{
		"id": pollID,
		"$or": []bson.M{
			{"status": models.PollStatusOpen},
			{"status": models.PollStatusFinalized, "finalizedSlotId": slotID},
		},
	}
	update := bson.M{"$set": bson.M{
		"status":          models.PollStatusFinalized,
		"finalizedSlotId": slotID,
	}}
	res, err := r.pollColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing poll from a lost finalize race.
		count, err := r.pollColl.CountDocuments(ctx, bson.M{"id": pollID})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrPollNotFound
		}
		return ErrFinalizeConflict
	}
	return nil
}

func (r *mongoPollRepo) DeletePoll(ctx context.Context, pollID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.pollColl.DeleteOne(ctx, bson.M{"id": pollID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPollNotFound
	}
	// Cascading ownership: responses go with the poll.
	_, err = r.responseColl.DeleteMany(ctx, bson.M{"pollId": pollID})
	return err
}
