// File: database/repository/poll/queries.go
package pollRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotpoll/models"
)

func (r *mongoPollRepo) GetResponses(ctx context.Context, pollID string) ([]models.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.responseColl.Find(ctx, bson.M{"pollId": pollID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []models.Response
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *mongoPollRepo) ListPollsByCreator(ctx context.Context, creatorID string) ([]models.Poll, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.pollColl.Find(ctx, bson.M{"creatorId": creatorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []pollDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	polls := make([]models.Poll, len(docs))
	for i, doc := range docs {
		polls[i] = doc.Poll
	}
	return polls, nil
}
