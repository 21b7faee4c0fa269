// File: database/repository/poll/poll_mongo.go
package pollRepo

import (
	"fmt"

	"slotpoll/database"
	"slotpoll/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type mongoPollRepo struct {
	pollColl     *mongo.Collection
	responseColl *mongo.Collection
}

// NewMongoPollRepo constructs a new MongoDB PollRepository. Slots are
// embedded in the poll document; responses live in their own collection.
func NewMongoPollRepo() PollRepository {
	db := database.MongoClient.Database("slotpoll")
	repo := &mongoPollRepo{
		pollColl:     db.Collection("polls"),
		responseColl: db.Collection("responses"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// pollDocument is the persisted shape of a poll plus its frozen slot set.
type pollDocument struct {
	models.Poll `bson:",inline"`
	Slots       []models.TimeSlot `bson:"slots"`
}
