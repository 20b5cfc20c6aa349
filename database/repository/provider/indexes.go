package providerRepo

import (
	"fmt"
	"time"

	"fixly/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the 2dsphere location index and the unique
// one-profile-per-user index on the providers collection.
func EnsureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	coll := database.DB().Collection("providers")
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "location", Value: "2dsphere"}},
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create provider indexes: %w", err)
	}
	return nil
}
