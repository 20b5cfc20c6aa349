package listingRepo

import (
	"fmt"
	"time"

	"fixly/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the listing lookup indexes.
func EnsureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	coll := database.DB().Collection("listings")
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "providerId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "categoryId", Value: 1}, {Key: "isActive", Value: 1}},
		},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create listing indexes: %w", err)
	}
	return nil
}
