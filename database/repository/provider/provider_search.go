package providerRepo

import (
	"fmt"
	"time"

	"fixly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BuildFilter translates search criteria into a Mongo filter document. The
// geo predicate uses $nearSphere, which also drives result ordering by
// distance within the sorted page.
func BuildFilter(criteria SearchCriteria) bson.M {
	filter := bson.M{}
	if criteria.VerificationStatus != "" {
		filter["verificationStatus"] = criteria.VerificationStatus
	}
	if criteria.CategoryID != "" {
		filter["categoryIds"] = criteria.CategoryID
	}
	if criteria.MinRating > 0 {
		filter["rating"] = bson.M{"$gte": criteria.MinRating}
	}
	if criteria.Availability != "" {
		filter["availability"] = criteria.Availability
	}
	if criteria.UserIDs != nil {
		filter["userId"] = bson.M{"$in": criteria.UserIDs}
	}
	if criteria.RadiusKm > 0 {
		filter["location"] = bson.M{
			"$nearSphere": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": []float64{criteria.Longitude, criteria.Latitude},
				},
				"$maxDistance": criteria.RadiusKm * 1000,
			},
		}
	}
	return filter
}

// countFilter mirrors BuildFilter but swaps $nearSphere for $geoWithin,
// which countDocuments supports.
func countFilter(criteria SearchCriteria) bson.M {
	filter := BuildFilter(criteria)
	if criteria.RadiusKm > 0 {
		filter["location"] = bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": []any{
					[]float64{criteria.Longitude, criteria.Latitude},
					criteria.RadiusKm / earthRadiusKm,
				},
			},
		}
	}
	return filter
}

// SortDocument maps a directory sort key to a Mongo sort specification.
// The default for providers is rating descending.
func SortDocument(sortKey string) bson.D {
	if sortKey == "newest" {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	return bson.D{{Key: "rating", Value: -1}}
}

// Search runs the directory query, returning one page and the total match count.
func (r *MongoProviderRepo) Search(criteria SearchCriteria) ([]models.Provider, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, countFilter(criteria))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count providers: %w", err)
	}

	page, limit := criteria.Page, criteria.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	opts := options.Find().
		SetSort(SortDocument(criteria.Sort)).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, BuildFilter(criteria), opts)
	if err != nil {
		return nil, 0, fmt.Errorf("provider search query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var providers []models.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, 0, fmt.Errorf("failed to decode providers: %w", err)
	}
	return providers, total, nil
}
