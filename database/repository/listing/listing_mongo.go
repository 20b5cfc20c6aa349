package listingRepo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"fixly/database"
	"fixly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoListingRepo implements ListingRepository using MongoDB.
type MongoListingRepo struct {
	coll *mongo.Collection
}

// NewMongoListingRepo creates a new instance of ListingRepository using MongoDB.
func NewMongoListingRepo() ListingRepository {
	coll := database.DB().Collection("listings")
	return &MongoListingRepo{coll: coll}
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func (r *MongoListingRepo) Create(listing *models.Listing) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, listing); err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

func (r *MongoListingRepo) GetByID(id string) (*models.Listing, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	var listing models.Listing
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&listing); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch listing with id %s: %w", id, err)
	}
	return &listing, nil
}

// BuildFilter translates search criteria into a Mongo filter document.
func BuildFilter(criteria SearchCriteria) bson.M {
	filter := bson.M{}
	if criteria.ActiveOnly {
		filter["isActive"] = true
	}
	if criteria.CategoryID != "" {
		filter["categoryId"] = criteria.CategoryID
	}
	if criteria.ProviderID != "" {
		filter["providerId"] = criteria.ProviderID
	}
	if criteria.MinPrice != nil || criteria.MaxPrice != nil {
		price := bson.M{}
		if criteria.MinPrice != nil {
			price["$gte"] = *criteria.MinPrice
		}
		if criteria.MaxPrice != nil {
			price["$lte"] = *criteria.MaxPrice
		}
		filter["price"] = price
	}
	if len(criteria.Tags) > 0 {
		filter["tags"] = bson.M{"$in": criteria.Tags}
	}
	if criteria.Search != "" {
		regex := bson.M{"$regex": regexp.QuoteMeta(criteria.Search), "$options": "i"}
		filter["$or"] = []bson.M{
			{"title": regex},
			{"details": regex},
		}
	}
	return filter
}

// SortDocument maps a directory sort key to a Mongo sort specification.
// The default for listings is newest first.
func SortDocument(sortKey string) bson.D {
	switch sortKey {
	case SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}}
	case SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}}
	case SortRating:
		return bson.D{{Key: "averageRating", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

func (r *MongoListingRepo) Search(criteria SearchCriteria) ([]models.Listing, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := BuildFilter(criteria)
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
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

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("listing search query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var listings []models.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode listings: %w", err)
	}
	return listings, total, nil
}

func (r *MongoListingRepo) ListByProvider(providerID string) ([]models.Listing, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"providerId": providerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)
	var listings []models.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode listings: %w", err)
	}
	return listings, nil
}

func (r *MongoListingRepo) IncrementBookingCount(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	_, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"bookingCount": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment booking count for listing %s: %w", id, err)
	}
	return nil
}

func (r *MongoListingRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, updateDoc)
	if err != nil {
		return fmt.Errorf("failed to update listing with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("listing with id %s not found", id)
	}
	return nil
}
