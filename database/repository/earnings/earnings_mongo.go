package earningsRepo

import (
	"context"
	"fmt"
	"time"

	"fixly/database"
	"fixly/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EarningsRepository defines methods for the commission ledger. Lookups
// return (nil, nil) when no document matches.
type EarningsRepository interface {
	// AddCommission folds a booking's commission into the record for the
	// given calendar date, creating the record if it does not exist yet.
	AddCommission(date time.Time, bookingID string, commission float64) error
	// GetByID retrieves a ledger record by its unique ID.
	GetByID(id string) (*models.EarningsRecord, error)
	// List retrieves one page of ledger records, newest date first. Zero
	// bounds leave the corresponding side of the window open.
	List(from, to time.Time, page, limit int) ([]models.EarningsRecord, int64, error)
	// ListBetween retrieves all records with from <= date < to, ascending.
	ListBetween(from, to time.Time) ([]models.EarningsRecord, error)
	// UpdateWithDocument patches a ledger record with the specified update document.
	UpdateWithDocument(id string, updateDoc bson.M) error
}

// MongoEarningsRepo implements EarningsRepository using MongoDB.
type MongoEarningsRepo struct {
	coll *mongo.Collection
}

// NewMongoEarningsRepo creates a new instance of EarningsRepository using MongoDB.
func NewMongoEarningsRepo() EarningsRepository {
	coll := database.DB().Collection("earnings")
	return &MongoEarningsRepo{coll: coll}
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

// DateOnly truncates t to midnight UTC, the ledger's record granularity.
func DateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func (r *MongoEarningsRepo) AddCommission(date time.Time, bookingID string, commission float64) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	day := DateOnly(date)
	now := time.Now().UTC()
	update := bson.M{
		"$inc": bson.M{
			"totalCommissionEarned": commission,
			"totalBookings":         1,
		},
		"$push": bson.M{"bookings": bookingID},
		"$set":  bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{
			"id":        uuid.NewString(),
			"date":      day,
			"createdAt": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"date": day}, update, opts); err != nil {
		return fmt.Errorf("failed to record commission for %s: %w", day.Format("2006-01-02"), err)
	}
	return nil
}

func (r *MongoEarningsRepo) GetByID(id string) (*models.EarningsRecord, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	var record models.EarningsRecord
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&record); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch earnings record with id %s: %w", id, err)
	}
	return &record, nil
}

func (r *MongoEarningsRepo) List(from, to time.Time, page, limit int) ([]models.EarningsRecord, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	dateRange := bson.M{}
	if !from.IsZero() {
		dateRange["$gte"] = DateOnly(from)
	}
	if !to.IsZero() {
		dateRange["$lte"] = DateOnly(to)
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count earnings records: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list earnings records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.EarningsRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, 0, fmt.Errorf("failed to decode earnings records: %w", err)
	}
	return records, total, nil
}

func (r *MongoEarningsRepo) ListBetween(from, to time.Time) ([]models.EarningsRecord, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"date": bson.M{"$gte": DateOnly(from), "$lt": DateOnly(to)}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch earnings range: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.EarningsRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode earnings records: %w", err)
	}
	return records, nil
}

func (r *MongoEarningsRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, updateDoc)
	if err != nil {
		return fmt.Errorf("failed to update earnings record with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("earnings record with id %s not found", id)
	}
	return nil
}

// EnsureIndexes creates the one-record-per-date unique index.
func EnsureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	coll := database.DB().Collection("earnings")
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create earnings indexes: %w", err)
	}
	return nil
}
