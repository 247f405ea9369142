package database

import (
	"context"
	"fmt"
	"time"

	"fight-picks-go/logging"
	"fight-picks-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPickRepository provides access to the picks collection
type MongoPickRepository struct {
	collection *mongo.Collection
}

// NewMongoPickRepository creates a pick repository and ensures its indexes.
// The unique (user_id, bout_id) index is the invariant that makes concurrent
// first submissions race-safe: one insert wins, the loser retries as an update.
func NewMongoPickRepository(db *MongoDB) *MongoPickRepository {
	collection := db.GetCollection("picks")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "bout_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "bout_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "event_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "event_id", Value: 1}},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logging.Warnf("Could not create pick indexes: %v", err)
	}

	return &MongoPickRepository{collection: collection}
}

// Create inserts a new pick. Returns ErrDuplicateKey if a pick for the
// same (user, bout) already exists.
func (r *MongoPickRepository) Create(ctx context.Context, pick *models.Pick) error {
	if _, err := r.collection.InsertOne(ctx, pick); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("pick %s: %w", pick.ID, ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create pick: %w", err)
	}
	return nil
}

// FindByUserAndBout retrieves a user's pick for a bout, nil if none exists
func (r *MongoPickRepository) FindByUserAndBout(ctx context.Context, userID string, boutID int) (*models.Pick, error) {
	var pick models.Pick
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "bout_id": boutID}).Decode(&pick)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find pick: %w", err)
	}
	return &pick, nil
}

// FindByUserAndEvent retrieves all of a user's picks for an event
func (r *MongoPickRepository) FindByUserAndEvent(ctx context.Context, userID string, eventID int) ([]*models.Pick, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID, "event_id": eventID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find picks by user and event: %w", err)
	}
	return decodePicks(ctx, cursor)
}

// FindByUser retrieves a user's picks across all events, newest first
func (r *MongoPickRepository) FindByUser(ctx context.Context, userID string, limit, skip int) ([]*models.Pick, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find picks by user: %w", err)
	}
	return decodePicks(ctx, cursor)
}

// FindAllByUser retrieves every pick a user has ever made. Used by the
// aggregate recomputation, which must see the full pick set.
func (r *MongoPickRepository) FindAllByUser(ctx context.Context, userID string) ([]*models.Pick, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to find picks by user: %w", err)
	}
	return decodePicks(ctx, cursor)
}

// FindByUserAndEvents retrieves a user's picks restricted to a set of events
func (r *MongoPickRepository) FindByUserAndEvents(ctx context.Context, userID string, eventIDs []int) ([]*models.Pick, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}
	filter := bson.M{"user_id": userID, "event_id": bson.M{"$in": eventIDs}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find picks by user and events: %w", err)
	}
	return decodePicks(ctx, cursor)
}

// FindByBout retrieves all picks for a bout
func (r *MongoPickRepository) FindByBout(ctx context.Context, boutID int) ([]*models.Pick, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"bout_id": boutID})
	if err != nil {
		return nil, fmt.Errorf("failed to find picks by bout: %w", err)
	}
	return decodePicks(ctx, cursor)
}

// UpdatePrediction overwrites the prediction fields of an unlocked pick.
// Returns the updated pick, or nil if the pick is missing or locked.
func (r *MongoPickRepository) UpdatePrediction(ctx context.Context, pickID string, corner models.Corner, method models.VictoryMethod, round *int, updatedAt time.Time) (*models.Pick, error) {
	filter := bson.M{"_id": pickID, "locked": false}
	update := bson.M{"$set": bson.M{
		"picked_corner": corner,
		"picked_method": method,
		"picked_round":  round,
		"updated_at":    updatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var pick models.Pick
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&pick)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update pick: %w", err)
	}
	return &pick, nil
}

// UpdateScore persists the scoring outcome for a single pick
func (r *MongoPickRepository) UpdateScore(ctx context.Context, pickID string, isCorrect bool, points int) error {
	update := bson.M{"$set": bson.M{
		"is_correct":     isCorrect,
		"points_awarded": points,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": pickID}, update)
	if err != nil {
		return fmt.Errorf("failed to update pick score: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("pick %s not found", pickID)
	}
	return nil
}

// ResetScoresForBout returns every pick on a bout to the unscored state
func (r *MongoPickRepository) ResetScoresForBout(ctx context.Context, boutID int) (int64, error) {
	update := bson.M{"$set": bson.M{
		"is_correct":     nil,
		"points_awarded": 0,
	}}
	result, err := r.collection.UpdateMany(ctx, bson.M{"bout_id": boutID}, update)
	if err != nil {
		return 0, fmt.Errorf("failed to reset pick scores: %w", err)
	}
	return result.ModifiedCount, nil
}

// LockForEvent sets the locked flag on every unlocked pick of an event
func (r *MongoPickRepository) LockForEvent(ctx context.Context, eventID int) (int64, error) {
	filter := bson.M{"event_id": eventID, "locked": false}
	result, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"locked": true}})
	if err != nil {
		return 0, fmt.Errorf("failed to lock picks for event: %w", err)
	}
	return result.ModifiedCount, nil
}

// UnlockForEvent clears the locked flag on every pick of an event.
// Only admin actions call this; locks are never cleared automatically.
func (r *MongoPickRepository) UnlockForEvent(ctx context.Context, eventID int) (int64, error) {
	filter := bson.M{"event_id": eventID, "locked": true}
	result, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"locked": false}})
	if err != nil {
		return 0, fmt.Errorf("failed to unlock picks for event: %w", err)
	}
	return result.ModifiedCount, nil
}

// DistinctUserIDsByBout returns the users holding a pick on a bout
func (r *MongoPickRepository) DistinctUserIDsByBout(ctx context.Context, boutID int) ([]string, error) {
	return r.distinctUserIDs(ctx, bson.M{"bout_id": boutID})
}

// DistinctUserIDsByEvent returns the users holding picks on an event
func (r *MongoPickRepository) DistinctUserIDsByEvent(ctx context.Context, eventID int) ([]string, error) {
	return r.distinctUserIDs(ctx, bson.M{"event_id": eventID})
}

// DistinctUserIDs returns every user that has made at least one pick
func (r *MongoPickRepository) DistinctUserIDs(ctx context.Context) ([]string, error) {
	return r.distinctUserIDs(ctx, bson.M{})
}

func (r *MongoPickRepository) distinctUserIDs(ctx context.Context, filter bson.M) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "user_id", filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get distinct user IDs: %w", err)
	}

	userIDs := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			userIDs = append(userIDs, id)
		}
	}
	return userIDs, nil
}

// BoutDistribution aggregates the community pick split for a bout
func (r *MongoPickRepository) BoutDistribution(ctx context.Context, boutID int) (*models.BoutPickDistribution, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "bout_id", Value: boutID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$picked_corner"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate pick distribution: %w", err)
	}
	defer cursor.Close(ctx)

	dist := &models.BoutPickDistribution{BoutID: boutID}
	for cursor.Next(ctx) {
		var row struct {
			Corner models.Corner `bson:"_id"`
			Count  int           `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode pick distribution: %w", err)
		}
		switch row.Corner {
		case models.CornerRed:
			dist.Red = row.Count
		case models.CornerBlue:
			dist.Blue = row.Count
		}
		dist.Total += row.Count
	}

	return dist, nil
}

func decodePicks(ctx context.Context, cursor *mongo.Cursor) ([]*models.Pick, error) {
	defer cursor.Close(ctx)

	var picks []*models.Pick
	for cursor.Next(ctx) {
		var pick models.Pick
		if err := cursor.Decode(&pick); err != nil {
			return nil, fmt.Errorf("failed to decode pick: %w", err)
		}
		picks = append(picks, &pick)
	}
	return picks, nil
}
