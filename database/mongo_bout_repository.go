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

// MongoBoutRepository provides access to the bouts collection
type MongoBoutRepository struct {
	collection *mongo.Collection
}

// NewMongoBoutRepository creates a bout repository and ensures its indexes
func NewMongoBoutRepository(db *MongoDB) *MongoBoutRepository {
	collection := db.GetCollection("bouts")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "event_id", Value: 1}},
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logging.Warnf("Could not create bout indexes: %v", err)
	}

	return &MongoBoutRepository{collection: collection}
}

// FindByID retrieves a bout by its ID, nil if not found
func (r *MongoBoutRepository) FindByID(ctx context.Context, boutID int) (*models.Bout, error) {
	var bout models.Bout
	err := r.collection.FindOne(ctx, bson.M{"id": boutID}).Decode(&bout)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find bout: %w", err)
	}
	return &bout, nil
}

// FindByEvent retrieves all bouts belonging to an event
func (r *MongoBoutRepository) FindByEvent(ctx context.Context, eventID int) ([]*models.Bout, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return nil, fmt.Errorf("failed to find bouts by event: %w", err)
	}
	defer cursor.Close(ctx)

	var bouts []*models.Bout
	for cursor.Next(ctx) {
		var bout models.Bout
		if err := cursor.Decode(&bout); err != nil {
			return nil, fmt.Errorf("failed to decode bout: %w", err)
		}
		bouts = append(bouts, &bout)
	}
	return bouts, nil
}

// SetResult writes (or clears, with a nil result) the official outcome
// and lifecycle status of a bout, bumping last_updated.
func (r *MongoBoutRepository) SetResult(ctx context.Context, boutID int, result *models.BoutResult, status models.BoutStatus) (bool, error) {
	update := bson.M{"$set": bson.M{
		"result":       result,
		"status":       status,
		"last_updated": time.Now().UTC(),
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"id": boutID}, update)
	if err != nil {
		return false, fmt.Errorf("failed to set bout result: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// SetPicksLocked toggles the admin pick-lock flag on a single bout
func (r *MongoBoutRepository) SetPicksLocked(ctx context.Context, boutID int, locked bool) (bool, error) {
	update := bson.M{"$set": bson.M{
		"picks_locked": locked,
		"last_updated": time.Now().UTC(),
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"id": boutID}, update)
	if err != nil {
		return false, fmt.Errorf("failed to set bout pick lock: %w", err)
	}
	return res.MatchedCount > 0, nil
}
