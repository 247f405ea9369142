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

// MongoEventRepository provides access to the events collection
type MongoEventRepository struct {
	collection *mongo.Collection
	cardSlots  *mongo.Collection
}

// NewMongoEventRepository creates an event repository and ensures its indexes
func NewMongoEventRepository(db *MongoDB) *MongoEventRepository {
	collection := db.GetCollection("events")
	cardSlots := db.GetCollection("event_card_slots")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "date", Value: 1}},
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logging.Warnf("Could not create event indexes: %v", err)
	}

	slotIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "event_id", Value: 1}, {Key: "order_overall", Value: 1}},
	}
	if _, err := cardSlots.Indexes().CreateOne(ctx, slotIndex); err != nil {
		logging.Warnf("Could not create card slot index: %v", err)
	}

	return &MongoEventRepository{collection: collection, cardSlots: cardSlots}
}

// FindByID retrieves an event by its ID, nil if not found
func (r *MongoEventRepository) FindByID(ctx context.Context, eventID int) (*models.Event, error) {
	var event models.Event
	err := r.collection.FindOne(ctx, bson.M{"id": eventID}).Decode(&event)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	return &event, nil
}

// FindUpcoming retrieves scheduled events from today onward, soonest first
func (r *MongoEventRepository) FindUpcoming(ctx context.Context, limit int) ([]*models.Event, error) {
	today := time.Now().Truncate(24 * time.Hour)
	filter := bson.M{
		"status": models.EventStatusScheduled,
		"date":   bson.M{"$gte": today},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}}).SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find upcoming events: %w", err)
	}
	return decodeEvents(ctx, cursor)
}

// FindRecentCompleted retrieves completed events, most recent first
func (r *MongoEventRepository) FindRecentCompleted(ctx context.Context, limit int) ([]*models.Event, error) {
	filter := bson.M{"status": models.EventStatusCompleted}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find completed events: %w", err)
	}
	return decodeEvents(ctx, cursor)
}

// FindIDsByYear returns the IDs of all events dated within the given year
func (r *MongoEventRepository) FindIDsByYear(ctx context.Context, year int) ([]int, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	filter := bson.M{"date": bson.M{"$gte": start, "$lt": end}}
	opts := options.Find().SetProjection(bson.M{"id": 1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find events by year: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []int
	for cursor.Next(ctx) {
		var row struct {
			ID int `bson:"id"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode event id: %w", err)
		}
		ids = append(ids, row.ID)
	}
	return ids, nil
}

// UpdateFields applies a partial update and bumps last_updated.
// Returns false if no event matched.
func (r *MongoEventRepository) UpdateFields(ctx context.Context, eventID int, fields map[string]interface{}) (bool, error) {
	set := bson.M{"last_updated": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"id": eventID}, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to update event: %w", err)
	}
	return result.MatchedCount > 0, nil
}

// SetStatus changes an event's lifecycle status
func (r *MongoEventRepository) SetStatus(ctx context.Context, eventID int, status models.EventStatus) (bool, error) {
	return r.UpdateFields(ctx, eventID, map[string]interface{}{"status": status})
}

// SetPicksLocked toggles the admin pick-lock flag on an event
func (r *MongoEventRepository) SetPicksLocked(ctx context.Context, eventID int, locked bool) (bool, error) {
	return r.UpdateFields(ctx, eventID, map[string]interface{}{"picks_locked": locked})
}

// FindCardStructure returns an event's bouts in running order
func (r *MongoEventRepository) FindCardStructure(ctx context.Context, eventID int) ([]*models.EventCardSlot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order_overall", Value: 1}})
	cursor, err := r.cardSlots.Find(ctx, bson.M{"event_id": eventID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find card structure: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []*models.EventCardSlot
	for cursor.Next(ctx) {
		var slot models.EventCardSlot
		if err := cursor.Decode(&slot); err != nil {
			return nil, fmt.Errorf("failed to decode card slot: %w", err)
		}
		slots = append(slots, &slot)
	}
	return slots, nil
}

func decodeEvents(ctx context.Context, cursor *mongo.Cursor) ([]*models.Event, error) {
	defer cursor.Close(ctx)

	var events []*models.Event
	for cursor.Next(ctx) {
		var event models.Event
		if err := cursor.Decode(&event); err != nil {
			return nil, fmt.Errorf("failed to decode event: %w", err)
		}
		events = append(events, &event)
	}
	return events, nil
}
