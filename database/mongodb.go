package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fight-picks-go/logging"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateKey is returned by repositories when an insert violates a
// unique index. Callers use it to turn a lost creation race into an update.
var ErrDuplicateKey = errors.New("duplicate key")

// Config holds the connection parameters for MongoDB
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// MongoDB is the explicit, injected handle to the document store.
// Every repository is constructed from it; lifecycle (Connect/Close)
// is owned by the composition root.
type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
	timeout  time.Duration
}

// Connect establishes and verifies a MongoDB connection
func Connect(config Config) (*MongoDB, error) {
	logger := logging.WithPrefix("MongoDB")

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Infof("Connected to database %s", config.Database)

	return &MongoDB{
		client:   client,
		database: client.Database(config.Database),
		timeout:  timeout,
	}, nil
}

// Close disconnects from MongoDB
func (m *MongoDB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.client.Disconnect(ctx); err != nil {
		logging.WithPrefix("MongoDB").Errorf("Error disconnecting: %v", err)
		return err
	}
	logging.WithPrefix("MongoDB").Info("Connection closed")
	return nil
}

// Ping verifies the connection is alive
func (m *MongoDB) Ping(ctx context.Context) error {
	if err := m.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("MongoDB ping failed: %w", err)
	}
	return nil
}

// GetCollection returns a handle to the named collection
func (m *MongoDB) GetCollection(name string) *mongo.Collection {
	return m.database.Collection(name)
}
