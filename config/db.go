package config

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const databaseName = "daleelai"

// ErrNotConfigured is returned when the database credential variables are
// absent. Callers degrade to explicit "not initialized" responses instead of
// crashing the process.
var ErrNotConfigured = errors.New("database credentials not configured")

// ConnectDB dials MongoDB and returns the client handle. The handle is owned
// by main and injected into the store; there is no package-level singleton.
func ConnectDB(ctx context.Context) (*mongo.Client, *mongo.Database, error) {
	mongoURI := os.Getenv("MONGODB_URI")
	mongoUser := os.Getenv("MONGODB_USER")
	mongoPassword := os.Getenv("MONGODB_PASSWORD")
	if mongoURI == "" || mongoUser == "" || mongoPassword == "" {
		return nil, nil, ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(mongoURI).
		SetAuth(options.Credential{
			Username: mongoUser,
			Password: mongoPassword,
		})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to connect to MongoDB")
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, errors.Wrap(err, "failed to ping MongoDB")
	}

	return client, client.Database(databaseName), nil
}
