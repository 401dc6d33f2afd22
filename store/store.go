package store

import (
	"context"

	"daleelai-be/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Store wraps the MongoDB handles used by the controllers. It is constructed
// once in main and injected; handlers must tolerate a nil *Store when the
// database credentials are absent.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// New creates a Store around an established client/database pair
func New(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{client: client, db: db}
}

func (s *Store) Tools() *mongo.Collection   { return s.db.Collection("tools") }
func (s *Store) Votes() *mongo.Collection   { return s.db.Collection("votes") }
func (s *Store) Reviews() *mongo.Collection { return s.db.Collection("reviews") }
func (s *Store) Courses() *mongo.Collection { return s.db.Collection("courses") }
func (s *Store) News() *mongo.Collection    { return s.db.Collection("news") }

// EnsureIndexes creates the indexes the aggregation paths rely on
func (s *Store) EnsureIndexes() error {
	return models.EnsureVoteIndex(s.Votes())
}

// withTransaction runs fn inside a MongoDB transaction. Conflict retries are
// handled by the driver's transaction machinery, not here.
func (s *Store) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) (interface{}, error)) (interface{}, error) {
	session, err := s.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	return session.WithTransaction(ctx, fn)
}
