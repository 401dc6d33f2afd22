package store

import (
	"context"
	"time"

	"daleelai-be/models"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrToolNotFound aborts a vote transaction when the target tool is missing
var ErrToolNotFound = errors.New("tool not found")

// ApplyVote runs the toggle/swap vote state machine for one (tool, user)
// pair inside a single transaction: read the tool, read the user's existing
// vote, compute the new tallies, then write the vote document (or delete it
// on toggle-off) and the tool's votingStats atomically. Returns the tallies
// as stored.
func (s *Store) ApplyVote(ctx context.Context, toolID primitive.ObjectID, userID string, requested models.VoteType) (models.VotingStats, error) {
	result, err := s.withTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var tool models.Tool
		if err := s.Tools().FindOne(sc, bson.M{"_id": toolID}).Decode(&tool); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, ErrToolNotFound
			}
			return nil, errors.Wrap(err, "failed to read tool")
		}

		voteID := models.VoteID(toolID, userID)
		var current *models.VoteType
		var existing models.Vote
		err := s.Votes().FindOne(sc, bson.M{"_id": voteID}).Decode(&existing)
		switch err {
		case nil:
			current = &existing.VoteType
		case mongo.ErrNoDocuments:
			// first vote by this user
		default:
			return nil, errors.Wrap(err, "failed to read existing vote")
		}

		stats, next := tool.VotingStats.Apply(current, requested)
		now := time.Now()

		if next == nil {
			if _, err := s.Votes().DeleteOne(sc, bson.M{"_id": voteID}); err != nil {
				return nil, errors.Wrap(err, "failed to remove vote")
			}
		} else {
			createdAt := now
			if current != nil {
				createdAt = existing.CreatedAt
			}
			vote := models.Vote{
				ID:        voteID,
				Tool:      toolID,
				User:      userID,
				VoteType:  *next,
				CreatedAt: createdAt,
				UpdatedAt: now,
			}
			opts := options.Replace().SetUpsert(true)
			if _, err := s.Votes().ReplaceOne(sc, bson.M{"_id": voteID}, vote, opts); err != nil {
				return nil, errors.Wrap(err, "failed to store vote")
			}
		}

		update := bson.M{"$set": bson.M{
			"votingStats": stats,
			"updatedAt":   now,
		}}
		if _, err := s.Tools().UpdateOne(sc, bson.M{"_id": toolID}, update); err != nil {
			return nil, errors.Wrap(err, "failed to update voting stats")
		}

		return stats, nil
	})
	if err != nil {
		return models.VotingStats{}, err
	}

	return result.(models.VotingStats), nil
}

// RecountTool rebuilds a tool's tallies from a full scan of its vote
// documents, regardless of what was stored before. A missing tool is a
// no-op: deletion races with late vote events are tolerated silently.
func (s *Store) RecountTool(ctx context.Context, toolID primitive.ObjectID) error {
	_, err := s.withTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var tool models.Tool
		if err := s.Tools().FindOne(sc, bson.M{"_id": toolID}).Decode(&tool); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, nil
			}
			return nil, errors.Wrap(err, "failed to read tool")
		}

		cursor, err := s.Votes().Find(sc, bson.M{"tool": toolID})
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan votes")
		}
		var votes []models.Vote
		if err := cursor.All(sc, &votes); err != nil {
			return nil, errors.Wrap(err, "failed to decode votes")
		}

		stats, rating := models.RecountStats(votes)

		update := bson.M{"$set": bson.M{
			"votingStats": stats,
			"rating":      rating,
			"reviewCount": stats.TotalVotes,
			"updatedAt":   time.Now(),
		}}
		if _, err := s.Tools().UpdateOne(sc, bson.M{"_id": toolID}, update); err != nil {
			return nil, errors.Wrap(err, "failed to write recounted stats")
		}

		return nil, nil
	})
	return err
}
