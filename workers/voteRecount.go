package workers

import (
	"context"
	"time"

	"daleelai-be/models"
	"daleelai-be/store"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// WatchVotes tails the votes collection's change stream and, on every write
// under any tool's votes, transactionally recounts that tool's tallies from
// scratch. This is the self-healing pass that corrects any drift left by the
// per-request vote update. Failed recounts are logged and skipped; the prior
// aggregate values stand until the next vote event.
func WatchVotes(ctx context.Context, s *store.Store) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "operationType", Value: bson.D{
				{Key: "$in", Value: bson.A{"insert", "update", "replace", "delete"}},
			}},
		}}},
	}

	for {
		stream, err := s.Votes().Watch(ctx, pipeline)
		if err != nil {
			log.WithError(err).Error("failed to open vote change stream, retrying")
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
				continue
			}
		}

		consumeVoteEvents(ctx, s, stream)
		stream.Close(context.Background())

		if ctx.Err() != nil {
			return
		}
	}
}

func consumeVoteEvents(ctx context.Context, s *store.Store, stream *mongo.ChangeStream) {
	for stream.Next(ctx) {
		var event struct {
			OperationType string `bson:"operationType"`
			DocumentKey   struct {
				ID string `bson:"_id"`
			} `bson:"documentKey"`
		}
		if err := stream.Decode(&event); err != nil {
			log.WithError(err).Warn("failed to decode vote change event")
			continue
		}

		toolID, err := models.ToolFromVoteID(event.DocumentKey.ID)
		if err != nil {
			log.WithField("voteId", event.DocumentKey.ID).Warn("vote event with malformed document key")
			continue
		}

		if err := s.RecountTool(ctx, toolID); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"tool":      toolID.Hex(),
				"operation": event.OperationType,
			}).Warn("vote recount failed")
		}
	}

	if err := stream.Err(); err != nil && ctx.Err() == nil {
		log.WithError(err).Error("vote change stream closed")
	}
}
