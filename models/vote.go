package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// VoteType enum
type VoteType string

const (
	VoteHelpful    VoteType = "helpful"
	VoteNotHelpful VoteType = "notHelpful"
)

// ValidVoteType reports whether t is a member of the vote enum.
func ValidVoteType(t string) bool {
	return t == string(VoteHelpful) || t == string(VoteNotHelpful)
}

// Vote represents a user's helpful/not-helpful vote on a tool. The document
// ID is "<toolHex>:<userID>", so a user has at most one vote per tool and a
// change stream delete event still identifies the tool from documentKey alone.
type Vote struct {
	ID        string             `bson:"_id" json:"id"`
	Tool      primitive.ObjectID `bson:"tool" json:"tool"`
	User      string             `bson:"user" json:"user"`
	VoteType  VoteType           `bson:"voteType" json:"voteType"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// VoteID builds the compound document ID for a (tool, user) pair.
func VoteID(toolID primitive.ObjectID, userID string) string {
	return toolID.Hex() + ":" + userID
}

// ToolFromVoteID recovers the tool ObjectID from a vote document ID.
func ToolFromVoteID(voteID string) (primitive.ObjectID, error) {
	if len(voteID) < 24 {
		return primitive.NilObjectID, primitive.ErrInvalidHex
	}
	return primitive.ObjectIDFromHex(voteID[:24])
}

// EnsureVoteIndex creates the index used by the recount full scan
func EnsureVoteIndex(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "tool", Value: 1}},
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
