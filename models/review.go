package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review represents a user's review of a course. Reviews are immutable once
// created; there is no uniqueness constraint per (course, user).
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Course    primitive.ObjectID `bson:"course" json:"course"`
	UserID    string             `bson:"userId" json:"userId"`
	UserName  string             `bson:"userName,omitempty" json:"userName,omitempty"`
	Rating    float64            `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// AverageRating recomputes a course's aggregate from a full scan of its
// reviews: the one-decimal average over reviews carrying a rating, and how
// many of them there are. Zero rated reviews yields (0, 0).
func AverageRating(reviews []Review) (float64, int64) {
	var total float64
	var count int64
	for _, r := range reviews {
		if r.Rating > 0 {
			total += r.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0
	}
	return RoundRating(total / float64(count)), count
}
