package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewsItem represents a news article shown on the site
type NewsItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Summary     string             `bson:"summary" json:"summary"`
	ImageURL    *string            `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	PublishedAt time.Time          `bson:"publishedAt" json:"publishedAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
