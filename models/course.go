package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course represents a course listed on the learning platform. Rating and
// ReviewsCount are caches over the reviews collection; StudentsCount is
// best-effort data pulled from the upstream course page.
type Course struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Slug          string             `bson:"slug" json:"slug"`
	Description   string             `bson:"description" json:"description"`
	Thumbnail     *string            `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	URL           string             `bson:"url" json:"url"`
	Rating        float64            `bson:"rating" json:"rating"`
	ReviewsCount  int64              `bson:"reviewsCount" json:"reviewsCount"`
	StudentsCount int64              `bson:"studentsCount" json:"studentsCount"`
	IsPublished   bool               `bson:"isPublished" json:"isPublished"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
