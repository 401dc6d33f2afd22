package store

import (
	"context"
	"time"

	"daleelai-be/models"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReviewResult carries the outcome of a review submission: the stored review
// ID plus the course aggregate recomputed from the full review scan.
type ReviewResult struct {
	ReviewID     primitive.ObjectID
	NewRating    float64
	ReviewsCount int64
}

// SubmitReview inserts a review and recomputes the course's rating and
// reviewsCount from a full scan of that course's reviews. Insert, scan and
// course update run inside one transaction so concurrent submissions cannot
// lose each other's contribution to the aggregate.
func (s *Store) SubmitReview(ctx context.Context, courseID primitive.ObjectID, review models.Review) (ReviewResult, error) {
	result, err := s.withTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		review.ID = primitive.NewObjectID()
		review.Course = courseID
		review.CreatedAt = time.Now()

		if _, err := s.Reviews().InsertOne(sc, review); err != nil {
			return nil, errors.Wrap(err, "failed to insert review")
		}

		cursor, err := s.Reviews().Find(sc, bson.M{"course": courseID})
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan reviews")
		}
		var reviews []models.Review
		if err := cursor.All(sc, &reviews); err != nil {
			return nil, errors.Wrap(err, "failed to decode reviews")
		}

		rating, count := models.AverageRating(reviews)

		update := bson.M{"$set": bson.M{
			"rating":       rating,
			"reviewsCount": count,
			"updatedAt":    time.Now(),
		}}
		if _, err := s.Courses().UpdateOne(sc, bson.M{"_id": courseID}, update); err != nil {
			return nil, errors.Wrap(err, "failed to update course aggregate")
		}

		return ReviewResult{ReviewID: review.ID, NewRating: rating, ReviewsCount: count}, nil
	})
	if err != nil {
		return ReviewResult{}, err
	}

	return result.(ReviewResult), nil
}

// UpdateStudentsCount writes the scraped student count onto a course. Used
// as a best-effort side update: callers log a failure and move on.
func (s *Store) UpdateStudentsCount(ctx context.Context, courseID primitive.ObjectID, studentsCount int64) error {
	update := bson.M{"$set": bson.M{
		"studentsCount": studentsCount,
		"updatedAt":     time.Now(),
	}}
	_, err := s.Courses().UpdateOne(ctx, bson.M{"_id": courseID}, update)
	return errors.Wrap(err, "failed to update students count")
}
