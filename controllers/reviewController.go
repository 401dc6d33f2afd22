package controllers

import (
	"context"
	"net/http"
	"time"

	"daleelai-be/models"
	"daleelai-be/store"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReviewController serves course review submission and listing
type ReviewController struct {
	store *store.Store
}

func NewReviewController(s *store.Store) *ReviewController {
	return &ReviewController{store: s}
}

// SubmitReview stores a new course review and recomputes the course's
// aggregate rating from a full scan of that course's reviews
func (rc *ReviewController) SubmitReview(c *gin.Context) {
	var input struct {
		CourseID string `json:"courseId" binding:"required"`
		Review   struct {
			UserID   string  `json:"userId" binding:"required"`
			Rating   float64 `json:"rating" binding:"required,min=1,max=5"`
			UserName string  `json:"userName,omitempty"`
			Comment  string  `json:"comment,omitempty" binding:"max=2000"`
		} `json:"review" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	courseID, err := primitive.ObjectIDFromHex(input.CourseID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID"})
		return
	}

	if rc.store == nil {
		storeUnavailable(c)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	review := models.Review{
		UserID:   input.Review.UserID,
		UserName: input.Review.UserName,
		Rating:   input.Review.Rating,
		Comment:  input.Review.Comment,
	}

	result, err := rc.store.SubmitReview(ctx, courseID, review)
	if err != nil {
		log.WithError(err).WithField("course", input.CourseID).Error("review submission failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit review"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"reviewId":        result.ReviewID,
		"newRating":       result.NewRating,
		"newReviewsCount": result.ReviewsCount,
	})
}

// GetCourseReviews lists a course's reviews, newest first
func (rc *ReviewController) GetCourseReviews(c *gin.Context) {
	courseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID"})
		return
	}

	if rc.store == nil {
		storeUnavailable(c)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := rc.store.Reviews().Find(ctx, bson.M{"course": courseID}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reviews"})
		return
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews":      reviews,
		"totalReviews": len(reviews),
	})
}
