package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"daleelai-be/models"
	"daleelai-be/scraper"
	"daleelai-be/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const courseMetaCacheTTL = time.Hour

// CourseController serves the course catalogue and the course-page
// metadata scraper
type CourseController struct {
	store *store.Store
	redis *redis.Client
}

func NewCourseController(s *store.Store, rdb *redis.Client) *CourseController {
	return &CourseController{store: s, redis: rdb}
}

// GetAllCourses lists published courses with pagination
func (cc *CourseController) GetAllCourses(c *gin.Context) {
	if cc.store == nil {
		storeUnavailable(c)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := bson.M{"isPublished": true}

	totalCount, err := cc.store.Courses().CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count courses"})
		return
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := cc.store.Courses().Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve courses"})
		return
	}
	defer cursor.Close(ctx)

	var courses []models.Course
	if err := cursor.All(ctx, &courses); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode courses"})
		return
	}

	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))

	c.JSON(http.StatusOK, gin.H{
		"courses":      courses,
		"totalCourses": totalCount,
		"totalPages":   totalPages,
		"currentPage":  page,
	})
}

// GetCourse retrieves a course by its ID or slug
func (cc *CourseController) GetCourse(c *gin.Context) {
	if cc.store == nil {
		storeUnavailable(c)
		return
	}

	idParam := c.Param("id")

	filter := bson.M{"slug": idParam, "isPublished": true}
	if courseID, err := primitive.ObjectIDFromHex(idParam); err == nil {
		filter = bson.M{"_id": courseID}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var course models.Course
	err := cc.store.Courses().FindOne(ctx, filter).Decode(&course)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve course"})
		}
		return
	}

	c.JSON(http.StatusOK, course)
}

// FetchCourse scrapes metadata from an external course page. This endpoint
// is best-effort: any failure other than an upstream 403 still answers 200,
// with a zeroed payload carrying the error string.
func (cc *CourseController) FetchCourse(c *gin.Context) {
	var input struct {
		URL      string `json:"url" binding:"required,url"`
		CourseID string `json:"courseId,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if cached, ok := cc.cachedMetadata(input.URL); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	meta, err := scraper.FetchCourseMetadata(input.URL)
	if err != nil {
		status := http.StatusOK
		if err == scraper.ErrForbidden {
			status = http.StatusForbidden
		}
		log.WithError(err).WithField("url", input.URL).Warn("course metadata fetch failed")
		c.JSON(status, scraper.CourseMetadata{Error: err.Error()})
		return
	}

	// Side update of the course's student count. The result is logged and
	// deliberately discarded: a failure here must not fail the fetch.
	if input.CourseID != "" && meta.StudentsCount > 0 && cc.store != nil {
		if courseID, idErr := primitive.ObjectIDFromHex(input.CourseID); idErr == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if updateErr := cc.store.UpdateStudentsCount(ctx, courseID, meta.StudentsCount); updateErr != nil {
				log.WithError(updateErr).WithField("course", input.CourseID).Warn("students count side update failed")
			}
			cancel()
		}
	}

	cc.cacheMetadata(input.URL, meta)

	c.JSON(http.StatusOK, meta)
}

func (cc *CourseController) cachedMetadata(url string) (scraper.CourseMetadata, bool) {
	if cc.redis == nil {
		return scraper.CourseMetadata{}, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	raw, err := cc.redis.Get(ctx, "coursemeta:"+url).Result()
	if err != nil {
		return scraper.CourseMetadata{}, false
	}

	var meta scraper.CourseMetadata
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return scraper.CourseMetadata{}, false
	}
	return meta, true
}

func (cc *CourseController) cacheMetadata(url string, meta scraper.CourseMetadata) {
	if cc.redis == nil {
		return
	}

	raw, err := json.Marshal(meta)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := cc.redis.Set(ctx, "coursemeta:"+url, raw, courseMetaCacheTTL).Err(); err != nil {
		log.WithError(err).Debug("failed to cache course metadata")
	}
}
