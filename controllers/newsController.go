package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"daleelai-be/models"
	"daleelai-be/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewsController serves the news feed
type NewsController struct {
	store *store.Store
}

func NewNewsController(s *store.Store) *NewsController {
	return &NewsController{store: s}
}

// GetAllNews lists news items, newest first
func (nc *NewsController) GetAllNews(c *gin.Context) {
	if nc.store == nil {
		storeUnavailable(c)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "publishedAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := nc.store.News().Find(ctx, bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve news"})
		return
	}
	defer cursor.Close(ctx)

	var items []models.NewsItem
	if err := cursor.All(ctx, &items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode news"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"news": items})
}
