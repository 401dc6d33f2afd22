package controllers

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"daleelai-be/models"
	"daleelai-be/store"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ToolController serves the AI tool catalogue and the vote endpoint
type ToolController struct {
	store *store.Store
}

func NewToolController(s *store.Store) *ToolController {
	return &ToolController{store: s}
}

// storeUnavailable writes the degraded response used when the database
// credentials were absent at startup
func storeUnavailable(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":       "Database not initialized",
		"initialized": false,
	})
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9\p{Arabic}]+`)

// Slugify derives a URL slug from a display name
func Slugify(name string) string {
	slug := slugCleaner.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// CreateTool handles the creation of a new tool listing
func (tc *ToolController) CreateTool(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Name        string  `json:"name" binding:"required,max=120"`
		Description string  `json:"description" binding:"required,max=2000"`
		Category    string  `json:"category" binding:"required"`
		Website     string  `json:"website" binding:"required,url"`
		Pricing     *string `json:"pricing,omitempty"`
		ImageURL    *string `json:"imageUrl,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	validCategories := map[string]bool{
		"Writing": true, "Image Generation": true, "Coding": true,
		"Productivity": true, "Audio": true, "Other": true,
	}
	if !validCategories[input.Category] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	if tc.store == nil {
		storeUnavailable(c)
		return
	}

	createdByID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slug := Slugify(input.Name)
	count, err := tc.store.Tools().CountDocuments(ctx, bson.M{"slug": slug})
	if err != nil {
		log.WithError(err).Error("failed to check tool slug")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tool"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A tool with this name already exists"})
		return
	}

	tool := models.Tool{
		ID:          primitive.NewObjectID(),
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		Category:    models.ToolCategory(input.Category),
		Website:     input.Website,
		Pricing:     input.Pricing,
		ImageURL:    input.ImageURL,
		CreatedBy:   createdByID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if _, err := tc.store.Tools().InsertOne(ctx, tool); err != nil {
		log.WithError(err).Error("failed to insert tool")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tool"})
		return
	}

	c.JSON(http.StatusCreated, tool)
}

// GetAllTools handles retrieving tools with filtering, pagination, and the
// caller's vote status
func (tc *ToolController) GetAllTools(c *gin.Context) {
	if tc.store == nil {
		storeUnavailable(c)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	category := c.Query("category")
	search := c.Query("search")
	sortParam := c.DefaultQuery("sort", "newest")
	userID := c.Query("userId")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := bson.M{}

	if category != "" && category != "all" {
		filter["category"] = category
	}

	if search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"description": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	skip := (page - 1) * limit

	var sortOptions bson.D
	switch sortParam {
	case "oldest":
		sortOptions = bson.D{{Key: "createdAt", Value: 1}}
	case "top":
		sortOptions = bson.D{{Key: "votingStats.totalVotes", Value: -1}}
	case "newest":
		fallthrough
	default:
		sortOptions = bson.D{{Key: "createdAt", Value: -1}}
	}

	totalCount, err := tc.store.Tools().CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count tools"})
		return
	}

	findOptions := options.Find().
		SetSort(sortOptions).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := tc.store.Tools().Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tools"})
		return
	}
	defer cursor.Close(ctx)

	var tools []models.Tool
	if err := cursor.All(ctx, &tools); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode tools"})
		return
	}

	type ToolWithVote struct {
		models.Tool
		UserHasVoted bool             `json:"userHasVoted"`
		UserVoteType *models.VoteType `json:"userVoteType,omitempty"`
	}

	toolsWithVotes := make([]ToolWithVote, 0, len(tools))

	for _, tool := range tools {
		entry := ToolWithVote{Tool: tool}

		if userID != "" {
			var vote models.Vote
			err := tc.store.Votes().FindOne(ctx, bson.M{"_id": models.VoteID(tool.ID, userID)}).Decode(&vote)
			if err == nil {
				entry.UserHasVoted = true
				entry.UserVoteType = &vote.VoteType
			}
		}

		toolsWithVotes = append(toolsWithVotes, entry)
	}

	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))

	c.JSON(http.StatusOK, gin.H{
		"tools":       toolsWithVotes,
		"totalTools":  totalCount,
		"totalPages":  totalPages,
		"currentPage": page,
	})
}

// GetTool retrieves a tool by its ID or slug
func (tc *ToolController) GetTool(c *gin.Context) {
	if tc.store == nil {
		storeUnavailable(c)
		return
	}

	idParam := c.Param("id")

	filter := bson.M{"slug": idParam}
	if toolID, err := primitive.ObjectIDFromHex(idParam); err == nil {
		filter = bson.M{"_id": toolID}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var tool models.Tool
	err := tc.store.Tools().FindOne(ctx, filter).Decode(&tool)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tool not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tool"})
		}
		return
	}

	c.JSON(http.StatusOK, tool)
}

// Vote applies a helpful/not-helpful vote to a tool. Casting the same vote
// twice removes it; casting the opposite vote swaps it. The read-modify-write
// runs in a single transaction inside the store.
func (tc *ToolController) Vote(c *gin.Context) {
	var input struct {
		ToolID   string `json:"toolId" binding:"required"`
		VoteType string `json:"voteType" binding:"required"`
		UserID   string `json:"userId" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidVoteType(input.VoteType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "voteType must be helpful or notHelpful"})
		return
	}

	toolID, err := primitive.ObjectIDFromHex(input.ToolID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tool ID"})
		return
	}

	if tc.store == nil {
		storeUnavailable(c)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stats, err := tc.store.ApplyVote(ctx, toolID, input.UserID, models.VoteType(input.VoteType))
	if err != nil {
		log.WithError(err).WithField("tool", input.ToolID).Error("vote transaction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"votingStats": stats,
	})
}
