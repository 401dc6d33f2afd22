package main

import (
	"context"
	"net/http"
	"os"

	"daleelai-be/config"
	"daleelai-be/controllers"
	"daleelai-be/routes"
	"daleelai-be/store"
	"daleelai-be/workers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}

	if level, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}

	ctx := context.Background()

	// Missing credentials degrade the database-backed endpoints to explicit
	// "not initialized" responses; the process still serves everything else.
	var st *store.Store
	client, db, err := config.ConnectDB(ctx)
	if err != nil {
		log.WithError(err).Warn("MongoDB unavailable, storage-backed endpoints degraded")
	} else {
		log.Info("MongoDB connection established successfully!")
		st = store.New(client, db)
		if err := st.EnsureIndexes(); err != nil {
			log.WithError(err).Warn("failed to ensure indexes")
		}
		go workers.WatchVotes(ctx, st)
	}

	rdb, err := config.ConnectRedis(ctx)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, rate limiting and caching disabled")
	} else if rdb != nil {
		log.Info("Connected to Redis")
	}

	r := gin.Default()
	r.Use(cors.Default())

	toolController := controllers.NewToolController(st)
	courseController := controllers.NewCourseController(st, rdb)
	reviewController := controllers.NewReviewController(st)
	newsController := controllers.NewNewsController(st)
	sitemapController := controllers.NewSitemapController(st)

	routes.ToolRoutes(r, toolController, rdb)
	routes.CourseRoutes(r, courseController, reviewController, rdb)
	routes.NewsRoutes(r, newsController)
	routes.SitemapRoutes(r, sitemapController)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
