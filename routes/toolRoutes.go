package routes

import (
	"daleelai-be/controllers"
	"daleelai-be/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// ToolRoutes sets up the tool catalogue and vote routes
func ToolRoutes(r *gin.Engine, tc *controllers.ToolController, rdb *redis.Client) {
	tools := r.Group("/api/tools")
	{
		tools.GET("", tc.GetAllTools)
		tools.GET("/:id", tc.GetTool)
		tools.POST("", middlewares.AuthMiddleware(), tc.CreateTool)
		tools.POST("/vote", middlewares.AuthMiddleware(), middlewares.RateLimiter(rdb, "vote", 100), tc.Vote)
	}
}
