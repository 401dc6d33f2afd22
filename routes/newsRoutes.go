package routes

import (
	"daleelai-be/controllers"

	"github.com/gin-gonic/gin"
)

// NewsRoutes sets up the news feed routes
func NewsRoutes(r *gin.Engine, nc *controllers.NewsController) {
	news := r.Group("/api/news")
	{
		news.GET("", nc.GetAllNews)
	}
}
