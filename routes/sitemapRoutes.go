package routes

import (
	"daleelai-be/controllers"

	"github.com/gin-gonic/gin"
)

// SitemapRoutes exposes the generated sitemap
func SitemapRoutes(r *gin.Engine, sc *controllers.SitemapController) {
	r.GET("/sitemap.xml", sc.Sitemap)
}
