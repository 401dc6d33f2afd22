package routes

import (
	"daleelai-be/controllers"
	"daleelai-be/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// CourseRoutes sets up the course catalogue, review, and scraper routes
func CourseRoutes(r *gin.Engine, cc *controllers.CourseController, rc *controllers.ReviewController, rdb *redis.Client) {
	courses := r.Group("/api/courses")
	{
		courses.GET("", cc.GetAllCourses)
		courses.GET("/:id", cc.GetCourse)
		courses.GET("/:id/reviews", rc.GetCourseReviews)
	}

	r.POST("/api/fetch-course", cc.FetchCourse)
	r.POST("/api/submit-review", middlewares.AuthMiddleware(), middlewares.RateLimiter(rdb, "review", 20), rc.SubmitReview)
}
