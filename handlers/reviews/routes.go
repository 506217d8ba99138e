package reviews

import (
	"github.com/jtompuri/writing-contest-web-app-sub000/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to reviewing
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	reviews := r.Group("/reviews")
	{
		reviews.GET("/", GetReviewContests)
		reviews.GET("/:contest_id", middleware.TryAuthMiddleware(), GetReviewForm)
		reviews.POST("/:contest_id", middleware.AuthMiddleware(), SubmitBallot)
	}
}
