package results

import (
	"github.com/jtompuri/writing-contest-web-app-sub000/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to results
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	results := r.Group("/results")
	{
		results.GET("/", GetResultContests)
		results.GET("/:contest_id", middleware.TryAuthMiddleware(), GetResult)
	}
}
