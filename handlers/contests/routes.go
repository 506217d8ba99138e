package contests

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all public routes related to contests
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/landing", GetLanding)
	r.GET("/classes", GetClasses)

	contests := r.Group("/contests")
	{
		contests.GET("/", GetContests)
		contests.GET("/:id", GetContest)
	}
}
