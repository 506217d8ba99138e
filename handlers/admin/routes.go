package admin

import (
	"github.com/jtompuri/writing-contest-web-app-sub000/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all super-user-gated admin routes
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.SuperMiddleware())
	{
		admin.GET("/contests", ListContests)
		admin.POST("/contests", CreateContest)
		admin.PUT("/contests/:id", UpdateContest)
		admin.DELETE("/contests/:id", DeleteContest)

		admin.GET("/users", ListUsers)
		admin.POST("/users", CreateUser)
		admin.PUT("/users/:id", UpdateUser)
		admin.DELETE("/users/:id", DeleteUser)

		admin.GET("/entries", ListEntries)
		admin.POST("/entries", CreateEntry)
		admin.PUT("/entries/:id", UpdateEntry)
		admin.DELETE("/entries/:id", DeleteEntry)
	}
}
