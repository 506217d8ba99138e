package entries

import (
	"github.com/jtompuri/writing-contest-web-app-sub000/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to entries
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	// Single entry view resolves the session when present but stays public:
	// key holders without an account may follow results links.
	r.GET("/entries/:id", middleware.TryAuthMiddleware(), GetEntry)

	authed := r.Group("/")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.POST("/contests/:id/entries", CreateEntry)
		authed.PUT("/entries/:id", UpdateEntry)
		authed.DELETE("/entries/:id", DeleteEntry)
		authed.GET("/my-texts", GetMyTexts)
	}
}
