package v1

import (
	"github.com/jtompuri/writing-contest-web-app-sub000/handlers/admin"
	"github.com/jtompuri/writing-contest-web-app-sub000/handlers/auth"
	"github.com/jtompuri/writing-contest-web-app-sub000/handlers/contests"
	"github.com/jtompuri/writing-contest-web-app-sub000/handlers/entries"
	"github.com/jtompuri/writing-contest-web-app-sub000/handlers/results"
	"github.com/jtompuri/writing-contest-web-app-sub000/handlers/reviews"
	"github.com/jtompuri/writing-contest-web-app-sub000/middleware"

	"github.com/gin-gonic/gin"
)

// Register the endpoints for the v1 API
func Register(r *gin.Engine) {
	api := r.Group("/api/v1")

	// Add metrics middleware to all routes
	api.Use(middleware.MetricsMiddleware())

	rateLimiter := middleware.NewRateLimiter(6000, 1000) // 100 requests per second, 1000 burst
	api.Use(middleware.RateLimiterMiddleware(rateLimiter))

	RegisterPingRoutes(api)
	auth.RegisterRoutes(api)
	contests.RegisterRoutes(api)
	entries.RegisterRoutes(api)
	reviews.RegisterRoutes(api)
	results.RegisterRoutes(api)
	admin.RegisterRoutes(api)

	// Register metrics endpoint
	RegisterMetricsRoutes(api)
}
