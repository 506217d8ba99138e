package main

import (
	"log"

	"github.com/jtompuri/writing-contest-web-app-sub000/config"
	"github.com/jtompuri/writing-contest-web-app-sub000/database"
	"github.com/jtompuri/writing-contest-web-app-sub000/middleware"
	v1 "github.com/jtompuri/writing-contest-web-app-sub000/routes/v1"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Writing Contest API
// @version 1.0
// @description Backend API for the writing contest platform: contests, entries, peer reviews and results.
// @BasePath /api/v1
func main() {
	config.LoadConfig()
	database.InitDB()
	database.InitRedis()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Csrf-Token"},
		AllowCredentials: true,
	}))

	middleware.UpdateSystemMetrics()
	v1.Register(r)

	log.Println("Starting API on port " + config.APIPort)
	if err := r.Run(":" + config.APIPort); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}
