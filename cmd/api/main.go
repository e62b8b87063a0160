package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"journal-management-api/config"
	"journal-management-api/middleware"
	"journal-management-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	config.InitLogging()
	config.InitDB()

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Next()
	})

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SanitizeInputMiddleware())

	// Plain-text tail of the application log, guarded by a shared token.
	router.GET("/logs", func(c *gin.Context) {
		token := os.Getenv("LOG_VIEW_TOKEN")
		if token == "" || c.Query("token") != token {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.File("./logs/journal-api.log")
	})

	routes.SetupRoutes(router)

	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	if err := os.MkdirAll(uploadPath, 0755); err != nil {
		log.Printf("Warning: failed to create upload directory: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Journal Management API starting on port %s", port)
	log.Printf("Started at %s", time.Now().Format("2006-01-02 15:04:05"))

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
