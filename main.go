package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/hendrawanp/passvault-app/config"
	"github.com/hendrawanp/passvault-app/middlewares"
	"github.com/hendrawanp/passvault-app/models"
	"github.com/hendrawanp/passvault-app/router"
	"github.com/hendrawanp/passvault-app/services"
	"github.com/hendrawanp/passvault-app/utils"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	utils.InitLogger()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// Per-IP request budget across the whole API
	rateLimiter := middlewares.NewRateLimiter(50, 1)

	// Drain queued audit events in the background
	eventProcessor := services.NewEventProcessor(db)
	eventProcessor.Start()
	defer eventProcessor.Stop()

	r := router.SetupRouter(db)
	r.Use(rateLimiter.RateLimit())

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.OrganizationUser{},
		&models.Notification{},
		&models.NotificationStatus{},
		&models.EventQueueItem{},
		&models.Event{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
